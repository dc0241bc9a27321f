package courseController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	courseValidator "lms/validators/course"
)

// loadOwnedCourse fetches the course and checks the caller may manage it
func loadOwnedCourse(c *fiber.Ctx, courseID int) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}
	if !canManageCourse(c, &course) {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}
	return &course, nil
}

// lessonCourse resolves the course a lesson belongs to
func lessonCourse(db *gorm.DB, lessonID int) (*courseModels.Lesson, *courseModels.Course, error) {
	var lesson courseModels.Lesson
	if err := db.Preload("Section").First(&lesson, lessonID).Error; err != nil {
		return nil, nil, err
	}
	var course courseModels.Course
	if err := db.First(&course, lesson.Section.CourseID).Error; err != nil {
		return nil, nil, err
	}
	return &lesson, &course, nil
}

// CreateSection adds a section to a course
func CreateSection(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedSection").(*courseValidator.SectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, errResp := loadOwnedCourse(c, courseID)
	if course == nil {
		return errResp
	}

	section := courseModels.Section{
		CourseID:     course.ID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		DisplayOrder: reqData.DisplayOrder,
	}
	if err := database.Database.Db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// UpdateSection edits a section
func UpdateSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
	}

	reqData, ok := c.Locals("validatedSectionUpdate").(*courseValidator.UpdateSectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var section courseModels.Section
	if err := db.First(&section, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found", nil)
	}

	course, errResp := loadOwnedCourse(c, int(section.CourseID))
	if course == nil {
		return errResp
	}

	if reqData.Title != nil {
		section.Title = *reqData.Title
	}
	if reqData.Description != nil {
		section.Description = *reqData.Description
	}
	if reqData.DisplayOrder != nil {
		section.DisplayOrder = *reqData.DisplayOrder
	}

	if err := db.Save(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}

// DeleteSection removes a section and its lessons
func DeleteSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
	}

	db := database.Database.Db

	var section courseModels.Section
	if err := db.First(&section, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found", nil)
	}

	course, errResp := loadOwnedCourse(c, int(section.CourseID))
	if course == nil {
		return errResp
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", section.ID).Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}

// CreateLesson adds a lesson to a section
func CreateLesson(c *fiber.Ctx) error {
	sectionID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var section courseModels.Section
	if err := db.First(&section, sectionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found", nil)
	}

	course, errResp := loadOwnedCourse(c, int(section.CourseID))
	if course == nil {
		return errResp
	}

	lesson := courseModels.Lesson{
		SectionID:     section.ID,
		Title:         reqData.Title,
		Description:   reqData.Description,
		LessonType:    reqData.LessonType,
		VideoURL:      reqData.VideoURL,
		VideoDuration: reqData.VideoDuration,
		Content:       reqData.Content,
		AllowPreview:  reqData.AllowPreview,
		DisplayOrder:  reqData.DisplayOrder,
	}
	if err := db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson edits a lesson
func UpdateLesson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*courseValidator.UpdateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	lesson, course, err := lessonCourse(db, id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}
	if !canManageCourse(c, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.Description != nil {
		lesson.Description = *reqData.Description
	}
	if reqData.LessonType != nil {
		lesson.LessonType = *reqData.LessonType
	}
	if reqData.VideoURL != nil {
		lesson.VideoURL = *reqData.VideoURL
	}
	if reqData.VideoDuration != nil {
		lesson.VideoDuration = *reqData.VideoDuration
	}
	if reqData.Content != nil {
		lesson.Content = *reqData.Content
	}
	if reqData.AllowPreview != nil {
		lesson.AllowPreview = *reqData.AllowPreview
	}
	if reqData.DisplayOrder != nil {
		lesson.DisplayOrder = *reqData.DisplayOrder
	}

	if err := db.Save(lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson removes a lesson and its resources
func DeleteLesson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	db := database.Database.Db

	lesson, course, err := lessonCourse(db, id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}
	if !canManageCourse(c, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&courseModels.LessonResource{}).Error; err != nil {
			return err
		}
		return tx.Delete(lesson).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AddResource attaches a downloadable file to a lesson
func AddResource(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	reqData, ok := c.Locals("validatedResource").(*courseValidator.ResourceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	lesson, course, err := lessonCourse(db, lessonID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}
	if !canManageCourse(c, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	resource := courseModels.LessonResource{
		LessonID: lesson.ID,
		Title:    reqData.Title,
		FileURL:  reqData.FileURL,
		FileType: reqData.FileType,
		FileSize: reqData.FileSize,
	}
	if err := db.Create(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource added successfully!", resource)
}

// DeleteResource removes a lesson resource
func DeleteResource(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db

	var resource courseModels.LessonResource
	if err := db.First(&resource, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found", nil)
	}

	_, course, err := lessonCourse(db, int(resource.LessonID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}
	if !canManageCourse(c, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if err := db.Delete(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted successfully!", nil)
}
