package courseController

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	courseValidator "lms/validators/course"
)

// ListCourses is the public catalog. Students only ever see courses that are
// published and approved. Instructors may pass mine=true to list their own
// courses in any state, and admins may pass status/approval filters.
func ListCourses(c *fiber.Ctx) error {
	pagination := utils.GetPagination(c)
	role := middleware.CallerRole(c)

	db := database.Database.Db.Model(&courseModels.Course{})

	if c.Query("mine") == "true" && role.AtLeast(models.RoleInstructor) {
		callerID, _ := middleware.CallerID(c)
		db = db.Where("instructor_id = ?", callerID)
	} else if role.AtLeast(models.RoleSupportAdmin) {
		if status := c.Query("status"); status != "" {
			db = db.Where("status = ?", status)
		}
		if approval := c.Query("approval_status"); approval != "" {
			db = db.Where("approval_status = ?", approval)
		}
	} else {
		db = db.Where("status = ? AND approval_status = ?", courseModels.CoursePublished, courseModels.ApprovalApproved)
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		db = db.Where("category_id = ?", categoryID)
	}
	if level := c.Query("level"); level != "" {
		db = db.Where("level = ?", level)
	}
	if keyword := c.Query("keyword"); keyword != "" {
		db = db.Where("title ILIKE ?", "%"+keyword+"%")
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		db = db.Where("price >= ?", minPrice)
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		db = db.Where("price <= ?", maxPrice)
	}

	switch c.Query("sort") {
	case "price_asc":
		db = db.Order("price ASC")
	case "price_desc":
		db = db.Order("price DESC")
	case "rating":
		db = db.Order("average_rating DESC")
	case "popular":
		db = db.Order("total_students DESC")
	default:
		db = db.Order("created_at DESC")
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Preload("Category").Preload("Tags").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.PaginatedResponse(c, "Courses fetched successfully!", courses, total, pagination.Page, pagination.Limit)
}

// GetCourse returns one course with its full outline. Unenrollable courses
// are hidden from everyone except the owner and admins.
func GetCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.
		Preload("Instructor").Preload("Category").Preload("Tags").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Sections.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Sections.Lessons.Resources").
		First(&course, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if !course.Enrollable() && !canManageCourse(c, &course) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// CreateCourse creates a draft course owned by the calling instructor
func CreateCourse(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	slug := reqData.Slug
	if slug == "" {
		slug = utils.Slugify(reqData.Title)
	}

	// Check slug is free
	var existing courseModels.Course
	if err := db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slug already in use", nil)
	}

	course := courseModels.Course{
		InstructorID:   callerID,
		CategoryID:     reqData.CategoryID,
		Title:          reqData.Title,
		Slug:           slug,
		Description:    reqData.Description,
		ThumbnailURL:   reqData.ThumbnailURL,
		Level:          reqData.Level,
		Language:       reqData.Language,
		Price:          reqData.Price,
		DiscountPrice:  reqData.DiscountPrice,
		DurationHours:  reqData.DurationHours,
		Status:         courseModels.CourseDraft,
		ApprovalStatus: courseModels.ApprovalPending,
	}
	if course.Level == "" {
		course.Level = "beginner"
	}
	if course.Language == "" {
		course.Language = "English"
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		return replaceCourseTags(tx, course.ID, reqData.TagIDs)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse edits course metadata. Owner or admin only.
func UpdateCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if !canManageCourse(c, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Slug != nil && *reqData.Slug != course.Slug {
		var existing courseModels.Course
		if err := db.Where("slug = ? AND id <> ?", *reqData.Slug, course.ID).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slug already in use", nil)
		}
		course.Slug = *reqData.Slug
	}
	if reqData.CategoryID != nil {
		course.CategoryID = reqData.CategoryID
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.Language != nil {
		course.Language = *reqData.Language
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.DiscountPrice != nil {
		course.DiscountPrice = reqData.DiscountPrice
	}
	if reqData.DurationHours != nil {
		course.DurationHours = *reqData.DurationHours
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&course).Error; err != nil {
			return err
		}
		if reqData.TagIDs != nil {
			return replaceCourseTags(tx, course.ID, reqData.TagIDs)
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// ChangeStatus moves a course through its lifecycle. Instructors may only
// move their own courses between draft, pending and archived; approval and
// publication decisions belong to admins.
func ChangeStatus(c *fiber.Ctx) error {
	callerID, _ := middleware.CallerID(c)
	role := middleware.CallerRole(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedStatusChange").(*courseValidator.ChangeStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	isAdmin := role.AtLeast(models.RoleSupportAdmin)
	if !isAdmin && course.InstructorID != callerID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if reqData.Status != nil {
		next := courseModels.CourseStatus(*reqData.Status)
		if !isAdmin {
			switch next {
			case courseModels.CourseDraft, courseModels.CoursePending, courseModels.CourseArchived:
			default:
				return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins can publish or reject courses!", nil)
			}
		}
		if next == courseModels.CoursePublished && course.PublishedAt == nil {
			now := time.Now()
			course.PublishedAt = &now
		}
		course.Status = next
	}

	if reqData.ApprovalStatus != nil {
		if !isAdmin {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins can review courses!", nil)
		}
		now := time.Now()
		course.ApprovalStatus = courseModels.ApprovalStatus(*reqData.ApprovalStatus)
		course.ReviewedBy = &callerID
		course.ReviewedAt = &now
		if reqData.RejectionReason != nil {
			course.RejectionReason = *reqData.RejectionReason
		}
		if course.ApprovalStatus == courseModels.ApprovalApproved {
			course.RejectionReason = ""
		}
	}

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change status!", nil)
	}

	utils.NotifyCourseReviewed(course.InstructorID, course.Title, string(course.Status), string(course.ApprovalStatus))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course status updated!", course)
}

// DeleteCourse soft deletes a course and its outline
func DeleteCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if !canManageCourse(c, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if err := db.Delete(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// canManageCourse reports whether the caller owns the course or is an admin
func canManageCourse(c *fiber.Ctx, course *courseModels.Course) bool {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return false
	}
	if middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return true
	}
	return course.InstructorID == callerID
}

// replaceCourseTags rewrites the tag mapping rows for a course
func replaceCourseTags(tx *gorm.DB, courseID uint, tagIDs []uint) error {
	if err := tx.Where("course_id = ?", courseID).Delete(&courseModels.CourseTagMapping{}).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		var tag courseModels.CourseTag
		if err := tx.First(&tag, tagID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if err := tx.Create(&courseModels.CourseTagMapping{CourseID: courseID, TagID: tagID}).Error; err != nil {
			return err
		}
	}
	return nil
}
