package interactionController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	learningModels "lms/models/learning"
	"lms/utils"
	interactionValidator "lms/validators/interaction"
)

// CreateDiscussion posts a question under a lesson. The caller must be
// enrolled in the lesson's course.
func CreateDiscussion(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedDiscussion").(*interactionValidator.DiscussionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Preload("Section").First(&lesson, reqData.LessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}

	var enrollment learningModels.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", studentID, lesson.Section.CourseID).
		First(&enrollment).Error; err != nil {
		if !middleware.CallerRole(c).AtLeast(models.RoleInstructor) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to ask questions!", nil)
		}
	}

	discussion := models.QaDiscussion{
		LessonID:  lesson.ID,
		StudentID: studentID,
		Question:  reqData.Question,
	}
	if err := db.Create(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question posted successfully!", discussion)
}

// ListLessonDiscussions lists questions under a lesson with their replies
func ListLessonDiscussions(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	pagination := utils.GetPagination(c)

	db := database.Database.Db.Model(&models.QaDiscussion{}).Where("lesson_id = ?", lessonID)

	var total int64
	db.Count(&total)

	var discussions []models.QaDiscussion
	if err := db.Preload("Replies", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Preload("Replies.User").Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&discussions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch discussions!", nil)
	}

	return middleware.PaginatedResponse(c, "Discussions fetched successfully!", discussions, total, pagination.Page, pagination.Limit)
}

// ReplyToDiscussion adds an answer under a question and notifies its author
func ReplyToDiscussion(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discussion id!", nil)
	}

	reqData, ok := c.Locals("validatedReply").(*interactionValidator.ReplyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var discussion models.QaDiscussion
	if err := db.First(&discussion, discussionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found", nil)
	}

	reply := models.QaReply{
		DiscussionID: discussion.ID,
		UserID:       userID,
		ReplyText:    reqData.ReplyText,
	}
	if err := db.Create(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post reply!", nil)
	}

	if discussion.StudentID != userID {
		var lesson courseModels.Lesson
		courseTitle := ""
		if db.Preload("Section").First(&lesson, discussion.LessonID).Error == nil {
			var course courseModels.Course
			if db.First(&course, lesson.Section.CourseID).Error == nil {
				courseTitle = course.Title
			}
		}
		utils.NotifyQaReply(discussion.StudentID, courseTitle)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply posted successfully!", reply)
}

// DeleteDiscussion removes a question and its replies. Author or admin only.
func DeleteDiscussion(c *fiber.Ctx) error {
	callerID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discussion id!", nil)
	}

	db := database.Database.Db

	var discussion models.QaDiscussion
	if err := db.First(&discussion, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found", nil)
	}

	if discussion.StudentID != callerID && !middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("discussion_id = ?", discussion.ID).Delete(&models.QaReply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&discussion).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion deleted successfully!", nil)
}
