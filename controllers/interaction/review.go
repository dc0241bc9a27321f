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

// CreateReview lets an enrolled student rate a course once. Reviews start
// pending and only count toward the average once approved.
func CreateReview(c *fiber.Ctx) error {
	studentID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*interactionValidator.ReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment learningModels.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", studentID, reqData.CourseID).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to review this course!", nil)
	}

	var existing models.Review
	if err := db.Where("course_id = ? AND student_id = ?", reqData.CourseID, studentID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already reviewed this course", nil)
	}

	review := models.Review{
		CourseID:  reqData.CourseID,
		StudentID: studentID,
		Rating:    reqData.Rating,
		Comment:   reqData.Comment,
		Status:    "pending",
	}
	if err := db.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted for moderation!", review)
}

// ListCourseReviews returns approved reviews of one course. Admins may
// filter by moderation status instead.
func ListCourseReviews(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	pagination := utils.GetPagination(c)

	db := database.Database.Db.Model(&models.Review{}).Where("course_id = ?", courseID)

	status := "approved"
	if s := c.Query("status"); s != "" && middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		status = s
	}
	db = db.Where("status = ?", status)

	var total int64
	db.Count(&total)

	var reviews []models.Review
	if err := db.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.PaginatedResponse(c, "Reviews fetched successfully!", reviews, total, pagination.Page, pagination.Limit)
}

// ModerateReview approves or rejects a review and refreshes the course's
// average rating
func ModerateReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review id!", nil)
	}

	reqData, ok := c.Locals("validatedReviewModeration").(*interactionValidator.ReviewModerationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var review models.Review
	if err := db.First(&review, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found", nil)
	}

	if reqData.Status != nil {
		review.Status = *reqData.Status
	}
	if reqData.Comment != nil {
		review.Comment = *reqData.Comment
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		return refreshCourseRating(tx, review.CourseID)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to moderate review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review moderated!", review)
}

// DeleteReview removes a review. Author or admin only.
func DeleteReview(c *fiber.Ctx) error {
	callerID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review id!", nil)
	}

	db := database.Database.Db

	var review models.Review
	if err := db.First(&review, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found", nil)
	}

	if review.StudentID != callerID && !middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return refreshCourseRating(tx, review.CourseID)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}

// refreshCourseRating recomputes a course's average rating from its
// approved reviews
func refreshCourseRating(tx *gorm.DB, courseID uint) error {
	var avg float64
	if err := tx.Model(&models.Review{}).
		Where("course_id = ? AND status = ? AND deleted_at IS NULL", courseID, "approved").
		Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error; err != nil {
		return err
	}
	return tx.Model(&courseModels.Course{}).Where("id = ?", courseID).
		Update("average_rating", avg).Error
}
