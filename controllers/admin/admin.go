package adminController

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	learningModels "lms/models/learning"
	paymentModels "lms/models/payment"
	adminValidator "lms/validators/admin"
)

// Dashboard returns platform-wide counters and revenue for the admin panel
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalInstructors, totalCourses, publishedCourses int64
	var totalEnrollments, completedEnrollments, openTickets, pendingReviews int64
	var totalRevenue float64

	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ?", models.RoleInstructor).Count(&totalInstructors)
	db.Model(&courseModels.Course{}).Count(&totalCourses)
	db.Model(&courseModels.Course{}).
		Where("status = ? AND approval_status = ?", courseModels.CoursePublished, courseModels.ApprovalApproved).
		Count(&publishedCourses)
	db.Model(&learningModels.Enrollment{}).Count(&totalEnrollments)
	db.Model(&learningModels.Enrollment{}).
		Where("status = ?", learningModels.EnrollmentCompleted).Count(&completedEnrollments)
	db.Model(&models.SupportTicket{}).
		Where("status IN ?", []string{"open", "in_progress"}).Count(&openTickets)
	db.Model(&models.Review{}).Where("status = ?", "pending").Count(&pendingReviews)
	db.Model(&paymentModels.Transaction{}).
		Where("status = ?", paymentModels.TransactionCompleted).
		Select("COALESCE(SUM(final_amount), 0)").Scan(&totalRevenue)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_users":           totalUsers,
		"total_instructors":     totalInstructors,
		"total_courses":         totalCourses,
		"published_courses":     publishedCourses,
		"total_enrollments":     totalEnrollments,
		"completed_enrollments": completedEnrollments,
		"open_tickets":          openTickets,
		"pending_reviews":       pendingReviews,
		"total_revenue":         totalRevenue,
	})
}

// ListSettings returns every system setting
func ListSettings(c *fiber.Ctx) error {
	var settings []models.SystemSetting
	if err := database.Database.Db.Order("setting_key ASC").Find(&settings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch settings!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings fetched successfully!", settings)
}

// UpsertSetting creates or updates a setting by key
func UpsertSetting(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSetting").(*adminValidator.SettingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var setting models.SystemSetting
	if err := db.Where("setting_key = ?", reqData.Key).First(&setting).Error; err != nil {
		setting = models.SystemSetting{SettingKey: reqData.Key}
	}

	setting.SettingValue = reqData.Value
	if reqData.Description != "" {
		setting.Description = reqData.Description
	}

	if err := db.Save(&setting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save setting!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Setting saved successfully!", setting)
}

// DeleteSetting removes a setting by key
func DeleteSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid setting key!", nil)
	}

	db := database.Database.Db

	var setting models.SystemSetting
	if err := db.Where("setting_key = ?", key).First(&setting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Setting not found", nil)
	}

	if err := db.Delete(&setting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete setting!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Setting deleted successfully!", nil)
}
