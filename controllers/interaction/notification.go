package interactionController

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	interactionValidator "lms/validators/interaction"
)

// MyNotifications lists the caller's notifications, newest first
func MyNotifications(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pagination := utils.GetPagination(c)

	db := database.Database.Db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		db = db.Where("is_read = ?", false)
	}
	if kind := c.Query("type"); kind != "" {
		db = db.Where("type = ?", kind)
	}

	var total int64
	db.Count(&total)

	var notifications []models.Notification
	if err := db.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.PaginatedResponse(c, "Notifications fetched successfully!", notifications, total, pagination.Page, pagination.Limit)
}

// MarkNotificationRead flags one notification as read
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	db := database.Database.Db

	var notification models.Notification
	if err := db.First(&notification, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found", nil)
	}

	if notification.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	notification.IsRead = true
	if err := db.Save(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", notification)
}

// MarkAllNotificationsRead flags every unread notification of the caller
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read!", nil)
}

// CreateNotification lets an admin push a notification to a user
func CreateNotification(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedNotification").(*interactionValidator.NotificationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, reqData.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
	}

	notification := models.Notification{
		UserID:  user.ID,
		Type:    models.NotificationType(reqData.Type),
		Title:   reqData.Title,
		Content: reqData.Content,
	}
	if err := db.Create(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Notification created successfully!", notification)
}
