package interactionController

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	interactionValidator "lms/validators/interaction"
)

// SendMessage delivers a direct message to another user
func SendMessage(c *fiber.Ctx) error {
	senderID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedMessage").(*interactionValidator.MessageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.ReceiverID == senderID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot message yourself!", nil)
	}

	db := database.Database.Db

	var receiver models.User
	if err := db.First(&receiver, reqData.ReceiverID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Receiver not found", nil)
	}

	message := models.Message{
		SenderID:    senderID,
		ReceiverID:  receiver.ID,
		CourseID:    reqData.CourseID,
		MessageText: reqData.MessageText,
	}
	if err := db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	var sender models.User
	if db.First(&sender, senderID).Error == nil {
		utils.NotifyNewMessage(receiver.ID, sender.FullName)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent successfully!", message)
}

// Conversation returns the two-way message history between the caller and
// another user, oldest first, and marks received messages read.
func Conversation(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	otherID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	pagination := utils.GetPagination(c)
	db := database.Database.Db

	query := db.Model(&models.Message{}).Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		callerID, otherID, otherID, callerID)

	var total int64
	query.Count(&total)

	var messages []models.Message
	if err := query.Order("created_at ASC").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, callerID, false).
		Update("is_read", true)

	return middleware.PaginatedResponse(c, "Messages fetched successfully!", messages, total, pagination.Page, pagination.Limit)
}

// Inbox lists the caller's received messages, newest first
func Inbox(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pagination := utils.GetPagination(c)

	db := database.Database.Db.Model(&models.Message{}).Where("receiver_id = ?", callerID)
	if c.Query("unread") == "true" {
		db = db.Where("is_read = ?", false)
	}

	var total int64
	db.Count(&total)

	var messages []models.Message
	if err := db.Preload("Sender").Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.PaginatedResponse(c, "Inbox fetched successfully!", messages, total, pagination.Page, pagination.Limit)
}
