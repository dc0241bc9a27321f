package adminController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	adminValidator "lms/validators/admin"
)

// CreateTicket opens a support ticket for the caller
func CreateTicket(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTicket").(*adminValidator.TicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticket := models.SupportTicket{
		UserID:      userID,
		Category:    reqData.Category,
		Subject:     reqData.Subject,
		Description: reqData.Description,
		Priority:    reqData.Priority,
		Status:      "open",
	}
	if ticket.Priority == "" {
		ticket.Priority = "medium"
	}

	if err := database.Database.Db.Create(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Ticket created successfully!", ticket)
}

// ListTickets lists the caller's tickets; support staff see everyone's
func ListTickets(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pagination := utils.GetPagination(c)

	db := database.Database.Db.Model(&models.SupportTicket{})
	if !middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		db = db.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if priority := c.Query("priority"); priority != "" {
		db = db.Where("priority = ?", priority)
	}

	var total int64
	db.Count(&total)

	var tickets []models.SupportTicket
	if err := db.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	return middleware.PaginatedResponse(c, "Tickets fetched successfully!", tickets, total, pagination.Page, pagination.Limit)
}

// GetTicket returns one ticket with its thread
func GetTicket(c *fiber.Ctx) error {
	userID, _ := middleware.CallerID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	var ticket models.SupportTicket
	if err := database.Database.Db.Preload("Replies").First(&ticket, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found", nil)
	}

	if ticket.UserID != userID && !middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket fetched successfully!", ticket)
}

// UpdateTicket changes status, priority or assignee. Support staff only.
func UpdateTicket(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	reqData, ok := c.Locals("validatedTicketUpdate").(*adminValidator.TicketUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var ticket models.SupportTicket
	if err := db.First(&ticket, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found", nil)
	}

	if reqData.Status != nil {
		ticket.Status = *reqData.Status
		if ticket.Status == "resolved" || ticket.Status == "closed" {
			if ticket.ResolvedAt == nil {
				now := time.Now()
				ticket.ResolvedAt = &now
			}
		} else {
			ticket.ResolvedAt = nil
		}
	}
	if reqData.Priority != nil {
		ticket.Priority = *reqData.Priority
	}
	if reqData.AssignedTo != nil {
		ticket.AssignedTo = reqData.AssignedTo
	}

	if err := db.Save(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ticket!", nil)
	}

	utils.NotifyTicketUpdate(ticket.UserID, ticket.Subject, ticket.Status)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket updated successfully!", ticket)
}

// ReplyTicket appends a reply to the ticket thread. The opener and support
// staff may reply; a staff reply moves an open ticket to in_progress.
func ReplyTicket(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	reqData, ok := c.Locals("validatedTicketReply").(*adminValidator.TicketReplyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var ticket models.SupportTicket
	if err := db.First(&ticket, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found", nil)
	}

	isStaff := middleware.CallerRole(c).AtLeast(models.RoleSupportAdmin)
	if ticket.UserID != userID && !isStaff {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	reply := models.SupportReply{
		TicketID:  ticket.ID,
		UserID:    userID,
		ReplyText: reqData.ReplyText,
	}
	if err := db.Create(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post reply!", nil)
	}

	if isStaff && ticket.Status == "open" {
		ticket.Status = "in_progress"
		db.Save(&ticket)
	}

	if ticket.UserID != userID {
		utils.NotifyTicketUpdate(ticket.UserID, ticket.Subject, ticket.Status)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply posted successfully!", reply)
}
