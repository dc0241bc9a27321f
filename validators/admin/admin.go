package adminValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type SettingRequest struct {
	Key         string `json:"key" validate:"required"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type TicketRequest struct {
	Category    string `json:"category" validate:"required,oneof=technical payment content other"`
	Subject     string `json:"subject" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=10"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type TicketUpdateRequest struct {
	Status     *string `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Priority   *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo *uint   `json:"assigned_to"`
}

type TicketReplyRequest struct {
	ReplyText string `json:"reply_text" validate:"required"`
}

func UpsertSetting() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SettingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSetting", reqData)
		return c.Next()
	}
}

func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TicketRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTicket", reqData)
		return c.Next()
	}
}

func UpdateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TicketUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTicketUpdate", reqData)
		return c.Next()
	}
}

func ReplyTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TicketReplyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTicketReply", reqData)
		return c.Next()
	}
}
