package paymentValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type CartRequest struct {
	CourseIDs []uint `json:"course_ids" validate:"required,min=1"`
}

type CheckoutRequest struct {
	TransactionID  uint   `json:"transaction_id" validate:"required"`
	PaymentMethod  string `json:"payment_method" validate:"required,oneof=bank_card e_wallet bank_transfer"`
	PaymentGateway string `json:"payment_gateway" validate:"required"`
}

type WebhookRequest struct {
	TransactionCode string `json:"transaction_code" validate:"required"`
	Status          string `json:"status" validate:"required,oneof=pending completed failed refunded"`
}

func Cart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CartRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCart", reqData)
		return c.Next()
	}
}

func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CheckoutRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}

func Webhook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WebhookRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWebhook", reqData)
		return c.Next()
	}
}
