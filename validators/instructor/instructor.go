package instructorValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type UpsertProfileRequest struct {
	Bio          string `json:"bio" validate:"required,min=10"`
	Education    string `json:"education"`
	Experience   string `json:"experience"`
	Certificates string `json:"certificates"`
}

type ReviewProfileRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason"`
}

func UpsertProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpsertProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

func ReviewProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReviewProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfileReview", reqData)
		return c.Next()
	}
}
