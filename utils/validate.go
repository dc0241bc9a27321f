package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator tags over a request struct and flattens the
// failures into a field -> message map for the validation error envelope.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = "Invalid request body!"
		return errors
	}

	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			errors[field] = field + " is required!"
		case "email":
			errors[field] = "Invalid email!"
		case "min":
			errors[field] = field + " must be at least " + fieldErr.Param() + " characters long!"
		case "max":
			errors[field] = field + " must be at most " + fieldErr.Param() + " long!"
		case "oneof":
			errors[field] = field + " must be one of: " + fieldErr.Param()
		case "gte":
			errors[field] = field + " must be at least " + fieldErr.Param() + "!"
		case "lte":
			errors[field] = field + " must be at most " + fieldErr.Param() + "!"
		default:
			errors[field] = "Invalid " + field + "!"
		}
	}
	return errors
}
