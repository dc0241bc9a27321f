package middleware

import (
	"github.com/gofiber/fiber/v2"

	"lms/models"
)

// AllowRoles returns a middleware that admits only the listed roles.
func AllowRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := CallerRole(c)
		for _, role := range roles {
			if current == role {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "Forbidden", nil)
	}
}

// MinRole returns a middleware that admits callers whose role ranks at or
// above min in the role hierarchy.
func MinRole(min models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CallerRole(c).AtLeast(min) {
			return JsonResponse(c, fiber.StatusForbidden, false, "Insufficient role", nil)
		}
		return c.Next()
	}
}
