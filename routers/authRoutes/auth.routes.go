package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/auth"
	"lms/middleware"
	validators "lms/validators/auth"
)

// SetupAuthRoutes sets up registration, login and profile routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", validators.Register(), controllers.Register)
	authGroup.Post("/login", validators.Login(), controllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, controllers.GetMe)
}
