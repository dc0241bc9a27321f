package systemRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/system"
	"lms/middleware"
	"lms/models"
)

// SetupSystemRoutes sets up health and runtime metrics routes
func SetupSystemRoutes(app *fiber.App) {
	app.Get("/healthz", controllers.Healthz)
	app.Get("/metrics", middleware.JWTMiddleware, middleware.MinRole(models.RoleSupportAdmin), controllers.Metrics)
}
