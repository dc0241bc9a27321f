package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/user"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/user"
)

// SetupUserRoutes sets up user management routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users", middleware.JWTMiddleware)

	userGroup.Get("/list", middleware.MinRole(models.RoleSupportAdmin), controllers.ListUsers)
	userGroup.Get("/:id", controllers.GetUser)
	userGroup.Put("/:id", validators.UpdateUser(), controllers.UpdateUser)
	userGroup.Put("/:id/role", middleware.MinRole(models.RoleSystemAdmin), validators.UpdateRole(), controllers.UpdateUserRole)
	userGroup.Put("/:id/password", validators.ChangePassword(), controllers.ChangePassword)
	userGroup.Get("/:id/courses", controllers.GetUserCourses)
}
