package instructorRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/instructor"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/instructor"
)

// SetupInstructorRoutes sets up instructor application and review routes
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructors", middleware.JWTMiddleware)

	instructorGroup.Post("/profile", validators.UpsertProfile(), controllers.CreateProfile)
	instructorGroup.Put("/profile", validators.UpsertProfile(), controllers.UpdateProfile)
	instructorGroup.Get("/profiles", middleware.MinRole(models.RoleSupportAdmin), controllers.ListProfiles)
	instructorGroup.Post("/profiles/:id/review", middleware.MinRole(models.RoleSupportAdmin), validators.ReviewProfile(), controllers.ReviewProfile)
	instructorGroup.Get("/:id/courses", controllers.GetInstructorCourses)
}
