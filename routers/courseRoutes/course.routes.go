package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"
)

// SetupCourseRoutes sets up catalog, authoring and taxonomy routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses", middleware.JWTMiddleware)

	// Catalog
	courseGroup.Get("/list", controllers.ListCourses)
	courseGroup.Get("/:id", controllers.GetCourse)

	// Authoring
	courseGroup.Post("/create", middleware.MinRole(models.RoleInstructor), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", middleware.MinRole(models.RoleInstructor), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Put("/:id/status", middleware.MinRole(models.RoleInstructor), validators.ChangeStatus(), controllers.ChangeStatus)
	courseGroup.Delete("/:id", middleware.MinRole(models.RoleInstructor), controllers.DeleteCourse)

	// Outline
	courseGroup.Post("/:id/sections", middleware.MinRole(models.RoleInstructor), validators.CreateSection(), controllers.CreateSection)

	sectionGroup := app.Group("/sections", middleware.JWTMiddleware, middleware.MinRole(models.RoleInstructor))
	sectionGroup.Put("/:id", validators.UpdateSection(), controllers.UpdateSection)
	sectionGroup.Delete("/:id", controllers.DeleteSection)
	sectionGroup.Post("/:id/lessons", validators.CreateLesson(), controllers.CreateLesson)

	lessonGroup := app.Group("/lessons", middleware.JWTMiddleware, middleware.MinRole(models.RoleInstructor))
	lessonGroup.Put("/:id", validators.UpdateLesson(), controllers.UpdateLesson)
	lessonGroup.Delete("/:id", controllers.DeleteLesson)
	lessonGroup.Post("/:id/resources", validators.AddResource(), controllers.AddResource)

	resourceGroup := app.Group("/resources", middleware.JWTMiddleware, middleware.MinRole(models.RoleInstructor))
	resourceGroup.Delete("/:id", controllers.DeleteResource)

	// Taxonomy
	categoryGroup := app.Group("/categories", middleware.JWTMiddleware)
	categoryGroup.Get("/list", controllers.ListCategories)
	categoryGroup.Post("/create", middleware.MinRole(models.RoleSupportAdmin), validators.UpsertCategory(), controllers.CreateCategory)
	categoryGroup.Put("/:id", middleware.MinRole(models.RoleSupportAdmin), validators.UpsertCategory(), controllers.UpdateCategory)
	categoryGroup.Delete("/:id", middleware.MinRole(models.RoleSupportAdmin), controllers.DeleteCategory)

	tagGroup := app.Group("/tags", middleware.JWTMiddleware)
	tagGroup.Get("/list", controllers.ListTags)
	tagGroup.Post("/create", middleware.MinRole(models.RoleSupportAdmin), validators.UpsertTag(), controllers.CreateTag)
	tagGroup.Delete("/:id", middleware.MinRole(models.RoleSupportAdmin), controllers.DeleteTag)
}
