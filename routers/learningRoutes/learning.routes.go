package learningRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/learning"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/learning"
)

// SetupLearningRoutes sets up enrollment, progress, quiz and attempt routes
func SetupLearningRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enrollments", middleware.JWTMiddleware)

	enrollGroup.Post("/create", validators.Enroll(), controllers.Enroll)
	enrollGroup.Get("/list", controllers.MyEnrollments)
	enrollGroup.Get("/:id", controllers.GetEnrollment)
	enrollGroup.Post("/:id/drop", controllers.DropEnrollment)
	enrollGroup.Post("/:id/progress", validators.RecordProgress(), controllers.RecordProgress)
	enrollGroup.Post("/:id/certificate", controllers.IssueCertificate)

	progressGroup := app.Group("/progress", middleware.JWTMiddleware)
	progressGroup.Get("/course/:id", controllers.CourseProgress)

	// Instructor roster view
	courseGroup := app.Group("/courses", middleware.JWTMiddleware)
	courseGroup.Get("/:id/students", middleware.MinRole(models.RoleInstructor), controllers.CourseStudents)

	quizGroup := app.Group("/quizzes", middleware.JWTMiddleware)
	quizGroup.Post("/create", middleware.MinRole(models.RoleInstructor), validators.UpsertQuiz(), controllers.CreateQuiz)
	quizGroup.Get("/:id", controllers.GetQuiz)
	quizGroup.Put("/:id", middleware.MinRole(models.RoleInstructor), validators.UpsertQuiz(), controllers.UpdateQuiz)
	quizGroup.Delete("/:id", middleware.MinRole(models.RoleInstructor), controllers.DeleteQuiz)
	quizGroup.Post("/:id/questions", middleware.MinRole(models.RoleInstructor), validators.UpsertQuestion(), controllers.AddQuestion)
	quizGroup.Post("/:id/attempts", controllers.StartAttempt)
	quizGroup.Get("/:id/attempts", controllers.MyAttempts)

	questionGroup := app.Group("/questions", middleware.JWTMiddleware, middleware.MinRole(models.RoleInstructor))
	questionGroup.Put("/:id", validators.UpsertQuestion(), controllers.UpdateQuestion)
	questionGroup.Delete("/:id", controllers.DeleteQuestion)

	attemptGroup := app.Group("/attempts", middleware.JWTMiddleware)
	attemptGroup.Post("/:id/submit", validators.SubmitAttempt(), controllers.SubmitAttempt)
	attemptGroup.Get("/:id", controllers.GetAttempt)
}
