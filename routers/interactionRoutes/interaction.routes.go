package interactionRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/interaction"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/interaction"
)

// SetupInteractionRoutes sets up review, discussion, notification and
// messaging routes
func SetupInteractionRoutes(app *fiber.App) {
	reviewGroup := app.Group("/reviews", middleware.JWTMiddleware)
	reviewGroup.Post("/create", validators.CreateReview(), controllers.CreateReview)
	reviewGroup.Put("/:id/moderate", middleware.MinRole(models.RoleSupportAdmin), validators.ModerateReview(), controllers.ModerateReview)
	reviewGroup.Delete("/:id", controllers.DeleteReview)

	courseGroup := app.Group("/courses", middleware.JWTMiddleware)
	courseGroup.Get("/:id/reviews", controllers.ListCourseReviews)

	discussionGroup := app.Group("/discussions", middleware.JWTMiddleware)
	discussionGroup.Post("/create", validators.CreateDiscussion(), controllers.CreateDiscussion)
	discussionGroup.Post("/:id/replies", validators.Reply(), controllers.ReplyToDiscussion)
	discussionGroup.Delete("/:id", controllers.DeleteDiscussion)

	lessonGroup := app.Group("/lessons", middleware.JWTMiddleware)
	lessonGroup.Get("/:id/discussions", controllers.ListLessonDiscussions)

	notificationGroup := app.Group("/notifications", middleware.JWTMiddleware)
	notificationGroup.Get("/list", controllers.MyNotifications)
	notificationGroup.Put("/:id/read", controllers.MarkNotificationRead)
	notificationGroup.Put("/read-all", controllers.MarkAllNotificationsRead)
	notificationGroup.Post("/create", middleware.MinRole(models.RoleSupportAdmin), validators.CreateNotification(), controllers.CreateNotification)

	messageGroup := app.Group("/messages", middleware.JWTMiddleware)
	messageGroup.Post("/send", validators.SendMessage(), controllers.SendMessage)
	messageGroup.Get("/inbox", controllers.Inbox)
	messageGroup.Get("/conversation/:id", controllers.Conversation)
}
