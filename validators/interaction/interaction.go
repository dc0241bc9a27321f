package interactionValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type DiscussionRequest struct {
	LessonID uint   `json:"lesson_id" validate:"required"`
	Question string `json:"question" validate:"required,min=5"`
}

type ReplyRequest struct {
	ReplyText string `json:"reply_text" validate:"required"`
}

type ReviewRequest struct {
	CourseID uint   `json:"course_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment"`
}

type ReviewModerationRequest struct {
	Status  *string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Comment *string `json:"comment"`
}

type NotificationRequest struct {
	UserID  uint   `json:"user_id" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=course payment message system"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type MessageRequest struct {
	ReceiverID  uint   `json:"receiver_id" validate:"required"`
	CourseID    *uint  `json:"course_id"`
	MessageText string `json:"message_text" validate:"required"`
}

func validateBody[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}

func CreateDiscussion() fiber.Handler { return validateBody[DiscussionRequest]("validatedDiscussion") }
func Reply() fiber.Handler            { return validateBody[ReplyRequest]("validatedReply") }
func CreateReview() fiber.Handler     { return validateBody[ReviewRequest]("validatedReview") }
func ModerateReview() fiber.Handler {
	return validateBody[ReviewModerationRequest]("validatedReviewModeration")
}
func CreateNotification() fiber.Handler {
	return validateBody[NotificationRequest]("validatedNotification")
}
func SendMessage() fiber.Handler { return validateBody[MessageRequest]("validatedMessage") }
