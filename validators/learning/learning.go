package learningValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type EnrollRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
}

type ProgressRequest struct {
	LessonID      uint    `json:"lesson_id" validate:"required"`
	Status        *string `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
	VideoProgress *int    `json:"video_progress" validate:"omitempty,gte=0,lte=100"`
}

type UpsertQuizRequest struct {
	LessonID           uint    `json:"lesson_id" validate:"required"`
	Title              string  `json:"title" validate:"required,min=2"`
	Description        string  `json:"description"`
	TimeLimit          int     `json:"time_limit" validate:"gte=0"`
	PassingScore       float64 `json:"passing_score" validate:"gte=0,lte=100"`
	MaxAttempts        int     `json:"max_attempts" validate:"gte=0"`
	ShuffleQuestions   *bool   `json:"shuffle_questions"`
	ShowCorrectAnswers *bool   `json:"show_correct_answers"`
}

type QuestionOption struct {
	OptionText   string `json:"option_text" validate:"required"`
	IsCorrect    bool   `json:"is_correct"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type UpsertQuestionRequest struct {
	QuestionText string           `json:"question_text" validate:"required"`
	QuestionType string           `json:"question_type" validate:"required,oneof=multiple_choice true_false fill_blank"`
	Points       float64          `json:"points" validate:"gte=0"`
	DisplayOrder int              `json:"display_order" validate:"gte=0"`
	Explanation  string           `json:"explanation"`
	Options      []QuestionOption `json:"options" validate:"required,min=1,dive"`
}

type SubmittedAnswer struct {
	QuestionID       uint   `json:"question_id" validate:"required"`
	SelectedOptionID *uint  `json:"selected_option_id"`
	AnswerText       string `json:"answer_text"`
}

type SubmitAttemptRequest struct {
	Answers   []SubmittedAnswer `json:"answers" validate:"dive"`
	TimeTaken int               `json:"time_taken" validate:"gte=0"`
}

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

func RecordProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

func UpsertQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpsertQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func UpsertQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpsertQuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// A gradeable question needs exactly one correct option; free-text
		// questions store their accepted answer as the single correct option.
		correct := 0
		for _, opt := range reqData.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"options": "Exactly one option must be marked correct!",
			})
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitAttemptRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}
