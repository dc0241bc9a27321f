package courseValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type CreateCourseRequest struct {
	CategoryID    *uint    `json:"category_id"`
	Title         string   `json:"title" validate:"required,min=3"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	Level         string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Language      string   `json:"language"`
	Price         float64  `json:"price" validate:"gte=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gte=0"`
	DurationHours int      `json:"duration_hours" validate:"gte=0"`
	TagIDs        []uint   `json:"tag_ids"`
}

type UpdateCourseRequest struct {
	CategoryID    *uint    `json:"category_id"`
	Title         *string  `json:"title" validate:"omitempty,min=3"`
	Slug          *string  `json:"slug"`
	Description   *string  `json:"description"`
	ThumbnailURL  *string  `json:"thumbnail_url"`
	Level         *string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Language      *string  `json:"language"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gte=0"`
	DurationHours *int     `json:"duration_hours" validate:"omitempty,gte=0"`
	TagIDs        []uint   `json:"tag_ids"`
}

type ChangeStatusRequest struct {
	Status          *string `json:"status" validate:"omitempty,oneof=draft pending published rejected archived"`
	ApprovalStatus  *string `json:"approval_status" validate:"omitempty,oneof=pending approved rejected"`
	RejectionReason *string `json:"rejection_reason"`
}

type SectionRequest struct {
	Title        string `json:"title" validate:"required,min=2"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type UpdateSectionRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=2"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,gte=0"`
}

type LessonRequest struct {
	Title         string `json:"title" validate:"required,min=2"`
	Description   string `json:"description"`
	LessonType    string `json:"lesson_type" validate:"required,oneof=video document quiz assignment"`
	VideoURL      string `json:"video_url"`
	VideoDuration int    `json:"video_duration" validate:"gte=0"`
	Content       string `json:"content"`
	AllowPreview  bool   `json:"allow_preview"`
	DisplayOrder  int    `json:"display_order" validate:"gte=0"`
}

type UpdateLessonRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=2"`
	Description   *string `json:"description"`
	LessonType    *string `json:"lesson_type" validate:"omitempty,oneof=video document quiz assignment"`
	VideoURL      *string `json:"video_url"`
	VideoDuration *int    `json:"video_duration" validate:"omitempty,gte=0"`
	Content       *string `json:"content"`
	AllowPreview  *bool   `json:"allow_preview"`
	DisplayOrder  *int    `json:"display_order" validate:"omitempty,gte=0"`
}

type ResourceRequest struct {
	Title    string `json:"title" validate:"required"`
	FileURL  string `json:"file_url" validate:"required"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size" validate:"gte=0"`
}

type CategoryRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	ParentID     *uint  `json:"parent_id"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type TagRequest struct {
	Name string `json:"name" validate:"required,min=2"`
	Slug string `json:"slug"`
}

// validateBody parses and validates a request body, storing it under key.
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

func CreateCourse() fiber.Handler   { return validateBody[CreateCourseRequest]("validatedCourse") }
func UpdateCourse() fiber.Handler   { return validateBody[UpdateCourseRequest]("validatedCourseUpdate") }
func ChangeStatus() fiber.Handler   { return validateBody[ChangeStatusRequest]("validatedStatusChange") }
func CreateSection() fiber.Handler  { return validateBody[SectionRequest]("validatedSection") }
func UpdateSection() fiber.Handler  { return validateBody[UpdateSectionRequest]("validatedSectionUpdate") }
func CreateLesson() fiber.Handler   { return validateBody[LessonRequest]("validatedLesson") }
func UpdateLesson() fiber.Handler   { return validateBody[UpdateLessonRequest]("validatedLessonUpdate") }
func AddResource() fiber.Handler    { return validateBody[ResourceRequest]("validatedResource") }
func UpsertCategory() fiber.Handler { return validateBody[CategoryRequest]("validatedCategory") }
func UpsertTag() fiber.Handler      { return validateBody[TagRequest]("validatedTag") }
