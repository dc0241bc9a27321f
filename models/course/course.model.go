package course

import (
	"time"

	"gorm.io/gorm"

	"lms/models"
)

// CourseStatus is the publication state chosen by the instructor.
type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePending   CourseStatus = "pending"
	CoursePublished CourseStatus = "published"
	CourseRejected  CourseStatus = "rejected"
	CourseArchived  CourseStatus = "archived"
)

// ApprovalStatus is the moderation state set by admins, independent of the
// publication status above.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Course is visible to students only when published AND approved.
type Course struct {
	gorm.Model
	InstructorID    uint           `json:"instructor_id" gorm:"index;not null"`
	CategoryID      *uint          `json:"category_id"`
	Title           string         `json:"title" gorm:"not null"`
	Slug            string         `json:"slug" gorm:"unique;not null"`
	Description     string         `json:"description" gorm:"type:text"`
	ThumbnailURL    string         `json:"thumbnail_url"`
	Level           string         `json:"level" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	Language        string         `json:"language" gorm:"default:'English'"`
	Price           float64        `json:"price" gorm:"default:0"`
	DiscountPrice   *float64       `json:"discount_price"`
	DurationHours   int            `json:"duration_hours" gorm:"default:0"`
	Status          CourseStatus   `json:"status" gorm:"type:varchar(20);default:'draft'"`
	ApprovalStatus  ApprovalStatus `json:"approval_status" gorm:"type:varchar(20);default:'pending'"`
	ReviewedBy      *uint          `json:"reviewed_by"`
	ReviewedAt      *time.Time     `json:"reviewed_at"`
	RejectionReason string         `json:"rejection_reason" gorm:"type:text"`
	TotalStudents   int            `json:"total_students" gorm:"default:0"`
	AverageRating   float64        `json:"average_rating" gorm:"default:0"`
	PublishedAt     *time.Time     `json:"published_at"`

	Instructor *models.User `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Category   *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Sections   []Section    `json:"sections,omitempty" gorm:"foreignKey:CourseID"`
	Tags       []CourseTag  `json:"tags,omitempty" gorm:"many2many:course_tag_mappings;"`
}

// SalePrice returns the effective price a student pays.
func (c *Course) SalePrice() float64 {
	if c.DiscountPrice != nil && *c.DiscountPrice < c.Price {
		return *c.DiscountPrice
	}
	return c.Price
}

// Enrollable reports whether students may enroll in the course.
func (c *Course) Enrollable() bool {
	return c.Status == CoursePublished && c.ApprovalStatus == ApprovalApproved
}
