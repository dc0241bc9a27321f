package models

import (
	"time"

	"gorm.io/gorm"
)

// User account. Role drives every authorization check in the API.
type User struct {
	gorm.Model
	Email        string     `json:"email" gorm:"unique;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	FullName     string     `json:"full_name" gorm:"not null"`
	Phone        string     `json:"phone" gorm:"default:''"`
	AvatarURL    string     `json:"avatar_url" gorm:"default:''"`
	Role         Role       `json:"role" gorm:"type:varchar(20);default:'student'"`
	Status       string     `json:"status" gorm:"default:'active'"` // active, suspended
	LastLogin    *time.Time `json:"last_login"`
}

// InstructorProfile is the teaching application attached to a user account.
// Approval promotes the user from student to instructor.
type InstructorProfile struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	Bio             string     `json:"bio" gorm:"type:text"`
	Education       string     `json:"education" gorm:"type:text"`
	Experience      string     `json:"experience" gorm:"type:text"`
	Certificates    string     `json:"certificates" gorm:"type:text"`
	ApprovalStatus  string     `json:"approval_status" gorm:"default:'pending'"` // pending, approved, rejected
	ApprovedBy      *uint      `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason string     `json:"rejection_reason" gorm:"type:text"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
