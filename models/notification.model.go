package models

import "gorm.io/gorm"

// NotificationType categorizes a notification for client-side routing.
type NotificationType string

const (
	NotificationCourse  NotificationType = "course"
	NotificationPayment NotificationType = "payment"
	NotificationMessage NotificationType = "message"
	NotificationSystem  NotificationType = "system"
)

type Notification struct {
	gorm.Model
	UserID  uint             `json:"user_id" gorm:"index;not null"`
	Type    NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	Title   string           `json:"title" gorm:"not null"`
	Content string           `json:"content" gorm:"type:text"`
	IsRead  bool             `json:"is_read" gorm:"default:false"`
}
