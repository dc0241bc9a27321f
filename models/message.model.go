package models

import "gorm.io/gorm"

// Message is a direct message between two users, optionally tied to a course.
type Message struct {
	gorm.Model
	SenderID    uint   `json:"sender_id" gorm:"index;not null"`
	ReceiverID  uint   `json:"receiver_id" gorm:"index;not null"`
	CourseID    *uint  `json:"course_id"`
	MessageText string `json:"message_text" gorm:"type:text;not null"`
	IsRead      bool   `json:"is_read" gorm:"default:false"`

	Sender   *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}
