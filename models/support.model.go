package models

import (
	"time"

	"gorm.io/gorm"
)

type SupportTicket struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	Category    string     `json:"category" gorm:"default:'other'"`   // technical, payment, content, other
	Subject     string     `json:"subject" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Priority    string     `json:"priority" gorm:"default:'medium'"`  // low, medium, high, urgent
	Status      string     `json:"status" gorm:"default:'open'"`      // open, in_progress, resolved, closed
	AssignedTo  *uint      `json:"assigned_to"`
	ResolvedAt  *time.Time `json:"resolved_at"`

	Replies []SupportReply `json:"replies,omitempty" gorm:"foreignKey:TicketID"`
}

type SupportReply struct {
	gorm.Model
	TicketID  uint   `json:"ticket_id" gorm:"index;not null"`
	UserID    uint   `json:"user_id" gorm:"not null"`
	ReplyText string `json:"reply_text" gorm:"type:text;not null"`
}
