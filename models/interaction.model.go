package models

import "gorm.io/gorm"

// Review moderation reuses the pending/approved/rejected convention; only
// approved reviews count toward a course's average rating.
type Review struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index:idx_review_course_student,unique;not null"`
	StudentID uint   `json:"student_id" gorm:"index:idx_review_course_student,unique;not null"`
	Rating    int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string `json:"comment" gorm:"type:text"`
	Status    string `json:"status" gorm:"default:'pending'"` // pending, approved, rejected
}

// QaDiscussion is a student question attached to a lesson.
type QaDiscussion struct {
	gorm.Model
	LessonID  uint   `json:"lesson_id" gorm:"index;not null"`
	StudentID uint   `json:"student_id" gorm:"not null"`
	Question  string `json:"question" gorm:"type:text;not null"`

	Replies []QaReply `json:"replies,omitempty" gorm:"foreignKey:DiscussionID"`
}

type QaReply struct {
	gorm.Model
	DiscussionID uint   `json:"discussion_id" gorm:"index;not null"`
	UserID       uint   `json:"user_id" gorm:"not null"`
	ReplyText    string `json:"reply_text" gorm:"type:text;not null"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
