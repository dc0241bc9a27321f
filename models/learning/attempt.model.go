package learning

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt has two states: started (SubmittedAt nil) and submitted
// (score and passed set). Submitted attempts are immutable.
type QuizAttempt struct {
	gorm.Model
	StudentID   uint       `json:"student_id" gorm:"index;not null"`
	QuizID      uint       `json:"quiz_id" gorm:"index;not null"`
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Score       float64    `json:"score" gorm:"default:0"`
	Passed      bool       `json:"passed" gorm:"default:false"`
	TimeTaken   int        `json:"time_taken" gorm:"default:0"` // seconds

	Answers []StudentAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
}

// Submitted reports whether the attempt reached its terminal state.
func (a *QuizAttempt) Submitted() bool {
	return a.SubmittedAt != nil
}

// StudentAnswer rows are created in bulk when the attempt is submitted,
// one per graded question.
type StudentAnswer struct {
	gorm.Model
	AttemptID        uint    `json:"attempt_id" gorm:"index;not null"`
	QuestionID       uint    `json:"question_id" gorm:"not null"`
	SelectedOptionID *uint   `json:"selected_option_id"`
	AnswerText       string  `json:"answer_text" gorm:"type:text"`
	IsCorrect        bool    `json:"is_correct" gorm:"default:false"`
	PointsEarned     float64 `json:"points_earned" gorm:"default:0"`
}
