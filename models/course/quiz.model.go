package course

import "gorm.io/gorm"

// Quiz belongs to one lesson. PassingScore and MaxAttempts of zero mean
// "no threshold" and "unlimited attempts" respectively.
type Quiz struct {
	gorm.Model
	LessonID           uint    `json:"lesson_id" gorm:"uniqueIndex;not null"`
	Title              string  `json:"title" gorm:"not null"`
	Description        string  `json:"description" gorm:"type:text"`
	TimeLimit          int     `json:"time_limit" gorm:"default:0"` // minutes
	PassingScore       float64 `json:"passing_score" gorm:"default:0"`
	MaxAttempts        int     `json:"max_attempts" gorm:"default:0"`
	ShuffleQuestions   bool    `json:"shuffle_questions" gorm:"default:true"`
	ShowCorrectAnswers bool    `json:"show_correct_answers" gorm:"default:true"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

// QuestionType controls how a submitted answer is graded.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionFillBlank      QuestionType = "fill_blank"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionFillBlank:
		return true
	}
	return false
}

type Question struct {
	gorm.Model
	QuizID       uint         `json:"quiz_id" gorm:"index;not null"`
	QuestionText string       `json:"question_text" gorm:"type:text;not null"`
	QuestionType QuestionType `json:"question_type" gorm:"type:varchar(20);not null"`
	Points       float64      `json:"points" gorm:"default:1"`
	DisplayOrder int          `json:"display_order" gorm:"default:0"`
	Explanation  string       `json:"explanation" gorm:"type:text"`

	Options []AnswerOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

// CorrectOption returns the option marked correct, or nil. Question writes
// enforce exactly one correct option, so the first hit wins.
func (q *Question) CorrectOption() *AnswerOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

type AnswerOption struct {
	gorm.Model
	QuestionID   uint   `json:"question_id" gorm:"index;not null"`
	OptionText   string `json:"option_text" gorm:"type:text;not null"`
	IsCorrect    bool   `json:"is_correct" gorm:"default:false"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
}
