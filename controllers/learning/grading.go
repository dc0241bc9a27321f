package learningController

import (
	"math"
	"strings"

	courseModels "lms/models/course"
	learningModels "lms/models/learning"
	learningValidator "lms/validators/learning"
)

// GradeResult is the outcome of grading one quiz attempt.
type GradeResult struct {
	Score        float64
	Passed       bool
	PointsEarned float64
	PointsTotal  float64
	Answers      []learningModels.StudentAnswer
}

// round2 rounds to two decimal places, matching how scores are displayed
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// matchFillBlank compares a free-text answer against the accepted answer,
// ignoring case and surrounding whitespace
func matchFillBlank(answer, accepted string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(accepted))
}

// GradeAttempt grades submitted answers against the quiz's questions.
// Answers referencing unknown questions are dropped; unanswered questions
// simply earn nothing. The score is the earned share of the total points on
// a 0-100 scale, rounded to two decimals. A zero-point quiz scores zero.
// A passing score of zero means every submission passes.
func GradeAttempt(questions []courseModels.Question, answers []learningValidator.SubmittedAnswer, passingScore float64) GradeResult {
	byID := make(map[uint]*courseModels.Question, len(questions))
	var pointsTotal float64
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
		pointsTotal += questions[i].Points
	}

	result := GradeResult{PointsTotal: pointsTotal}

	for _, ans := range answers {
		question, ok := byID[ans.QuestionID]
		if !ok {
			continue
		}

		graded := learningModels.StudentAnswer{
			QuestionID:       ans.QuestionID,
			SelectedOptionID: ans.SelectedOptionID,
			AnswerText:       ans.AnswerText,
		}

		switch question.QuestionType {
		case courseModels.QuestionFillBlank:
			if correct := question.CorrectOption(); correct != nil && matchFillBlank(ans.AnswerText, correct.OptionText) {
				graded.IsCorrect = true
			}
		default:
			if ans.SelectedOptionID != nil {
				for _, opt := range question.Options {
					if opt.ID == *ans.SelectedOptionID && opt.IsCorrect {
						graded.IsCorrect = true
						break
					}
				}
			}
		}

		if graded.IsCorrect {
			graded.PointsEarned = question.Points
			result.PointsEarned += question.Points
		}

		result.Answers = append(result.Answers, graded)
	}

	if pointsTotal > 0 {
		result.Score = round2(100 * result.PointsEarned / pointsTotal)
	}
	result.Passed = result.Score >= passingScore

	return result
}

// CompletionPercentage computes a course completion figure from lesson
// counts, rounded to two decimals. A course with no lessons reads as zero.
func CompletionPercentage(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return round2(100 * float64(completed) / float64(total))
}
