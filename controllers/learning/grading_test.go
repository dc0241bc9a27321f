package learningController_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	learningController "lms/controllers/learning"
	courseModels "lms/models/course"
	learningValidator "lms/validators/learning"
)

func option(id uint, text string, correct bool) courseModels.AnswerOption {
	opt := courseModels.AnswerOption{OptionText: text, IsCorrect: correct}
	opt.ID = id
	return opt
}

func question(id uint, qType courseModels.QuestionType, points float64, options ...courseModels.AnswerOption) courseModels.Question {
	q := courseModels.Question{QuestionType: qType, Points: points, Options: options}
	q.ID = id
	return q
}

func selected(questionID, optionID uint) learningValidator.SubmittedAnswer {
	return learningValidator.SubmittedAnswer{QuestionID: questionID, SelectedOptionID: &optionID}
}

func TestGradeAttemptScoresEarnedShareOfPoints(t *testing.T) {
	questions := []courseModels.Question{
		question(1, courseModels.QuestionMultipleChoice, 2,
			option(10, "A", true), option(11, "B", false)),
		question(2, courseModels.QuestionMultipleChoice, 1,
			option(20, "A", false), option(21, "B", true)),
	}

	result := learningController.GradeAttempt(questions, []learningValidator.SubmittedAnswer{
		selected(1, 10), // correct, 2 points
		selected(2, 20), // wrong
	}, 60)

	assert.InDelta(t, 66.67, result.Score, 0.001)
	assert.True(t, result.Passed)
	assert.Equal(t, 2.0, result.PointsEarned)
	assert.Equal(t, 3.0, result.PointsTotal)
	assert.Len(t, result.Answers, 2)
	assert.True(t, result.Answers[0].IsCorrect)
	assert.False(t, result.Answers[1].IsCorrect)
}

func TestGradeAttemptZeroPointQuizScoresZero(t *testing.T) {
	questions := []courseModels.Question{
		question(1, courseModels.QuestionTrueFalse, 0,
			option(10, "True", true), option(11, "False", false)),
	}

	result := learningController.GradeAttempt(questions, []learningValidator.SubmittedAnswer{
		selected(1, 10),
	}, 0)

	assert.Equal(t, 0.0, result.Score)
	// passing score zero means any submission passes
	assert.True(t, result.Passed)
}

func TestGradeAttemptFillBlankIgnoresCaseAndWhitespace(t *testing.T) {
	questions := []courseModels.Question{
		question(1, courseModels.QuestionFillBlank, 1, option(10, "Goroutine", true)),
	}

	result := learningController.GradeAttempt(questions, []learningValidator.SubmittedAnswer{
		{QuestionID: 1, AnswerText: "  goroutine "},
	}, 100)

	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.Passed)

	result = learningController.GradeAttempt(questions, []learningValidator.SubmittedAnswer{
		{QuestionID: 1, AnswerText: "channel"},
	}, 100)

	assert.Equal(t, 0.0, result.Score)
	assert.False(t, result.Passed)
}

func TestGradeAttemptDropsUnknownQuestions(t *testing.T) {
	questions := []courseModels.Question{
		question(1, courseModels.QuestionMultipleChoice, 1,
			option(10, "A", true), option(11, "B", false)),
	}

	result := learningController.GradeAttempt(questions, []learningValidator.SubmittedAnswer{
		selected(1, 10),
		selected(99, 10), // not part of the quiz
	}, 0)

	assert.Len(t, result.Answers, 1)
	assert.Equal(t, 100.0, result.Score)
}

func TestGradeAttemptUnansweredQuestionsEarnNothing(t *testing.T) {
	questions := []courseModels.Question{
		question(1, courseModels.QuestionMultipleChoice, 1,
			option(10, "A", true), option(11, "B", false)),
		question(2, courseModels.QuestionMultipleChoice, 1,
			option(20, "A", true), option(21, "B", false)),
	}

	result := learningController.GradeAttempt(questions, []learningValidator.SubmittedAnswer{
		selected(1, 10),
	}, 50)

	assert.Equal(t, 50.0, result.Score)
	assert.True(t, result.Passed)
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 60.0, learningController.CompletionPercentage(3, 5))
	assert.Equal(t, 0.0, learningController.CompletionPercentage(0, 5))
	assert.Equal(t, 100.0, learningController.CompletionPercentage(5, 5))
	assert.Equal(t, 0.0, learningController.CompletionPercentage(0, 0))
	assert.InDelta(t, 33.33, learningController.CompletionPercentage(1, 3), 0.001)
}
