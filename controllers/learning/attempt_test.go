package learningController_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	learningModels "lms/models/learning"
)

// quizWithQuestion builds a quiz with one two-option question on a fresh
// lesson and returns the quiz plus the correct option id
func quizWithQuestion(t *testing.T, sectionID uint, maxAttempts int) (*courseModels.Quiz, uint) {
	t.Helper()
	db := database.Database.Db

	lesson := courseModels.Lesson{SectionID: sectionID, Title: "Quiz Lesson", LessonType: "quiz"}
	require.NoError(t, db.Create(&lesson).Error)

	quiz := courseModels.Quiz{
		LessonID:     lesson.ID,
		Title:        "Checkpoint",
		PassingScore: 50,
		MaxAttempts:  maxAttempts,
	}
	require.NoError(t, db.Create(&quiz).Error)

	question := courseModels.Question{
		QuizID:       quiz.ID,
		QuestionText: "Pick A",
		QuestionType: courseModels.QuestionMultipleChoice,
		Points:       1,
		Options: []courseModels.AnswerOption{
			{OptionText: "A", IsCorrect: true},
			{OptionText: "B", IsCorrect: false},
		},
	}
	require.NoError(t, db.Create(&question).Error)

	var correct courseModels.AnswerOption
	require.NoError(t, db.Where("question_id = ? AND is_correct = ?", question.ID, true).First(&correct).Error)

	return &quiz, correct.ID
}

func TestSubmitAttemptGradesAndCloses(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	student, token := createUser(t, models.RoleStudent)
	course, section := publishedCourse(t, instructor.ID)
	enroll(t, student.ID, course.ID)

	quiz, correctID := quizWithQuestion(t, section.ID, 0)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/quizzes/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var attempt learningModels.QuizAttempt
	require.NoError(t, database.Database.Db.Where("student_id = ?", student.ID).First(&attempt).Error)

	var question courseModels.Question
	require.NoError(t, database.Database.Db.Where("quiz_id = ?", quiz.ID).First(&question).Error)

	resp, env := doRequest(t, app, http.MethodPost, fmt.Sprintf("/attempts/%d/submit", attempt.ID), token, map[string]interface{}{
		"answers": []map[string]interface{}{
			{"question_id": question.ID, "selected_option_id": correctID},
		},
		"time_taken": 42,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	require.NoError(t, database.Database.Db.First(&attempt, attempt.ID).Error)
	assert.NotNil(t, attempt.SubmittedAt)
	assert.Equal(t, 100.0, attempt.Score)
	assert.True(t, attempt.Passed)
	assert.Equal(t, 42, attempt.TimeTaken)

	var answers int64
	database.Database.Db.Model(&learningModels.StudentAnswer{}).Where("attempt_id = ?", attempt.ID).Count(&answers)
	assert.Equal(t, int64(1), answers)
}

func TestSubmitAttemptTwiceConflicts(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	student, token := createUser(t, models.RoleStudent)
	course, section := publishedCourse(t, instructor.ID)
	enroll(t, student.ID, course.ID)

	quiz, _ := quizWithQuestion(t, section.ID, 0)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/quizzes/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var attempt learningModels.QuizAttempt
	require.NoError(t, database.Database.Db.Where("student_id = ?", student.ID).First(&attempt).Error)

	body := map[string]interface{}{"answers": []map[string]interface{}{}, "time_taken": 5}

	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/attempts/%d/submit", attempt.ID), token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doRequest(t, app, http.MethodPost, fmt.Sprintf("/attempts/%d/submit", attempt.ID), token, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestStartAttemptEnforcesMaxAttempts(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	student, token := createUser(t, models.RoleStudent)
	course, section := publishedCourse(t, instructor.ID)
	enroll(t, student.ID, course.ID)

	quiz, _ := quizWithQuestion(t, section.ID, 1)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/quizzes/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var attempt learningModels.QuizAttempt
	require.NoError(t, database.Database.Db.Where("student_id = ?", student.ID).First(&attempt).Error)

	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/attempts/%d/submit", attempt.ID), token,
		map[string]interface{}{"answers": []map[string]interface{}{}, "time_taken": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doRequest(t, app, http.MethodPost, fmt.Sprintf("/quizzes/%d/attempts", quiz.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestStartAttemptRequiresEnrollment(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	_, token := createUser(t, models.RoleStudent)
	_, section := publishedCourse(t, instructor.ID)

	quiz, _ := quizWithQuestion(t, section.ID, 0)

	resp, env := doRequest(t, app, http.MethodPost, fmt.Sprintf("/quizzes/%d/attempts", quiz.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)
}
