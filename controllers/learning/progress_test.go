package learningController_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/database"
	"lms/models"
	learningModels "lms/models/learning"
)

func TestRecordProgressRecomputesCompletion(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	student, token := createUser(t, models.RoleStudent)
	course, section := publishedCourse(t, instructor.ID)
	lessons := addLessons(t, section.ID, 5)
	enrollment := enroll(t, student.ID, course.ID)

	for i := 0; i < 3; i++ {
		resp, _ := doRequest(t, app, http.MethodPost,
			fmt.Sprintf("/enrollments/%d/progress", enrollment.ID), token,
			map[string]interface{}{"lesson_id": lessons[i].ID, "status": "completed"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var got learningModels.Enrollment
	require.NoError(t, database.Database.Db.First(&got, enrollment.ID).Error)
	assert.Equal(t, 60.0, got.CompletionPercentage)
	assert.Equal(t, learningModels.EnrollmentActive, got.Status)
	assert.Nil(t, got.CompletedAt)
}

func TestRecordProgressFlipsCompletedOnce(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	student, token := createUser(t, models.RoleStudent)
	course, section := publishedCourse(t, instructor.ID)
	lessons := addLessons(t, section.ID, 2)
	enrollment := enroll(t, student.ID, course.ID)

	for _, lesson := range lessons {
		resp, _ := doRequest(t, app, http.MethodPost,
			fmt.Sprintf("/enrollments/%d/progress", enrollment.ID), token,
			map[string]interface{}{"lesson_id": lesson.ID, "status": "completed"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var got learningModels.Enrollment
	require.NoError(t, database.Database.Db.First(&got, enrollment.ID).Error)
	assert.Equal(t, 100.0, got.CompletionPercentage)
	assert.Equal(t, learningModels.EnrollmentCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	firstCompletedAt := *got.CompletedAt

	// Re-reporting a lesson must not move the completion timestamp
	time.Sleep(10 * time.Millisecond)
	resp, _ := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/enrollments/%d/progress", enrollment.ID), token,
		map[string]interface{}{"lesson_id": lessons[0].ID, "video_progress": 100})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, database.Database.Db.First(&got, enrollment.ID).Error)
	assert.Equal(t, learningModels.EnrollmentCompleted, got.Status)
	assert.WithinDuration(t, firstCompletedAt, *got.CompletedAt, time.Millisecond)
}

func TestRecordProgressAppliesSuppliedStatus(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	student, token := createUser(t, models.RoleStudent)
	course, section := publishedCourse(t, instructor.ID)
	lessons := addLessons(t, section.ID, 2)
	enrollment := enroll(t, student.ID, course.ID)

	for _, lesson := range lessons {
		resp, _ := doRequest(t, app, http.MethodPost,
			fmt.Sprintf("/enrollments/%d/progress", enrollment.ID), token,
			map[string]interface{}{"lesson_id": lesson.ID, "status": "completed"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// A lesson moved back to in_progress is stored as sent and the
	// percentage is recomputed from the new counts
	resp, _ := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/enrollments/%d/progress", enrollment.ID), token,
		map[string]interface{}{"lesson_id": lessons[0].ID, "status": "in_progress"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var progress learningModels.LessonProgress
	require.NoError(t, database.Database.Db.
		Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lessons[0].ID).
		First(&progress).Error)
	assert.Equal(t, learningModels.ProgressInProgress, progress.Status)
	assert.NotNil(t, progress.CompletedAt)

	var got learningModels.Enrollment
	require.NoError(t, database.Database.Db.First(&got, enrollment.ID).Error)
	assert.Equal(t, 50.0, got.CompletionPercentage)
	// The enrollment itself stays completed
	assert.Equal(t, learningModels.EnrollmentCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestCourseProgressLookupByCourse(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	student, token := createUser(t, models.RoleStudent)
	course, section := publishedCourse(t, instructor.ID)
	lessons := addLessons(t, section.ID, 2)
	enrollment := enroll(t, student.ID, course.ID)

	resp, _ := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/enrollments/%d/progress", enrollment.ID), token,
		map[string]interface{}{"lesson_id": lessons[0].ID, "status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/progress/course/%d", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		CompletionPercentage float64                         `json:"completion_percentage"`
		LessonProgress       []learningModels.LessonProgress `json:"lesson_progress"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 50.0, payload.CompletionPercentage)
	require.Len(t, payload.LessonProgress, 1)
	assert.Equal(t, lessons[0].ID, payload.LessonProgress[0].LessonID)

	_, otherToken := createUser(t, models.RoleStudent)
	resp, _ = doRequest(t, app, http.MethodGet,
		fmt.Sprintf("/progress/course/%d", course.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecordProgressRejectsForeignLesson(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	student, token := createUser(t, models.RoleStudent)
	course, _ := publishedCourse(t, instructor.ID)
	enrollment := enroll(t, student.ID, course.ID)

	// A lesson that lives in another course
	otherCourse, otherSection := publishedCourse(t, instructor.ID)
	_ = otherCourse
	foreign := addLessons(t, otherSection.ID, 1)[0]

	resp, env := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/enrollments/%d/progress", enrollment.ID), token,
		map[string]interface{}{"lesson_id": foreign.ID, "status": "completed"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestRecordProgressDeniedForOtherStudent(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	student, _ := createUser(t, models.RoleStudent)
	_, otherToken := createUser(t, models.RoleInstructor)
	course, section := publishedCourse(t, instructor.ID)
	lessons := addLessons(t, section.ID, 1)
	enrollment := enroll(t, student.ID, course.ID)

	resp, _ := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/enrollments/%d/progress", enrollment.ID), otherToken,
		map[string]interface{}{"lesson_id": lessons[0].ID, "status": "completed"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
