package learningController_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
)

func TestEnrollInFreeCourse(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	_, token := createUser(t, models.RoleStudent)
	course, _ := publishedCourse(t, instructor.ID)

	resp, env := doRequest(t, app, http.MethodPost, "/enrollments/create", token,
		map[string]interface{}{"course_id": course.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var got courseModels.Course
	require.NoError(t, database.Database.Db.First(&got, course.ID).Error)
	assert.Equal(t, 1, got.TotalStudents)

	// Second enrollment attempt conflicts
	resp, env = doRequest(t, app, http.MethodPost, "/enrollments/create", token,
		map[string]interface{}{"course_id": course.ID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestEnrollInPaidCourseRequiresCheckout(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	_, token := createUser(t, models.RoleStudent)
	course, _ := publishedCourse(t, instructor.ID)
	require.NoError(t, database.Database.Db.Model(course).Update("price", 49.99).Error)

	resp, env := doRequest(t, app, http.MethodPost, "/enrollments/create", token,
		map[string]interface{}{"course_id": course.ID})
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestEnrollInUnpublishedCourseRejected(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, models.RoleInstructor)
	_, token := createUser(t, models.RoleStudent)
	course, _ := publishedCourse(t, instructor.ID)
	require.NoError(t, database.Database.Db.Model(course).Update("status", courseModels.CourseDraft).Error)

	resp, env := doRequest(t, app, http.MethodPost, "/enrollments/create", token,
		map[string]interface{}{"course_id": course.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}
