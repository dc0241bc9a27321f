package interactionController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	learningModels "lms/models/learning"
	interactionRoutes "lms/routers/interactionRoutes"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var seq int

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:interaction-%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	interactionRoutes.SetupInteractionRoutes(app)
	return app
}

func createUser(t *testing.T, role models.Role) (*models.User, string) {
	t.Helper()

	seq++
	user := models.User{
		Email:        fmt.Sprintf("%s-%d@test.local", role, seq),
		PasswordHash: "x",
		FullName:     "Test User",
		Role:         role,
		Status:       "active",
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return &user, token
}

func enrolledStudent(t *testing.T, courseID uint) (*models.User, string) {
	t.Helper()

	student, token := createUser(t, models.RoleStudent)
	enrollment := learningModels.Enrollment{
		StudentID: student.ID,
		CourseID:  courseID,
		Status:    learningModels.EnrollmentActive,
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)
	return student, token
}

func newCourse(t *testing.T) *courseModels.Course {
	t.Helper()

	seq++
	course := courseModels.Course{
		InstructorID:   1,
		Title:          fmt.Sprintf("Course %d", seq),
		Slug:           fmt.Sprintf("course-%d", seq),
		Status:         courseModels.CoursePublished,
		ApprovalStatus: courseModels.ApprovalApproved,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return &course
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env))

	return resp, env
}

func TestReviewRequiresEnrollment(t *testing.T) {
	app := setupApp(t)
	course := newCourse(t)
	_, token := createUser(t, models.RoleStudent)

	resp, env := doRequest(t, app, http.MethodPost, "/reviews/create", token,
		map[string]interface{}{"course_id": course.ID, "rating": 5})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestReviewOncePerStudent(t *testing.T) {
	app := setupApp(t)
	course := newCourse(t)
	_, token := enrolledStudent(t, course.ID)

	body := map[string]interface{}{"course_id": course.ID, "rating": 4, "comment": "Solid"}

	resp, _ := doRequest(t, app, http.MethodPost, "/reviews/create", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doRequest(t, app, http.MethodPost, "/reviews/create", token, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestModerationUpdatesAverageRating(t *testing.T) {
	app := setupApp(t)
	course := newCourse(t)
	_, adminToken := createUser(t, models.RoleSupportAdmin)

	_, tokenA := enrolledStudent(t, course.ID)
	_, tokenB := enrolledStudent(t, course.ID)

	resp, _ := doRequest(t, app, http.MethodPost, "/reviews/create", tokenA,
		map[string]interface{}{"course_id": course.ID, "rating": 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doRequest(t, app, http.MethodPost, "/reviews/create", tokenB,
		map[string]interface{}{"course_id": course.ID, "rating": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Pending reviews do not count
	var got courseModels.Course
	require.NoError(t, database.Database.Db.First(&got, course.ID).Error)
	assert.Equal(t, 0.0, got.AverageRating)

	var reviews []models.Review
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).Order("id ASC").Find(&reviews).Error)
	require.Len(t, reviews, 2)

	approved := "approved"
	for _, review := range reviews {
		resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/reviews/%d/moderate", review.ID), adminToken,
			map[string]interface{}{"status": approved})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	require.NoError(t, database.Database.Db.First(&got, course.ID).Error)
	assert.Equal(t, 3.5, got.AverageRating)
}

func TestModerationDeniedForStudents(t *testing.T) {
	app := setupApp(t)
	course := newCourse(t)
	_, token := enrolledStudent(t, course.ID)

	resp, _ := doRequest(t, app, http.MethodPost, "/reviews/create", token,
		map[string]interface{}{"course_id": course.ID, "rating": 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var review models.Review
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).First(&review).Error)

	resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/reviews/%d/moderate", review.ID), token,
		map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
