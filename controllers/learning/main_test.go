package learningController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	learningModels "lms/models/learning"
	learningRoutes "lms/routers/learningRoutes"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	learningRoutes.SetupLearningRoutes(app)
	return app
}

var userSeq int

func createUser(t *testing.T, role models.Role) (*models.User, string) {
	t.Helper()

	userSeq++
	user := models.User{
		Email:        fmt.Sprintf("%s-%d@test.local", role, userSeq),
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

var courseSeq int

// publishedCourse creates an enrollable course with one section
func publishedCourse(t *testing.T, instructorID uint) (*courseModels.Course, *courseModels.Section) {
	t.Helper()
	db := database.Database.Db

	courseSeq++
	course := courseModels.Course{
		InstructorID:   instructorID,
		Title:          fmt.Sprintf("Test Course %d", courseSeq),
		Slug:           fmt.Sprintf("test-course-%d-%s", courseSeq, t.Name()),
		Status:         courseModels.CoursePublished,
		ApprovalStatus: courseModels.ApprovalApproved,
	}
	require.NoError(t, db.Create(&course).Error)

	section := courseModels.Section{CourseID: course.ID, Title: "Section 1"}
	require.NoError(t, db.Create(&section).Error)

	return &course, &section
}

func addLessons(t *testing.T, sectionID uint, n int) []courseModels.Lesson {
	t.Helper()
	lessons := make([]courseModels.Lesson, 0, n)
	for i := 0; i < n; i++ {
		lesson := courseModels.Lesson{
			SectionID:  sectionID,
			Title:      fmt.Sprintf("Lesson %d", i+1),
			LessonType: "video",
		}
		require.NoError(t, database.Database.Db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return lessons
}

func enroll(t *testing.T, studentID, courseID uint) *learningModels.Enrollment {
	t.Helper()
	enrollment := learningModels.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    learningModels.EnrollmentActive,
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)
	return &enrollment
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
