package paymentController_test

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
	paymentModels "lms/models/payment"
	paymentRoutes "lms/routers/paymentRoutes"
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

	dsn := fmt.Sprintf("file:payment-%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	paymentRoutes.SetupPaymentRoutes(app)
	return app
}

func createStudent(t *testing.T) (*models.User, string) {
	t.Helper()

	seq++
	user := models.User{
		Email:        fmt.Sprintf("student-%d@test.local", seq),
		PasswordHash: "x",
		FullName:     "Test Student",
		Role:         models.RoleStudent,
		Status:       "active",
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return &user, token
}

func paidCourse(t *testing.T, price float64) *courseModels.Course {
	t.Helper()

	seq++
	course := courseModels.Course{
		InstructorID:   1,
		Title:          fmt.Sprintf("Paid Course %d", seq),
		Slug:           fmt.Sprintf("paid-course-%d", seq),
		Price:          price,
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

func TestCartTotalsAndLineItems(t *testing.T) {
	app := setupApp(t)

	student, token := createStudent(t)
	courseA := paidCourse(t, 100)
	courseB := paidCourse(t, 50)
	discount := 40.0
	require.NoError(t, database.Database.Db.Model(courseB).Update("discount_price", discount).Error)

	resp, _ := doRequest(t, app, http.MethodPost, "/payments/cart", token,
		map[string]interface{}{"course_ids": []uint{courseA.ID, courseB.ID}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var transaction paymentModels.Transaction
	require.NoError(t, database.Database.Db.Preload("Details").
		Where("student_id = ?", student.ID).First(&transaction).Error)

	assert.Equal(t, paymentModels.TransactionPending, transaction.Status)
	assert.Equal(t, 150.0, transaction.TotalAmount)
	assert.Equal(t, 10.0, transaction.DiscountAmount)
	assert.Equal(t, 140.0, transaction.FinalAmount)
	assert.Len(t, transaction.Details, 2)
	assert.NotEmpty(t, transaction.TransactionCode)
}

func TestCheckoutCreatesEnrollmentPerLineItem(t *testing.T) {
	app := setupApp(t)

	student, token := createStudent(t)
	courseA := paidCourse(t, 100)
	courseB := paidCourse(t, 50)

	resp, _ := doRequest(t, app, http.MethodPost, "/payments/cart", token,
		map[string]interface{}{"course_ids": []uint{courseA.ID, courseB.ID}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var transaction paymentModels.Transaction
	require.NoError(t, database.Database.Db.Where("student_id = ?", student.ID).First(&transaction).Error)

	resp, env := doRequest(t, app, http.MethodPost, "/payments/checkout", token, map[string]interface{}{
		"transaction_id":  transaction.ID,
		"payment_method":  "bank_card",
		"payment_gateway": "payhub",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	require.NoError(t, database.Database.Db.First(&transaction, transaction.ID).Error)
	assert.Equal(t, paymentModels.TransactionCompleted, transaction.Status)
	assert.NotNil(t, transaction.PaymentAt)

	var enrollments int64
	database.Database.Db.Model(&learningModels.Enrollment{}).
		Where("student_id = ?", student.ID).Count(&enrollments)
	assert.Equal(t, int64(2), enrollments)

	var got courseModels.Course
	require.NoError(t, database.Database.Db.First(&got, courseA.ID).Error)
	assert.Equal(t, 1, got.TotalStudents)
}

func TestCheckoutSkipsExistingEnrollment(t *testing.T) {
	app := setupApp(t)

	student, token := createStudent(t)
	course := paidCourse(t, 100)

	resp, _ := doRequest(t, app, http.MethodPost, "/payments/cart", token,
		map[string]interface{}{"course_ids": []uint{course.ID}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Enrolled through another path before paying
	enrollment := learningModels.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
		Status:    learningModels.EnrollmentActive,
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	var transaction paymentModels.Transaction
	require.NoError(t, database.Database.Db.Where("student_id = ?", student.ID).First(&transaction).Error)

	resp, _ = doRequest(t, app, http.MethodPost, "/payments/checkout", token, map[string]interface{}{
		"transaction_id":  transaction.ID,
		"payment_method":  "bank_card",
		"payment_gateway": "payhub",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var enrollments int64
	database.Database.Db.Model(&learningModels.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).Count(&enrollments)
	assert.Equal(t, int64(1), enrollments)

	var got courseModels.Course
	require.NoError(t, database.Database.Db.First(&got, course.ID).Error)
	assert.Equal(t, 0, got.TotalStudents)
}

func TestCheckoutRejectsSettledTransaction(t *testing.T) {
	app := setupApp(t)

	student, token := createStudent(t)
	course := paidCourse(t, 100)

	resp, _ := doRequest(t, app, http.MethodPost, "/payments/cart", token,
		map[string]interface{}{"course_ids": []uint{course.ID}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var transaction paymentModels.Transaction
	require.NoError(t, database.Database.Db.Where("student_id = ?", student.ID).First(&transaction).Error)
	require.NoError(t, database.Database.Db.Model(&transaction).
		Update("status", paymentModels.TransactionFailed).Error)

	resp, env := doRequest(t, app, http.MethodPost, "/payments/checkout", token, map[string]interface{}{
		"transaction_id":  transaction.ID,
		"payment_method":  "bank_card",
		"payment_gateway": "payhub",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestCartRejectsAlreadyOwnedCourse(t *testing.T) {
	app := setupApp(t)

	student, token := createStudent(t)
	course := paidCourse(t, 100)

	enrollment := learningModels.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
		Status:    learningModels.EnrollmentActive,
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	resp, env := doRequest(t, app, http.MethodPost, "/payments/cart", token,
		map[string]interface{}{"course_ids": []uint{course.ID}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestWebhookRequiresSupportAdmin(t *testing.T) {
	app := setupApp(t)

	_, token := createStudent(t)
	body := map[string]interface{}{
		"transaction_code": "TXN-unknown",
		"gateway_ref":      "ref-1",
		"status":           "completed",
	}

	resp, env := doRequest(t, app, http.MethodPost, "/payments/webhook", token, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = doRequest(t, app, http.MethodPost, "/payments/webhook", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
