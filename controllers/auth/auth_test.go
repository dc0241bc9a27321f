package authController_test

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
	"lms/models"
	authRoutes "lms/routers/authRoutes"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:auth-%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func post(t *testing.T, app *fiber.App, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(respBody, &env))

	return resp, env
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	resp, env := post(t, app, "/auth/register", "", map[string]interface{}{
		"email":     "jane@test.local",
		"password":  "supersecret",
		"full_name": "Jane Doe",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
		User  struct {
			Email string      `json:"email"`
			Role  models.Role `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "jane@test.local", data.User.Email)
	assert.Equal(t, models.RoleStudent, data.User.Role)

	// Password is stored as a bcrypt hash, never plaintext
	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "jane@test.local").First(&user).Error)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	resp, env = post(t, app, "/auth/login", "", map[string]interface{}{
		"email":    "jane@test.local",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	require.NoError(t, database.Database.Db.Where("email = ?", "jane@test.local").First(&user).Error)
	assert.NotNil(t, user.LastLogin)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	app := setupApp(t)

	body := map[string]interface{}{
		"email":     "dup@test.local",
		"password":  "supersecret",
		"full_name": "First User",
	}

	resp, _ := post(t, app, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := post(t, app, "/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestRegisterNeverGrantsAdminRole(t *testing.T) {
	app := setupApp(t)

	resp, _ := post(t, app, "/auth/register", "", map[string]interface{}{
		"email":     "sneaky@test.local",
		"password":  "supersecret",
		"full_name": "Sneaky User",
		"role":      "system_admin",
	})
	// Role outside student/instructor is rejected by validation
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	app := setupApp(t)

	resp, _ := post(t, app, "/auth/register", "", map[string]interface{}{
		"email":     "john@test.local",
		"password":  "supersecret",
		"full_name": "John Doe",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := post(t, app, "/auth/login", "", map[string]interface{}{
		"email":    "john@test.local",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
}
