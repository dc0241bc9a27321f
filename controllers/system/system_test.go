package systemController_test

import (
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
	systemRoutes "lms/routers/systemRoutes"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
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
	systemRoutes.SetupSystemRoutes(app)
	return app
}

var userSeq int

func tokenFor(t *testing.T, role models.Role) string {
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
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (*http.Response, envelope) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
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

func TestHealthzIsPublic(t *testing.T) {
	app := setupApp(t)

	resp, env := doRequest(t, app, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestMetricsOpenToSupportAdmin(t *testing.T) {
	app := setupApp(t)

	resp, env := doRequest(t, app, "/metrics", tokenFor(t, models.RoleSupportAdmin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestMetricsDeniedForInstructors(t *testing.T) {
	app := setupApp(t)

	resp, env := doRequest(t, app, "/metrics", tokenFor(t, models.RoleInstructor))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)
}
