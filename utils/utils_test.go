package utils

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "go-for-beginners", Slugify("Go for Beginners"))
	assert.Equal(t, "c-und-c", Slugify("C++ und C#!"))
	assert.Equal(t, "already-slugged", Slugify("already-slugged"))
	assert.Equal(t, "", Slugify("***"))
}

func paginationFor(t *testing.T, query string) Pagination {
	t.Helper()

	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetPagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req, err := http.NewRequest(http.MethodGet, "/?"+query, nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return got
}

func TestGetPaginationDefaults(t *testing.T) {
	p := paginationFor(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestGetPaginationClampsBounds(t *testing.T) {
	p := paginationFor(t, "page=0&limit=0")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = paginationFor(t, "page=-3&limit=1000")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)

	p = paginationFor(t, "page=3&limit=25")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset)
}

func TestValidateStructFlattensFieldErrors(t *testing.T) {
	type sample struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name" validate:"required,min=2"`
	}

	errs := ValidateStruct(&sample{Email: "not-an-email", Name: "x"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "name")

	assert.Nil(t, ValidateStruct(&sample{Email: "a@b.co", Name: "ok"}))
}
