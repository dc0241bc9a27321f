package utils

import "github.com/gofiber/fiber/v2"

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// Pagination holds normalized page/limit/offset values for list queries.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// GetPagination reads page and limit query parameters, clamping page to >= 1
// and limit to 1..100.
func GetPagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", defaultPage)
	if page < 1 {
		page = defaultPage
	}

	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
