// FILE: internal/pkg/serverutils/pagination_test.go
package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseWith runs ParsePageQuery inside a real fiber handler so query
// parsing behaves exactly as it does in controllers.
func parseWith(t *testing.T, target string, sortable ...string) PageQuery {
	t.Helper()

	app := fiber.New()
	var got PageQuery
	app.Get("/t", func(c *fiber.Ctx) error {
		got = ParsePageQuery(c, sortable...)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestParsePageQueryDefaults(t *testing.T) {
	q := parseWith(t, "/t", "name")

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, "", q.Search)
	assert.Equal(t, "created_at", q.SortBy)
	assert.Equal(t, "desc", q.Order)
	assert.Equal(t, 0, q.Offset())
}

func TestParsePageQueryBounds(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantPage  int
		wantLimit int
	}{
		{"limit clamped to max", "/t?page=3&limit=5000", 3, 100},
		{"negative page resets", "/t?page=-2&limit=20", 1, 20},
		{"zero limit resets", "/t?limit=0", 1, 10},
		{"garbage values reset", "/t?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := parseWith(t, tt.target, "name")
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
		})
	}
}

func TestParsePageQuerySortWhitelist(t *testing.T) {
	q := parseWith(t, "/t?sort_by=name&order=asc", "name", "updated_at")
	assert.Equal(t, "name", q.SortBy)
	assert.Equal(t, "asc", q.Order)

	// Unlisted columns cannot reach the ORDER BY clause.
	q = parseWith(t, "/t?sort_by=password_hash;drop", "name")
	assert.Equal(t, "created_at", q.SortBy)

	q = parseWith(t, "/t?order=sideways", "name")
	assert.Equal(t, "desc", q.Order)
}

func TestPageQueryOffset(t *testing.T) {
	q := PageQuery{Page: 4, Limit: 25}
	assert.Equal(t, 75, q.Offset())
}
