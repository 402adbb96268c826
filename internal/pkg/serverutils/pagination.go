// FILE: internal/pkg/serverutils/pagination.go
package serverutils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// PageQuery carries the common list-endpoint query params.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
	SortBy string
	Order  string
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ParsePageQuery reads page/limit/q/sort_by/order with bounds applied.
// sortable whitelists column names; anything else falls back to created_at.
func ParsePageQuery(ctx *fiber.Ctx, sortable ...string) PageQuery {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	sortBy := ctx.Query("sort_by", "created_at")
	allowed := false
	for _, col := range sortable {
		if sortBy == col {
			allowed = true
			break
		}
	}
	if !allowed {
		sortBy = "created_at"
	}

	order := ctx.Query("order", "desc")
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	return PageQuery{
		Page:   page,
		Limit:  limit,
		Search: ctx.Query("q", ""),
		SortBy: sortBy,
		Order:  order,
	}
}
