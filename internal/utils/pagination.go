package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/worklog-api/internal/constants"
)

// PaginationParams holds the pagination parameters. A zero Limit means
// the whole result set is returned.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// Enabled reports whether the listing should be paginated.
func (p PaginationParams) Enabled() bool {
	return p.Limit > 0
}

// GetPaginationParams extracts and validates pagination parameters from the request.
// Listings are unpaginated unless the client sends page or limit.
func GetPaginationParams(c *gin.Context) PaginationParams {
	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return PaginationParams{}
	}

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}
