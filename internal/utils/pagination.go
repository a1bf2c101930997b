package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"projecthub/internal/constants"
	"projecthub/internal/tableview"
)

// GetTableQuery extracts and validates table view state from the request:
// q (global search), sort + order, page + page_size, and one query
// parameter per listed filter column. Missing filters come back as the
// empty string, which the view engine treats as "no constraint".
func GetTableQuery(c *gin.Context, filterColumns ...string) tableview.Query {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPage)))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPage {
		page = constants.MinPage
	}
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	filters := make(map[string]string, len(filterColumns))
	for _, col := range filterColumns {
		filters[col] = c.Query(col)
	}

	return tableview.Query{
		Search:   c.Query("q"),
		Filters:  filters,
		SortBy:   c.Query("sort"),
		SortDesc: c.Query("order") == "desc",
		Page:     page,
		PageSize: pageSize,
	}
}
