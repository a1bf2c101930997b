package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"projecthub/internal/dto"
	apierrors "projecthub/internal/errors"
)

// parseIDParam reads the :id path parameter. On failure it writes the
// error response and returns false.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

// stringField extracts a string value from a raw JSON map, reporting
// whether the key was present with a string value.
func stringField(raw map[string]any, key string) (*string, bool) {
	v, provided := raw[key]
	if !provided {
		return nil, false
	}
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	return &s, true
}

func paginationDTO(page, pageSize int, totalCount int64, totalPages, from, to int) dto.PaginationDTO {
	return dto.PaginationDTO{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
		From:       from,
		To:         to,
	}
}
