package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentshare/rentshare-backend/internal/pkg/apperror"
)

var errInvalidPaging = apperror.New(http.StatusBadRequest, "from must be >= 0 and size must be >= 1")

// ListParams is the (from, size) pair shared by all list endpoints.
type ListParams struct {
	From int
	Size int
}

// PageQuery reads from/size query parameters with the historical defaults
// of 0 and 10.
func PageQuery(c *gin.Context) (ListParams, error) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil || from < 0 {
		return ListParams{}, errInvalidPaging
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		return ListParams{}, errInvalidPaging
	}
	return ListParams{From: from, Size: size}, nil
}

// Offset keeps the historical paging contract: from is treated as a page
// index after integer division by size, not as an item offset.
func (p ListParams) Offset() int {
	return p.From / p.Size * p.Size
}
