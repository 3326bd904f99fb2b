package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page writes a paginated list envelope.
func Page[T any](c *gin.Context, items []T, page, perPage, total int) {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Meta: &Meta{
			Total:    total,
			Page:     page,
			PerPage:  perPage,
			LastPage: LastPage(total, perPage),
		},
	})
}
