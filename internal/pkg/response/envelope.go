package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Meta describes pagination of a list payload.
type Meta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PerPage  int `json:"perPage"`
	LastPage int `json:"lastPage"`
}

// Envelope is the uniform body returned by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// OK writes a successful envelope with the given status code.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// NoContent writes a successful envelope without a payload.
func NoContent(c *gin.Context) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: struct{}{}})
}

// LastPage computes the last page index for total items split into pages of perPage.
// It is never less than 1.
func LastPage(total, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
