package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/apperror"
)

// Error sends an error envelope.
// AppErrors use their own status code; anything else becomes 500 and is attached
// to the gin context so the request logger records the cause.
func Error(c *gin.Context, err error) {
	status, msg := Describe(err)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code >= http.StatusInternalServerError || appErr.Err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, Envelope{Error: msg, Data: struct{}{}})
}

// Describe returns the status code and client-facing message for err.
// Errors that are not AppErrors map to 500 with a generic message.
func Describe(err error) (int, string) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "internal server error"
	}
	msg := appErr.Message
	if appErr.Err != nil && appErr.Code < http.StatusInternalServerError {
		msg = msg + ": " + appErr.Err.Error()
	}
	return appErr.Code, msg
}

// BadRequest sends a 400 envelope with the given message.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Error: message, Data: struct{}{}})
}

// Abort sends an error envelope with an explicit status code.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Error: message, Data: struct{}{}})
}
