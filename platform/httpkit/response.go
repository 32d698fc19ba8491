// Package httpkit is the HTTP plumbing shared by every storefront module:
// response helpers, error mapping, identity and middleware.
package httpkit

import (
	"errors"
	"net/http"

	"storefront_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// Error writes an ErrorResponse with the given status.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// HandleError writes the response for err and reports whether it did. The
// first *apperr.Error in the chain picks the status and message. Anything
// else is attached to the gin context for the request logger and answered
// with a bare 500.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var typed *apperr.Error
	if !errors.As(err, &typed) {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "internal server error", nil)
		return true
	}
	if typed.HTTPStatus() == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Error(c, typed.HTTPStatus(), typed.Message, typed.Details)
	return true
}
