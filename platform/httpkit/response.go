// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"

	"contactcenter_backend/platform/apperr"
	"contactcenter_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// HandleError maps domain errors to HTTP responses.
// A typed *apperr.Error anywhere in the chain decides the status code and
// message. Untyped errors become a generic 500 so store internals never
// reach the client. Returns true if an error was handled.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	log := requestLogger(c)

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		status := domainErr.HTTPStatus()
		if status >= http.StatusInternalServerError && log != nil {
			log.HTTPError(c.Request.Method, c.Request.URL.Path, status, err, c.ClientIP())
		}
		c.JSON(status, ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	if log != nil {
		log.HTTPError(c.Request.Method, c.Request.URL.Path, http.StatusInternalServerError, err, c.ClientIP())
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	return true
}

// ContextLogger returns the request-scoped logger, or a no-op logger when
// the RequestID middleware did not run.
func ContextLogger(c *gin.Context) *logger.Logger {
	if log := requestLogger(c); log != nil {
		return log
	}
	return logger.Nop()
}

func requestLogger(c *gin.Context) *logger.Logger {
	value, ok := c.Get(ContextLoggerKey)
	if !ok {
		return nil
	}
	log, _ := value.(*logger.Logger)
	return log
}
