package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/culina/backend/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps a service error onto an HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadySaved),
		errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrParseFailure):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrStoreUnavailable), errors.Is(err, service.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides the wrapped cause of infrastructure failures
func publicMessage(err error, status int) string {
	switch {
	case errors.Is(err, service.ErrStoreUnavailable):
		return service.ErrStoreUnavailable.Error()
	case errors.Is(err, service.ErrNotConfigured):
		return service.ErrNotConfigured.Error()
	case status == http.StatusInternalServerError:
		return "internal server error"
	default:
		return err.Error()
	}
}

// ErrorHandler renders the last error pushed with c.Error as a JSON error response
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := StatusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", status),
				zap.Error(err))
		}

		message := publicMessage(err, status)
		c.JSON(status, ErrorResponse{Error: message})
	}
}
