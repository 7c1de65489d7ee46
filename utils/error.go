package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is the Gin context key holding the request-scoped logger.
const LoggerKey = "logger"

// ErrorResponse is the body of every error the API writes outside validation failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// RequestLogger returns the logger the request middleware attached, or the global one.
func RequestLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return GetLogger()
}

// ErrorHandler turns a panic in a later handler into a 500 ErrorResponse.
// Nothing is written if the handler already sent its headers.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			RequestLogger(c).Error("Unhandled panic",
				zap.Any("error", rec),
				zap.String("route", c.FullPath()),
				zap.Stack("stack"),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Internal Server Error",
				Details: "An unexpected error occurred. Please try again later.",
			})
		}()
		c.Next()
	}
}

// JSONError aborts the request with status and an ErrorResponse. Server-side
// failures keep their details in the log only.
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := RequestLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.Int("status", status), zap.String("details", details))
		c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
		return
	}
	logger.Warn(message, zap.Int("status", status), zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}
