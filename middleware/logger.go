package middleware

import (
	"strconv"
	"time"

	"labbook/metrics"
	"labbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger puts a request-scoped logger on the context and records each request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", getClientIP(c)),
		)
		c.Set(utils.LoggerKey, reqLogger)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		fields := []zap.Field{zap.Int("status", status), zap.Duration("latency", latency)}
		switch {
		case status >= 500:
			reqLogger.Error("request failed", fields...)
		case status >= 400:
			reqLogger.Info("request rejected", fields...)
		default:
			reqLogger.Debug("request served", fields...)
		}
	}
}
