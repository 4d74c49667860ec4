package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhandras/clawdeck/pkg/logger"
)

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		// Get status code
		statusCode := c.Writer.Status()

		// Log format: [method] path?query - status (latency) rid=<request id>
		if raw != "" {
			path = path + "?" + raw
		}

		rid := "-"
		if id, ok := GetRequestID(c); ok {
			rid = id
		}

		logger.Infof("[%s] %s - %d (%v) rid=%s", c.Request.Method, path, statusCode, latency, rid)
	}
}
