package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Logger reports failed control plane requests through slog. Successful
// requests stay quiet; the status endpoint is polled constantly.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Errors != nil {
			slog.Warn("HTTP request",
				"method", c.Request.Method,
				"status", c.Writer.Status(),
				"path", c.Request.URL.Path,
				"errors", c.Errors.String(),
			)
		}
	}
}
