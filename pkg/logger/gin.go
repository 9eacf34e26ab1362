package logger

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GinMiddleware registra cada requisição HTTP com status e latência
func GinMiddleware(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.Errors())
		}

		switch {
		case status >= 500:
			log.Error("requisição HTTP", fields...)
		case status >= 400:
			log.Warn("requisição HTTP", fields...)
		default:
			log.Info("requisição HTTP", fields...)
		}
	}
}
