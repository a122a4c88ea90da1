package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fatflowers/letterpay/pkg/logctx"
)

// TraceMiddleware adds a trace ID to the request context.
// It reads X-Request-ID if provided by the client; otherwise generates a UUID.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(logctx.GinTraceIDKey, traceID)
		c.Request = c.Request.WithContext(logctx.WithTraceID(c.Request.Context(), traceID))
		c.Next()
	}
}
