package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"souqly/internal/logger"
)

const requestIDKey = "requestID"

// RequestLogging returns a Gin middleware that logs each request with a unique
// request ID, method, path, status code, latency, and client IP using Zap.
// The caller identity is resolved after the chain runs so requests behind
// OptionalAuth log either the user ID or the guest session key.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		latency := time.Since(start)
		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID := c.GetString(CtxUserID); userID != "" {
			fields = append(fields, "user_id", userID)
		} else if guestID := c.GetHeader("X-Guest-ID"); guestID != "" {
			fields = append(fields, "guest_id", guestID)
		}
		logger.Get().Infow("request", fields...)
	}
}
