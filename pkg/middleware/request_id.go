package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/docsign/pkg/logger"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey = "request_id"
)

const maxRequestIDLen = 128

// RequestID reuses an inbound X-Request-ID (when sane) or generates a uuid,
// stores it in the context and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog writes one structured line per request through pkg/logger.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.With(
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		).Infof("%s %s", c.Request.Method, c.Request.URL.Path)
	}
}
