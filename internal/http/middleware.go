package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/learnhub/internal/apperr"
	"github.com/mrlokans/learnhub/internal/logger"
)

const (
	HeaderRequestID     = "X-Request-Id"
	ContextKeyRequestID = "request_id"
	maxRequestIDLength  = 128
)

// RequestID reuses the caller's X-Request-Id or mints one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger logs one line per request. 5xx log at error level, 4xx at
// warn, the rest at info.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration", time.Since(start).Round(time.Microsecond).String(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(ContextKeyRequestID),
		}
		if uid := GetUserID(c); uid != 0 {
			kv = append(kv, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "error", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP request", kv...)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP request", kv...)
		default:
			log.Info("HTTP request", kv...)
		}
	}
}

// ExposeErrorDetails controls whether server-side error bodies carry details.
func ExposeErrorDetails(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyExposeErrors, expose)
		c.Next()
	}
}

// Recovery turns panics into internal errors in the standard error body.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Recovered from panic", "panic", recovered, "path", c.Request.URL.Path)
		respondErr(c, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
	})
}
