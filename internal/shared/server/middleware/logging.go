package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
)

// Logging emits a structured log line and a request metric per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), status)

		userID, _ := c.Get(userIDKey)
		isGuest, _ := c.Get(isGuestKey)
		repairBranch, _ := c.Get("repairBranch")

		telemetry.Info("request.complete", map[string]any{
			"request_id":    RequestIDFromContext(c),
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"route":         c.FullPath(),
			"status":        status,
			"duration_ms":   float64(latency.Microseconds()) / 1000.0,
			"user_id":       userID,
			"is_guest":      isGuest,
			"repair_branch": repairBranch,
			"client_ip":     c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
		})
	}
}
