package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

// FailureStyle selects the body shape a route answers a panic with.
type FailureStyle int

const (
	// StyleError writes {error:{code,message}}.
	StyleError FailureStyle = iota
	// StyleEnvelope writes {success:false,message}.
	StyleEnvelope
	// StyleText writes a plain text body.
	StyleText
)

const panicMessage = "Unexpected server error"

// Recovery recovers from panics and answers in the failure style registered
// for the matched route pattern. Unlisted routes use StyleError.
func Recovery(styles map[string]FailureStyle) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				style := styles[c.FullPath()]
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      rec,
					"stack":      string(debug.Stack()),
					"route":      c.FullPath(),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				switch style {
				case StyleEnvelope:
					respond.Fail(c, http.StatusInternalServerError, panicMessage)
				case StyleText:
					respond.Text(c, http.StatusInternalServerError, panicMessage)
				default:
					respond.Error(c, http.StatusInternalServerError, "internal", panicMessage, nil)
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
