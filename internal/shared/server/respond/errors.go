package respond

import (
	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	logFailure(c, status, code, message)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Fail sends {"success": false, "message": message}.
func Fail(c *gin.Context, status int, message string) {
	logFailure(c, status, "", message)
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// Text sends a plain-text failure, for endpoints whose success body is not JSON.
func Text(c *gin.Context, status int, message string) {
	logFailure(c, status, "", message)
	c.Abort()
	c.String(status, message)
}

func logFailure(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if code != "" {
		fields["code"] = code
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if isGuest, ok := c.Get("isGuest"); ok {
		fields["is_guest"] = isGuest
	}
	telemetry.Error("http.error", fields)
}
