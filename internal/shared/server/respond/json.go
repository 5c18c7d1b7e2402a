package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the {success, message, data} shape used by the career and progress endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Success writes {"success": true, "data": data}.
func Success(c *gin.Context, data any) {
	JSON(c, http.StatusOK, Envelope{Success: true, Data: data})
}

// Message writes {"success": true, "message": msg}.
func Message(c *gin.Context, msg string) {
	JSON(c, http.StatusOK, Envelope{Success: true, Message: msg})
}
