// Package response writes the JSON envelope every /v1 route answers with.
package response

import (
	"mancarijo/internal/domain"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error writes a failure envelope. details may be nil, a kind marker or a
// list of field errors.
func Error(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, Response{
		Message:   message,
		Error:     details,
		RequestID: requestID(c),
	})
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(c *gin.Context, code int, message string) {
	Error(c, code, message, nil)
	c.Abort()
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}
