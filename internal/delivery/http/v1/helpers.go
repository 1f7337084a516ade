package v1

import (
	"net/http"

	"mancarijo/internal/delivery/http/response"
	"mancarijo/pkg/validation"

	"github.com/gin-gonic/gin"
)

// bind decodes the request body into req. On failure it writes the
// validation messages and reports false.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
		return false
	}
	return true
}
