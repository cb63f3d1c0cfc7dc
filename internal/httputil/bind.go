package httputil

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	customValidation "github.com/allisson/fintrack/internal/validation"
)

// Validator is a request body that checks its own fields.
type Validator interface {
	Validate() error
}

// BindJSON decodes the request body into req and validates it. On failure it writes the
// 400 or 422 response and returns false.
func BindJSON(c *gin.Context, req Validator, logger *slog.Logger) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleBadRequestGin(c, err, logger)
		return false
	}
	if err := req.Validate(); err != nil {
		HandleValidationErrorGin(c, customValidation.WrapValidationError(err), logger)
		return false
	}
	return true
}
