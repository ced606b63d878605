// internal/server/respond.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gotravel/internal/common/errors"
)

// respondOK wraps a payload in the success envelope.
func respondOK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondError normalizes any error into the error envelope with the status
// its code maps to.
func respondError(c *gin.Context, err error) {
	stdErr := errors.Normalize(err)
	status := errors.HTTPStatus(stdErr.Code)

	body := gin.H{
		"success": false,
		"error": gin.H{
			"code":      stdErr.Code,
			"message":   stdErr.Message,
			"retryable": stdErr.Retryable,
		},
	}
	if stdErr.Details != "" && status != http.StatusInternalServerError {
		body["error"].(gin.H)["details"] = stdErr.Details
	}
	c.JSON(status, body)
}

// respondValidation shorthand for binding failures.
func respondValidation(c *gin.Context, details string) {
	respondError(c, errors.NewValidationError(details))
}
