package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
)

// Error writes the failure envelope for err and aborts the request. This is
// the single boundary where domain errors become wire responses.
func Error(c *gin.Context, err error) {
	e := httperr.From(err)
	if e.Err != nil {
		_ = c.Error(e.Err)
	}
	c.AbortWithStatusJSON(e.Status, gin.H{
		"status": "Failed",
		"errorBody": gin.H{
			"title":   e.Title,
			"message": e.Message,
		},
	})
}

// BindError reports a request-payload validation failure, summarizing the
// first offending field.
func BindError(c *gin.Context, err error) {
	message := err.Error()
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		message = fmt.Sprintf("%s: %s", verrs[0].Field(), verrs[0].Tag())
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"statusCode": http.StatusBadRequest,
		"message":    message,
	})
}

// NotFoundRoute is installed as the catch-all for unmatched paths, distinct
// from domain 404s.
func NotFoundRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"status": "Failed",
		"errorBody": gin.H{
			"title":   "Not Found",
			"details": "The requested response has not been found",
		},
	})
}
