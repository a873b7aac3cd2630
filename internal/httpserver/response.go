package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/domain"
)

func respondOK(c *gin.Context, message string, data gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// respondError maps the domain error taxonomy onto HTTP statuses. Transient
// failures get 503 so the storefront knows a retry may help; validation and
// not-found are final for the request that caused them.
func respondError(c *gin.Context, err error, message string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": verr.Error(),
			"fields":  verr.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": message})
	case errors.Is(err, domain.ErrTransient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": message, "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
	}
}
