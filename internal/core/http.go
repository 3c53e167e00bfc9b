package core

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError translates a service error into the matching response:
// validation problems are 422, known not-found sentinels are 404 and
// anything else is logged and answered as a 500.
func HTTPError(c *gin.Context, err error, notFound ...error) {
	if IsValidation(err) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	for _, sentinel := range notFound {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	}

	log.Printf("[%s %s] %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
