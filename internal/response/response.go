package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablevoice/service-booking/internal/domain"
)

// Error maps a service error to the matching HTTP status and JSON body.
// Unexpected errors become a 500 with a generic message plus detail.
func Error(c *gin.Context, err error) {
	de := domain.AsDomainError(err)
	if de == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": err.Error(),
		})
		return
	}

	switch de.Kind {
	case domain.KindValidation:
		if len(de.MissingFields) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Missing required fields",
				"required": de.MissingFields,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": de.Message})
	case domain.KindNotFound:
		body := gin.H{"error": de.Resource + " not found"}
		if de.ID != "" {
			body["bookingId"] = de.ID
		}
		c.JSON(http.StatusNotFound, body)
	case domain.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": de.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": de.Message,
		})
	}
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
