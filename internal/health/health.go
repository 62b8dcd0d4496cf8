package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves the health check endpoint.
type Handler struct {
	db      *gorm.DB
	service string
}

// NewHandler creates a health check handler for the given service.
func NewHandler(db *gorm.DB, service string) *Handler {
	return &Handler{db: db, service: service}
}

// RegisterRoutes registers the health route on the given engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/health", h.Health)
}

// Health handles GET /api/health. It pings the database and reports status.
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unavailable",
			"message":   "Restaurant Booking API database is unreachable",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Restaurant Booking API is running",
		"timestamp": time.Now().UTC(),
	})
}
