package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablevoice/service-booking/internal/application"
	"github.com/tablevoice/service-booking/internal/response"
)

// AnalyticsHandler handles HTTP requests for booking analytics.
type AnalyticsHandler struct {
	service application.BookingUseCase
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service application.BookingUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RegisterRoutes registers analytics routes on the given engine.
func (h *AnalyticsHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/analytics/stats", h.BookingStats)
}

// BookingStats handles GET /api/analytics/stats.
func (h *AnalyticsHandler) BookingStats(c *gin.Context) {
	stats, err := h.service.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
