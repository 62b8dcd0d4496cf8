package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablevoice/service-booking/internal/application"
	"github.com/tablevoice/service-booking/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service application.BookingUseCase
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service application.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given engine.
func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.CancelBooking)
	}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"booking": result,
	})
}

// ListBookings handles GET /api/bookings with optional status/date/cuisine filters.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	query := application.ListBookingsQuery{
		Status:  c.Query("status"),
		Date:    c.Query("date"),
		Cuisine: c.Query("cuisine"),
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(bookings),
		"bookings": bookings,
	})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	result, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": result,
	})
}

// UpdateBooking handles PUT /api/bookings/:id (partial update).
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
		"booking": result,
	})
}

// CancelBooking handles DELETE /api/bookings/:id (soft cancellation).
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	result, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
		"booking": result,
	})
}
