package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablevoice/service-booking/internal/response"
	"github.com/tablevoice/service-booking/internal/weather"
)

// WeatherHandler handles HTTP requests for weather lookups.
type WeatherHandler struct {
	client *weather.Client
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(client *weather.Client) *WeatherHandler {
	return &WeatherHandler{client: client}
}

// RegisterRoutes registers the weather route on the given engine.
func (h *WeatherHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/weather", h.LookupWeather)
}

type weatherRequest struct {
	Date     string `json:"date"`
	Location string `json:"location"`
}

// LookupWeather handles POST /api/weather. The lookup itself never fails;
// only a missing or unparseable date is rejected.
func (h *WeatherHandler) LookupWeather(c *gin.Context) {
	var req weatherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.Date == "" {
		response.BadRequest(c, "Date is required")
		return
	}
	date, err := weather.ParseDate(req.Date)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result := h.client.Lookup(c.Request.Context(), date, req.Location)

	body := gin.H{
		"success": true,
		"weather": result.Info,
	}
	if result.Note != "" {
		body["note"] = result.Note
	}
	c.JSON(http.StatusOK, body)
}
