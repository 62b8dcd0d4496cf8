package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tablevoice/service-booking/internal/config"
	"github.com/tablevoice/service-booking/internal/weather"
)

func setupWeatherRouter(cfg config.WeatherConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewWeatherHandler(weather.NewClient(cfg, zap.NewNop())).RegisterRoutes(r)
	return r
}

func TestLookupWeather_MockData(t *testing.T) {
	router := setupWeatherRouter(config.WeatherConfig{DefaultCity: "New York"})

	req := httptest.NewRequest(http.MethodPost, "/api/weather", strings.NewReader(`{"date": "2026-09-12"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["note"], "Using mock data")

	info := body["weather"].(map[string]any)
	assert.Equal(t, "sunny", info["condition"])
	assert.Equal(t, float64(22), info["temperature"])
	assert.Equal(t, "Clear skies", info["description"])
	assert.Equal(t, "New York", info["location"])
	assert.Equal(t, "2026-09-12", info["date"])
}

func TestLookupWeather_ExplicitLocation(t *testing.T) {
	router := setupWeatherRouter(config.WeatherConfig{DefaultCity: "New York"})

	req := httptest.NewRequest(http.MethodPost, "/api/weather", strings.NewReader(`{"date": "2026-09-12", "location": "Singapore"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	info := body["weather"].(map[string]any)
	assert.Equal(t, "Singapore", info["location"])
}

func TestLookupWeather_MissingDate(t *testing.T) {
	router := setupWeatherRouter(config.WeatherConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/weather", strings.NewReader(`{"location": "Singapore"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Date is required", body["error"])
}

func TestLookupWeather_InvalidDate(t *testing.T) {
	router := setupWeatherRouter(config.WeatherConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/weather", strings.NewReader(`{"date": "someday"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
