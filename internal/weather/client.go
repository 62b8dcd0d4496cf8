package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tablevoice/service-booking/internal/config"
)

const upstreamTimeout = 5 * time.Second

// Info is the normalized weather shape returned to callers.
type Info struct {
	Condition   string  `json:"condition"`
	Temperature int     `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Location    string  `json:"location"`
	Date        string  `json:"date"`
}

// Result is the outcome of a lookup. Lookups never fail: when the upstream
// provider is unavailable or unconfigured, Mock is true and Note explains why.
type Result struct {
	Info Info
	Mock bool
	Note string
}

// Client looks up forecasts from an OpenWeatherMap-compatible provider,
// degrading to fixed mock data on any failure.
type Client struct {
	apiKey      string
	baseURL     string
	defaultCity string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a weather client from configuration. An empty API key
// puts the client permanently in mock mode.
func NewClient(cfg config.WeatherConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		defaultCity: cfg.DefaultCity,
		httpClient:  &http.Client{Timeout: upstreamTimeout},
		logger:      logger,
	}
}

// Lookup returns the forecast closest to the requested date for the given
// location (the configured default city when empty). It degrades to mock
// data rather than returning an error.
func (c *Client) Lookup(ctx context.Context, date time.Time, location string) Result {
	city := location
	if city == "" {
		city = c.defaultCity
	}

	if c.apiKey == "" {
		return c.mockResult(date, city, "Using mock data - set BOOKING_WEATHER_API_KEY for real data")
	}

	info, err := c.fetchForecast(ctx, date, city)
	if err != nil {
		c.logger.Warn("weather lookup failed, falling back to mock data",
			zap.String("city", city),
			zap.Error(err),
		)
		return c.mockResult(date, city, "Using mock data due to API error")
	}

	return Result{Info: *info}
}

type forecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

func (c *Client) fetchForecast(ctx context.Context, date time.Time, city string) (*Info, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/forecast?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast request returned status %d", resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}
	if len(forecast.List) == 0 {
		return nil, fmt.Errorf("forecast response contained no entries")
	}

	closest := closestEntry(forecast.List, date)
	if len(closest.Weather) == 0 {
		return nil, fmt.Errorf("forecast entry missing weather conditions")
	}

	return &Info{
		Condition:   strings.ToLower(closest.Weather[0].Main),
		Temperature: int(math.Round(closest.Main.Temp)),
		Description: closest.Weather[0].Description,
		Humidity:    closest.Main.Humidity,
		WindSpeed:   closest.Wind.Speed,
		Location:    city,
		Date:        date.Format("2006-01-02"),
	}, nil
}

// closestEntry picks the forecast entry with the minimum absolute time
// difference from the target date.
func closestEntry(entries []forecastEntry, target time.Time) forecastEntry {
	best := entries[0]
	bestDiff := absDuration(time.Unix(best.Dt, 0).Sub(target))
	for _, entry := range entries[1:] {
		diff := absDuration(time.Unix(entry.Dt, 0).Sub(target))
		if diff < bestDiff {
			best = entry
			bestDiff = diff
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// ParseDate accepts a plain date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %s", s)
}

func (c *Client) mockResult(date time.Time, city, note string) Result {
	return Result{
		Info: Info{
			Condition:   "sunny",
			Temperature: 22,
			Description: "Clear skies",
			Humidity:    45,
			WindSpeed:   12,
			Location:    city,
			Date:        date.Format("2006-01-02"),
		},
		Mock: true,
		Note: note,
	}
}
