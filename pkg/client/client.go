// Package client is a thin typed wrapper around the restaurant booking HTTP
// API. It performs no business logic of its own.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client calls the booking service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the service at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WeatherInfo is a weather snapshot attached to a booking or returned by a lookup.
type WeatherInfo struct {
	Condition   string  `json:"condition"`
	Temperature int     `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Location    string  `json:"location,omitempty"`
	Date        string  `json:"date,omitempty"`
}

// Booking is the API representation of a reservation.
type Booking struct {
	BookingID         string       `json:"bookingId"`
	CustomerName      string       `json:"customerName"`
	NumberOfGuests    int          `json:"numberOfGuests"`
	BookingDate       string       `json:"bookingDate"`
	BookingTime       string       `json:"bookingTime"`
	CuisinePreference string       `json:"cuisinePreference"`
	SpecialRequests   string       `json:"specialRequests"`
	WeatherInfo       *WeatherInfo `json:"weatherInfo,omitempty"`
	SeatingPreference string       `json:"seatingPreference"`
	Status            string       `json:"status"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// CreateBookingRequest holds the fields for creating a booking.
type CreateBookingRequest struct {
	CustomerName      string       `json:"customerName"`
	NumberOfGuests    int          `json:"numberOfGuests"`
	BookingDate       string       `json:"bookingDate"`
	BookingTime       string       `json:"bookingTime"`
	CuisinePreference string       `json:"cuisinePreference"`
	SpecialRequests   string       `json:"specialRequests,omitempty"`
	WeatherInfo       *WeatherInfo `json:"weatherInfo,omitempty"`
	SeatingPreference string       `json:"seatingPreference"`
}

// UpdateBookingRequest holds a partial update; nil fields are omitted.
type UpdateBookingRequest struct {
	CustomerName      *string      `json:"customerName,omitempty"`
	NumberOfGuests    *int         `json:"numberOfGuests,omitempty"`
	BookingDate       *string      `json:"bookingDate,omitempty"`
	BookingTime       *string      `json:"bookingTime,omitempty"`
	CuisinePreference *string      `json:"cuisinePreference,omitempty"`
	SpecialRequests   *string      `json:"specialRequests,omitempty"`
	WeatherInfo       *WeatherInfo `json:"weatherInfo,omitempty"`
	SeatingPreference *string      `json:"seatingPreference,omitempty"`
	Status            *string      `json:"status,omitempty"`
}

// ListOptions filter a booking listing; empty fields are ignored.
type ListOptions struct {
	Status  string
	Date    string
	Cuisine string
}

// GroupCount is one bucket of a grouped stats aggregation.
type GroupCount struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

// Stats holds aggregate booking statistics.
type Stats struct {
	Total     int64        `json:"total"`
	Confirmed int64        `json:"confirmed"`
	Cancelled int64        `json:"cancelled"`
	ByCuisine []GroupCount `json:"byCuisine"`
	BySeating []GroupCount `json:"bySeating"`
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string   `json:"error"`
	Details    string   `json:"details"`
	Required   []string `json:"required"`
	BookingID  string   `json:"bookingId"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error (%d): %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Health checks the service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("service unhealthy: %s", out.Status)
	}
	return nil
}

// CreateBooking creates a new booking.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	var out struct {
		Booking *Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/bookings", req, &out); err != nil {
		return nil, err
	}
	return out.Booking, nil
}

// ListBookings lists bookings matching the options, most recent first.
func (c *Client) ListBookings(ctx context.Context, opts ListOptions) ([]Booking, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Date != "" {
		query.Set("date", opts.Date)
	}
	if opts.Cuisine != "" {
		query.Set("cuisine", opts.Cuisine)
	}

	path := "/api/bookings"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out struct {
		Bookings []Booking `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

// GetBooking fetches a single booking by its identifier.
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	var out struct {
		Booking *Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(bookingID), nil, &out); err != nil {
		return nil, err
	}
	return out.Booking, nil
}

// UpdateBooking merges the provided fields into an existing booking.
func (c *Client) UpdateBooking(ctx context.Context, bookingID string, req UpdateBookingRequest) (*Booking, error) {
	var out struct {
		Booking *Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/bookings/"+url.PathEscape(bookingID), req, &out); err != nil {
		return nil, err
	}
	return out.Booking, nil
}

// CancelBooking soft-cancels a booking and returns the cancelled record.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) (*Booking, error) {
	var out struct {
		Booking *Booking `json:"booking"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/bookings/"+url.PathEscape(bookingID), nil, &out); err != nil {
		return nil, err
	}
	return out.Booking, nil
}

// LookupWeather fetches the forecast for a date and optional location. The
// returned note is non-empty when the service answered with mock data.
func (c *Client) LookupWeather(ctx context.Context, date, location string) (*WeatherInfo, string, error) {
	body := map[string]string{"date": date}
	if location != "" {
		body["location"] = location
	}

	var out struct {
		Weather *WeatherInfo `json:"weather"`
		Note    string       `json:"note"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/weather", body, &out); err != nil {
		return nil, "", err
	}
	return out.Weather, out.Note, nil
}

// BookingStats fetches aggregate booking statistics.
func (c *Client) BookingStats(ctx context.Context) (*Stats, error) {
	var out struct {
		Stats *Stats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/analytics/stats", nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
