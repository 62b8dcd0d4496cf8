package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/tablevoice/service-booking/internal/domain"
)

const (
	// MinGuests and MaxGuests bound the party size accepted per booking.
	MinGuests = 1
	MaxGuests = 20

	// DefaultSpecialRequests is stored when the caller provides none.
	DefaultSpecialRequests = "None"
)

// Booking is the aggregate root for the restaurant booking domain.
type Booking struct {
	id              string
	customerName    string
	numberOfGuests  int
	bookingDate     time.Time
	bookingTime     string
	cuisine         CuisinePreference
	specialRequests string
	weatherInfo     *WeatherInfo
	seating         SeatingPreference
	status          BookingStatus
	createdAt       time.Time
	updatedAt       time.Time
}

// CreateParams holds the input for creating a new booking. A zero
// NumberOfGuests or zero BookingDate counts as absent.
type CreateParams struct {
	CustomerName    string
	NumberOfGuests  int
	BookingDate     time.Time
	BookingTime     string
	Cuisine         string
	SpecialRequests string
	WeatherInfo     *WeatherInfo
	Seating         string
}

// UpdateParams holds a partial update; nil fields are left untouched.
type UpdateParams struct {
	CustomerName    *string
	NumberOfGuests  *int
	BookingDate     *time.Time
	BookingTime     *string
	Cuisine         *string
	SpecialRequests *string
	WeatherInfo     *WeatherInfo
	Seating         *string
	Status          *string
}

// generateBookingID creates an identifier in the format "BK<unix-millis><n>".
// The time prefix plus a random suffix gives practical uniqueness; the store's
// unique index backstops the narrow collision window.
func generateBookingID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("failed to generate booking ID: %w", err)
	}
	return fmt.Sprintf("BK%d%d", time.Now().UnixMilli(), n.Int64()), nil
}

// NewBooking validates the input and creates a Booking with status=confirmed.
// Absent required fields are reported together in a single validation error.
func NewBooking(p CreateParams) (*Booking, error) {
	var missing []string
	if p.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if p.NumberOfGuests == 0 {
		missing = append(missing, "numberOfGuests")
	}
	if p.BookingDate.IsZero() {
		missing = append(missing, "bookingDate")
	}
	if p.BookingTime == "" {
		missing = append(missing, "bookingTime")
	}
	if p.Cuisine == "" {
		missing = append(missing, "cuisinePreference")
	}
	if p.Seating == "" {
		missing = append(missing, "seatingPreference")
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingFieldsError(missing)
	}

	if p.NumberOfGuests < MinGuests || p.NumberOfGuests > MaxGuests {
		return nil, domain.NewValidationError(fmt.Sprintf("numberOfGuests must be between %d and %d", MinGuests, MaxGuests))
	}
	cuisine := CuisinePreference(p.Cuisine)
	if !cuisine.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid cuisinePreference: %s", p.Cuisine))
	}
	seating := SeatingPreference(p.Seating)
	if !seating.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid seatingPreference: %s", p.Seating))
	}

	id, err := generateBookingID()
	if err != nil {
		return nil, err
	}

	specialRequests := p.SpecialRequests
	if specialRequests == "" {
		specialRequests = DefaultSpecialRequests
	}

	now := time.Now().UTC()
	return &Booking{
		id:              id,
		customerName:    p.CustomerName,
		numberOfGuests:  p.NumberOfGuests,
		bookingDate:     dateOnly(p.BookingDate),
		bookingTime:     p.BookingTime,
		cuisine:         cuisine,
		specialRequests: specialRequests,
		weatherInfo:     p.WeatherInfo,
		seating:         seating,
		status:          StatusConfirmed,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id string,
	customerName string,
	numberOfGuests int,
	bookingDate time.Time,
	bookingTime string,
	cuisine CuisinePreference,
	specialRequests string,
	weatherInfo *WeatherInfo,
	seating SeatingPreference,
	status BookingStatus,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		customerName:    customerName,
		numberOfGuests:  numberOfGuests,
		bookingDate:     bookingDate,
		bookingTime:     bookingTime,
		cuisine:         cuisine,
		specialRequests: specialRequests,
		weatherInfo:     weatherInfo,
		seating:         seating,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() string { return b.id }

// CustomerName returns the name the reservation is held under.
func (b *Booking) CustomerName() string { return b.customerName }

// NumberOfGuests returns the party size.
func (b *Booking) NumberOfGuests() int { return b.numberOfGuests }

// BookingDate returns the calendar date of the reservation.
func (b *Booking) BookingDate() time.Time { return b.bookingDate }

// BookingTime returns the free-form time-of-day token.
func (b *Booking) BookingTime() string { return b.bookingTime }

// Cuisine returns the cuisine preference.
func (b *Booking) Cuisine() CuisinePreference { return b.cuisine }

// SpecialRequests returns the special requests text.
func (b *Booking) SpecialRequests() string { return b.specialRequests }

// WeatherInfo returns the caller-supplied weather snapshot, or nil.
func (b *Booking) WeatherInfo() *WeatherInfo { return b.weatherInfo }

// Seating returns the seating preference.
func (b *Booking) Seating() SeatingPreference { return b.seating }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// ApplyUpdate merges the provided fields into the booking, re-validating
// enum and range constraints on everything that changed.
func (b *Booking) ApplyUpdate(u UpdateParams) error {
	if u.NumberOfGuests != nil && (*u.NumberOfGuests < MinGuests || *u.NumberOfGuests > MaxGuests) {
		return domain.NewValidationError(fmt.Sprintf("numberOfGuests must be between %d and %d", MinGuests, MaxGuests))
	}
	if u.CustomerName != nil && *u.CustomerName == "" {
		return domain.NewValidationError("customerName must not be empty")
	}
	var cuisine CuisinePreference
	if u.Cuisine != nil {
		cuisine = CuisinePreference(*u.Cuisine)
		if !cuisine.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid cuisinePreference: %s", *u.Cuisine))
		}
	}
	var seating SeatingPreference
	if u.Seating != nil {
		seating = SeatingPreference(*u.Seating)
		if !seating.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid seatingPreference: %s", *u.Seating))
		}
	}
	var status BookingStatus
	if u.Status != nil {
		parsed, err := ParseBookingStatus(*u.Status)
		if err != nil {
			return domain.NewValidationError(err.Error())
		}
		if !b.status.CanTransitionTo(parsed) {
			return domain.NewValidationError(fmt.Sprintf("cannot change status from %s to %s", b.status, parsed))
		}
		status = parsed
	}

	if u.CustomerName != nil {
		b.customerName = *u.CustomerName
	}
	if u.NumberOfGuests != nil {
		b.numberOfGuests = *u.NumberOfGuests
	}
	if u.BookingDate != nil {
		b.bookingDate = dateOnly(*u.BookingDate)
	}
	if u.BookingTime != nil {
		b.bookingTime = *u.BookingTime
	}
	if u.Cuisine != nil {
		b.cuisine = cuisine
	}
	if u.SpecialRequests != nil {
		b.specialRequests = *u.SpecialRequests
	}
	if u.WeatherInfo != nil {
		b.weatherInfo = u.WeatherInfo
	}
	if u.Seating != nil {
		b.seating = seating
	}
	if u.Status != nil {
		b.status = status
	}
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel marks the booking cancelled. Cancelling an already-cancelled booking
// is a no-op; the returned bool reports whether anything changed.
func (b *Booking) Cancel() bool {
	if b.status == StatusCancelled {
		return false
	}
	b.status = StatusCancelled
	b.updatedAt = time.Now().UTC()
	return true
}

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
