package booking

import (
	"context"
	"time"
)

// ListFilter narrows a listing; zero values mean "no constraint".
type ListFilter struct {
	Status  string
	Date    *time.Time
	Cuisine string
}

// GroupCount is one bucket of a grouped aggregation.
type GroupCount struct {
	Key   string
	Count int64
}

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id string) (*Booking, error)

	// List retrieves bookings matching the filter, most recent first.
	List(ctx context.Context, filter ListFilter) ([]*Booking, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking.
	Update(ctx context.Context, booking *Booking) error

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// CountByCuisine returns booking counts grouped by cuisine preference,
	// descending by count.
	CountByCuisine(ctx context.Context) ([]GroupCount, error)

	// CountBySeating returns booking counts grouped by seating preference.
	CountBySeating(ctx context.Context) ([]GroupCount, error)
}
