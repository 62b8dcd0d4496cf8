package events

import "time"

// TopicBookingEvents carries the booking lifecycle event stream.
const TopicBookingEvents = "booking.events"

// Booking lifecycle event types.
const (
	BookingCreated   = "booking.created"
	BookingUpdated   = "booking.updated"
	BookingCancelled = "booking.cancelled"
)

// BookingLifecycleEvent is the payload published on every booking state change.
type BookingLifecycleEvent struct {
	BookingID         string    `json:"bookingId"`
	CustomerName      string    `json:"customerName"`
	NumberOfGuests    int       `json:"numberOfGuests"`
	BookingDate       string    `json:"bookingDate"`
	BookingTime       string    `json:"bookingTime"`
	CuisinePreference string    `json:"cuisinePreference"`
	SeatingPreference string    `json:"seatingPreference"`
	Status            string    `json:"status"`
	OccurredAt        time.Time `json:"occurredAt"`
}
