package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablevoice/service-booking/internal/domain"
)

func validCreateParams() CreateParams {
	return CreateParams{
		CustomerName:   "Alice Tan",
		NumberOfGuests: 4,
		BookingDate:    time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		BookingTime:    "7:30 PM",
		Cuisine:        "Italian",
		Seating:        "Outdoor",
	}
}

func TestNewBooking_AppliesDefaults(t *testing.T) {
	bk, err := NewBooking(validCreateParams())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(bk.ID(), "BK"))
	assert.Equal(t, StatusConfirmed, bk.Status())
	assert.Equal(t, DefaultSpecialRequests, bk.SpecialRequests())
	assert.Nil(t, bk.WeatherInfo())
	assert.False(t, bk.CreatedAt().IsZero())
	assert.Equal(t, bk.CreatedAt(), bk.UpdatedAt())
}

func TestNewBooking_GeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		bk, err := NewBooking(validCreateParams())
		require.NoError(t, err)
		require.NotEmpty(t, bk.ID())
		assert.False(t, seen[bk.ID()], "duplicate booking ID: %s", bk.ID())
		seen[bk.ID()] = true
	}
}

func TestNewBooking_MissingFields(t *testing.T) {
	_, err := NewBooking(CreateParams{})
	require.Error(t, err)

	de := domain.AsDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, domain.KindValidation, de.Kind)
	assert.Equal(t, []string{
		"customerName",
		"numberOfGuests",
		"bookingDate",
		"bookingTime",
		"cuisinePreference",
		"seatingPreference",
	}, de.MissingFields)
}

func TestNewBooking_SingleMissingField(t *testing.T) {
	p := validCreateParams()
	p.BookingTime = ""

	_, err := NewBooking(p)
	require.Error(t, err)

	de := domain.AsDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, []string{"bookingTime"}, de.MissingFields)
}

func TestNewBooking_GuestBounds(t *testing.T) {
	tests := []struct {
		name    string
		guests  int
		wantErr bool
	}{
		{"lower bound accepted", 1, false},
		{"upper bound accepted", 20, false},
		{"above upper bound rejected", 21, true},
		{"negative rejected", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCreateParams()
			p.NumberOfGuests = tt.guests
			_, err := NewBooking(p)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewBooking_ZeroGuestsReportedAsMissing(t *testing.T) {
	p := validCreateParams()
	p.NumberOfGuests = 0

	_, err := NewBooking(p)
	require.Error(t, err)

	de := domain.AsDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, []string{"numberOfGuests"}, de.MissingFields)
}

func TestNewBooking_InvalidEnums(t *testing.T) {
	p := validCreateParams()
	p.Cuisine = "French"
	_, err := NewBooking(p)
	assert.True(t, domain.IsValidation(err))

	p = validCreateParams()
	p.Seating = "Rooftop"
	_, err = NewBooking(p)
	assert.True(t, domain.IsValidation(err))
}

func TestBooking_CancelIsIdempotent(t *testing.T) {
	bk, err := NewBooking(validCreateParams())
	require.NoError(t, err)

	assert.True(t, bk.Cancel())
	assert.Equal(t, StatusCancelled, bk.Status())

	assert.False(t, bk.Cancel())
	assert.Equal(t, StatusCancelled, bk.Status())
}

func TestBooking_ApplyUpdate_MergesFields(t *testing.T) {
	bk, err := NewBooking(validCreateParams())
	require.NoError(t, err)

	name := "Bob Lee"
	guests := 6
	cuisine := "Chinese"
	require.NoError(t, bk.ApplyUpdate(UpdateParams{
		CustomerName:   &name,
		NumberOfGuests: &guests,
		Cuisine:        &cuisine,
	}))

	assert.Equal(t, "Bob Lee", bk.CustomerName())
	assert.Equal(t, 6, bk.NumberOfGuests())
	assert.Equal(t, CuisineChinese, bk.Cuisine())
	// untouched fields survive
	assert.Equal(t, "7:30 PM", bk.BookingTime())
	assert.Equal(t, SeatingOutdoor, bk.Seating())
}

func TestBooking_ApplyUpdate_RejectsInvalidChanges(t *testing.T) {
	bk, err := NewBooking(validCreateParams())
	require.NoError(t, err)

	guests := 21
	err = bk.ApplyUpdate(UpdateParams{NumberOfGuests: &guests})
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 4, bk.NumberOfGuests(), "failed update must not mutate the booking")

	empty := ""
	err = bk.ApplyUpdate(UpdateParams{CustomerName: &empty})
	assert.True(t, domain.IsValidation(err))

	badStatus := "archived"
	err = bk.ApplyUpdate(UpdateParams{Status: &badStatus})
	assert.True(t, domain.IsValidation(err))
}

func TestBooking_ApplyUpdate_StatusTransitions(t *testing.T) {
	bk, err := NewBooking(validCreateParams())
	require.NoError(t, err)

	cancelled := string(StatusCancelled)
	require.NoError(t, bk.ApplyUpdate(UpdateParams{Status: &cancelled}))
	assert.Equal(t, StatusCancelled, bk.Status())

	// cancelled is terminal
	confirmed := string(StatusConfirmed)
	err = bk.ApplyUpdate(UpdateParams{Status: &confirmed})
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, StatusCancelled, bk.Status())

	// re-setting the same status is a no-op, not an error
	require.NoError(t, bk.ApplyUpdate(UpdateParams{Status: &cancelled}))
}

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusPending))
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	_, err = ParseBookingStatus("archived")
	assert.Error(t, err)
}
