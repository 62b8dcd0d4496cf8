package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tablevoice/service-booking/internal/domain"
	bookingDomain "github.com/tablevoice/service-booking/internal/domain/booking"
	"github.com/tablevoice/service-booking/internal/events"
)

// BookingUseCase is the application-facing contract for booking operations.
type BookingUseCase interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error)
	ListBookings(ctx context.Context, q ListBookingsQuery) ([]BookingDTO, error)
	GetBooking(ctx context.Context, bookingID string) (*BookingDTO, error)
	UpdateBooking(ctx context.Context, bookingID string, req UpdateBookingRequest) (*BookingDTO, error)
	CancelBooking(ctx context.Context, bookingID string) (*BookingDTO, error)
	GetBookingStats(ctx context.Context) (*BookingStatsDTO, error)
}

// Publisher publishes CloudEvents to the event stream.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, event events.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	CustomerName      string                     `json:"customerName"`
	NumberOfGuests    int                        `json:"numberOfGuests"`
	BookingDate       string                     `json:"bookingDate"`
	BookingTime       string                     `json:"bookingTime"`
	CuisinePreference string                     `json:"cuisinePreference"`
	SpecialRequests   string                     `json:"specialRequests"`
	WeatherInfo       *bookingDomain.WeatherInfo `json:"weatherInfo"`
	SeatingPreference string                     `json:"seatingPreference"`
}

// UpdateBookingRequest holds a partial update; absent fields stay unchanged.
type UpdateBookingRequest struct {
	CustomerName      *string                    `json:"customerName"`
	NumberOfGuests    *int                       `json:"numberOfGuests"`
	BookingDate       *string                    `json:"bookingDate"`
	BookingTime       *string                    `json:"bookingTime"`
	CuisinePreference *string                    `json:"cuisinePreference"`
	SpecialRequests   *string                    `json:"specialRequests"`
	WeatherInfo       *bookingDomain.WeatherInfo `json:"weatherInfo"`
	SeatingPreference *string                    `json:"seatingPreference"`
	Status            *string                    `json:"status"`
}

// ListBookingsQuery narrows a listing; empty fields mean "no constraint".
type ListBookingsQuery struct {
	Status  string
	Date    string
	Cuisine string
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	BookingID         string                     `json:"bookingId"`
	CustomerName      string                     `json:"customerName"`
	NumberOfGuests    int                        `json:"numberOfGuests"`
	BookingDate       string                     `json:"bookingDate"`
	BookingTime       string                     `json:"bookingTime"`
	CuisinePreference string                     `json:"cuisinePreference"`
	SpecialRequests   string                     `json:"specialRequests"`
	WeatherInfo       *bookingDomain.WeatherInfo `json:"weatherInfo,omitempty"`
	SeatingPreference string                     `json:"seatingPreference"`
	Status            string                     `json:"status"`
	CreatedAt         time.Time                  `json:"createdAt"`
	UpdatedAt         time.Time                  `json:"updatedAt"`
}

// GroupCountDTO is one bucket of a grouped aggregation, mirroring the
// aggregation pipeline output shape.
type GroupCountDTO struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

// BookingStatsDTO holds aggregate booking statistics.
type BookingStatsDTO struct {
	Total     int64           `json:"total"`
	Confirmed int64           `json:"confirmed"`
	Cancelled int64           `json:"cancelled"`
	ByCuisine []GroupCountDTO `json:"byCuisine"`
	BySeating []GroupCountDTO `json:"bySeating"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo      bookingDomain.BookingRepository
	publisher Publisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService. The publisher may be nil,
// in which case events are skipped.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	publisher Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking validates the request, persists a new booking and returns it.
// An absent bookingDate is left zero so the aggregate can report it together
// with every other missing required field.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	var bookingDate time.Time
	if req.BookingDate != "" {
		var err error
		bookingDate, err = parseBookingDate(req.BookingDate)
		if err != nil {
			return nil, err
		}
	}

	bk, err := bookingDomain.NewBooking(bookingDomain.CreateParams{
		CustomerName:    req.CustomerName,
		NumberOfGuests:  req.NumberOfGuests,
		BookingDate:     bookingDate,
		BookingTime:     req.BookingTime,
		Cuisine:         req.CuisinePreference,
		SpecialRequests: req.SpecialRequests,
		WeatherInfo:     req.WeatherInfo,
		Seating:         req.SeatingPreference,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishLifecycleEvent(ctx, events.BookingCreated, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// ListBookings retrieves bookings matching the query, most recent first.
func (s *BookingService) ListBookings(ctx context.Context, q ListBookingsQuery) ([]BookingDTO, error) {
	filter := bookingDomain.ListFilter{
		Status:  q.Status,
		Cuisine: q.Cuisine,
	}
	if q.Date != "" {
		date, err := parseBookingDate(q.Date)
		if err != nil {
			return nil, err
		}
		filter.Date = &date
	}

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

// GetBooking retrieves a single booking by its identifier.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// UpdateBooking merges the provided fields into an existing booking and
// returns the post-update record.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID string, req UpdateBookingRequest) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	params := bookingDomain.UpdateParams{
		CustomerName:    req.CustomerName,
		NumberOfGuests:  req.NumberOfGuests,
		BookingTime:     req.BookingTime,
		Cuisine:         req.CuisinePreference,
		SpecialRequests: req.SpecialRequests,
		WeatherInfo:     req.WeatherInfo,
		Seating:         req.SeatingPreference,
		Status:          req.Status,
	}
	if req.BookingDate != nil {
		date, err := parseBookingDate(*req.BookingDate)
		if err != nil {
			return nil, err
		}
		params.BookingDate = &date
	}

	if err := bk.ApplyUpdate(params); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishLifecycleEvent(ctx, events.BookingUpdated, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking soft-cancels a booking. Cancelling twice is not an error; the
// second call returns the already-cancelled record unchanged.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.Cancel() {
		if err := s.repo.Update(ctx, bk); err != nil {
			return nil, err
		}
		s.publishLifecycleEvent(ctx, events.BookingCancelled, bk)
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingStats returns aggregate booking statistics.
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	statusCounts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	byCuisine, err := s.repo.CountByCuisine(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cuisine stats: %w", err)
	}

	bySeating, err := s.repo.CountBySeating(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get seating stats: %w", err)
	}

	var total int64
	for _, c := range statusCounts {
		total += c
	}

	return &BookingStatsDTO{
		Total:     total,
		Confirmed: statusCounts[string(bookingDomain.StatusConfirmed)],
		Cancelled: statusCounts[string(bookingDomain.StatusCancelled)],
		ByCuisine: toGroupCountDTOs(byCuisine),
		BySeating: toGroupCountDTOs(bySeating),
	}, nil
}

// --- Helpers ---

// parseBookingDate accepts a plain date or an RFC 3339 timestamp.
func parseBookingDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError(fmt.Sprintf("invalid bookingDate: %s", s))
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		BookingID:         bk.ID(),
		CustomerName:      bk.CustomerName(),
		NumberOfGuests:    bk.NumberOfGuests(),
		BookingDate:       bk.BookingDate().Format("2006-01-02"),
		BookingTime:       bk.BookingTime(),
		CuisinePreference: string(bk.Cuisine()),
		SpecialRequests:   bk.SpecialRequests(),
		WeatherInfo:       bk.WeatherInfo(),
		SeatingPreference: string(bk.Seating()),
		Status:            string(bk.Status()),
		CreatedAt:         bk.CreatedAt(),
		UpdatedAt:         bk.UpdatedAt(),
	}
}

func toGroupCountDTOs(counts []bookingDomain.GroupCount) []GroupCountDTO {
	dtos := make([]GroupCountDTO, len(counts))
	for i, gc := range counts {
		dtos[i] = GroupCountDTO{ID: gc.Key, Count: gc.Count}
	}
	return dtos
}

func (s *BookingService) publishLifecycleEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	if s.publisher == nil {
		return
	}

	evt := events.BookingLifecycleEvent{
		BookingID:         bk.ID(),
		CustomerName:      bk.CustomerName(),
		NumberOfGuests:    bk.NumberOfGuests(),
		BookingDate:       bk.BookingDate().Format("2006-01-02"),
		BookingTime:       bk.BookingTime(),
		CuisinePreference: string(bk.Cuisine()),
		SeatingPreference: string(bk.Seating()),
		Status:            string(bk.Status()),
		OccurredAt:        time.Now().UTC(),
	}

	cloudEvent, err := events.NewCloudEvent("service-booking", eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("booking_id", bk.ID()),
			zap.Error(err),
		)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
