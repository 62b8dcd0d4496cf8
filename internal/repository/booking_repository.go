package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tablevoice/service-booking/internal/domain"
	bookingDomain "github.com/tablevoice/service-booking/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	BookingID         string          `gorm:"primaryKey;size:32"`
	CustomerName      string          `gorm:"not null;size:200"`
	NumberOfGuests    int             `gorm:"not null"`
	BookingDate       time.Time       `gorm:"type:date;not null;index"`
	BookingTime       string          `gorm:"not null;size:50"`
	CuisinePreference string          `gorm:"not null;size:20;index"`
	SpecialRequests   string          `gorm:"not null;size:1000;default:'None'"`
	WeatherInfo       json.RawMessage `gorm:"type:jsonb"`
	SeatingPreference string          `gorm:"not null;size:10"`
	Status            string          `gorm:"not null;size:20;index"`
	CreatedAt         time.Time       `gorm:"not null;index"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// List retrieves bookings matching the filter, most recent first.
func (r *GormBookingRepository) List(ctx context.Context, filter bookingDomain.ListFilter) ([]*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		query = query.Where("booking_date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.Cuisine != "" {
		query = query.Where("cuisine_preference = ?", filter.Cuisine)
	}

	var models []BookingModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// Save persists a new booking. A booking ID collision surfaces as a conflict.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError(fmt.Sprintf("booking ID already exists: %s", bk.ID()))
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("booking_id = ?", model.BookingID).
		Updates(map[string]interface{}{
			"customer_name":      model.CustomerName,
			"number_of_guests":   model.NumberOfGuests,
			"booking_date":       model.BookingDate,
			"booking_time":       model.BookingTime,
			"cuisine_preference": model.CuisinePreference,
			"special_requests":   model.SpecialRequests,
			"weather_info":       model.WeatherInfo,
			"seating_preference": model.SeatingPreference,
			"status":             model.Status,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", bk.ID())
	}
	return nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	results, err := r.groupCounts(ctx, "status", "count DESC")
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(results))
	for _, gc := range results {
		counts[gc.Key] = gc.Count
	}
	return counts, nil
}

// CountByCuisine returns booking counts grouped by cuisine, descending by count.
func (r *GormBookingRepository) CountByCuisine(ctx context.Context) ([]bookingDomain.GroupCount, error) {
	return r.groupCounts(ctx, "cuisine_preference", "count DESC")
}

// CountBySeating returns booking counts grouped by seating preference.
func (r *GormBookingRepository) CountBySeating(ctx context.Context) ([]bookingDomain.GroupCount, error) {
	return r.groupCounts(ctx, "seating_preference", "seating_preference ASC")
}

func (r *GormBookingRepository) groupCounts(ctx context.Context, column, order string) ([]bookingDomain.GroupCount, error) {
	type row struct {
		Key   string
		Count int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select(fmt.Sprintf("%s as key, count(*) as count", column)).
		Group(column).
		Order(order).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", column, err)
	}

	results := make([]bookingDomain.GroupCount, len(rows))
	for i, rw := range rows {
		results[i] = bookingDomain.GroupCount{Key: rw.Key, Count: rw.Count}
	}
	return results, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	var weatherJSON json.RawMessage
	if bk.WeatherInfo() != nil {
		data, err := json.Marshal(bk.WeatherInfo())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal weather info: %w", err)
		}
		weatherJSON = data
	}

	return &BookingModel{
		BookingID:         bk.ID(),
		CustomerName:      bk.CustomerName(),
		NumberOfGuests:    bk.NumberOfGuests(),
		BookingDate:       bk.BookingDate(),
		BookingTime:       bk.BookingTime(),
		CuisinePreference: string(bk.Cuisine()),
		SpecialRequests:   bk.SpecialRequests(),
		WeatherInfo:       weatherJSON,
		SeatingPreference: string(bk.Seating()),
		Status:            string(bk.Status()),
		CreatedAt:         bk.CreatedAt(),
		UpdatedAt:         bk.UpdatedAt(),
	}, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var weatherInfo *bookingDomain.WeatherInfo
	if len(m.WeatherInfo) > 0 {
		var wi bookingDomain.WeatherInfo
		if err := json.Unmarshal(m.WeatherInfo, &wi); err != nil {
			return nil, fmt.Errorf("failed to unmarshal weather info: %w", err)
		}
		weatherInfo = &wi
	}

	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.BookingID,
		m.CustomerName,
		m.NumberOfGuests,
		m.BookingDate,
		m.BookingTime,
		bookingDomain.CuisinePreference(m.CuisinePreference),
		m.SpecialRequests,
		weatherInfo,
		bookingDomain.SeatingPreference(m.SeatingPreference),
		status,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

var _ bookingDomain.BookingRepository = (*GormBookingRepository)(nil)
