package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/openstays/stay-booking/internal/domain/booking"
	"github.com/openstays/stay-booking/internal/dto"
	"github.com/openstays/stay-booking/internal/httperr"
	"github.com/openstays/stay-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Property
// --------------------------------------------------

func (r *BookingGormRepository) GetProperty(
	ctx context.Context,
	id uint,
) (*models.Property, error) {

	var p models.Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Booking (create / availability)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) HasAcceptedOverlap(
	ctx context.Context,
	propertyID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"property_id = ? AND status = ? AND start_date < ? AND end_date > ?",
			propertyID,
			domain.StatusAccepted,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Traveler").
		First(&b, id).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Omit("Property", "Traveler").
		Save(b).Error
}

// AcceptWithRecheck re-validates the accepted-overlap invariant in the
// same transaction that flips the status. Two overlapping requests can
// both sit pending; only the first acceptance wins.
func (r *BookingGormRepository) AcceptWithRecheck(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Lock the property row, not the conflicting bookings: an empty
		// conflict set locks nothing, and two concurrent accepts of
		// mutually overlapping requests would both pass the count.
		var property models.Property
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, b.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("property_not_found")
			}
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"property_id = ? AND id <> ? AND status = ? AND start_date < ? AND end_date > ?",
				b.PropertyID,
				b.ID,
				domain.StatusAccepted,
				b.EndDate,
				b.StartDate,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("dates_unavailable")
		}

		return tx.Omit("Property", "Traveler").Save(b).Error
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListForTraveler(
	ctx context.Context,
	travelerID uint,
) ([]dto.TravelerBookingRow, error) {

	var rows []dto.TravelerBookingRow

	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select(`bookings.id, bookings.property_id, bookings.start_date, bookings.end_date,
			bookings.num_guests, bookings.total_price, bookings.status, bookings.created_at,
			properties.name AS property_name, properties.location, properties.city,
			users.name AS owner_name, users.phone AS owner_phone`).
		Joins("LEFT JOIN properties ON properties.id = bookings.property_id").
		Joins("LEFT JOIN users ON users.id = properties.owner_id").
		Where("bookings.traveler_id = ?", travelerID).
		Order("bookings.created_at DESC").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *BookingGormRepository) ListForOwner(
	ctx context.Context,
	ownerID uint,
) ([]dto.OwnerBookingRow, error) {

	var rows []dto.OwnerBookingRow

	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select(`bookings.id, bookings.property_id, bookings.start_date, bookings.end_date,
			bookings.num_guests, bookings.total_price, bookings.status, bookings.created_at,
			properties.name AS property_name, properties.location, properties.city,
			users.name AS traveler_name, users.email AS traveler_email, users.phone AS traveler_phone`).
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Joins("LEFT JOIN users ON users.id = bookings.traveler_id").
		Where("properties.owner_id = ?", ownerID).
		Order("bookings.created_at DESC").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
