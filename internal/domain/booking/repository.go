package booking

import (
	"context"
	"time"

	"github.com/openstays/stay-booking/internal/dto"
	"github.com/openstays/stay-booking/internal/models"
)

type Repository interface {
	// -------- Property --------
	GetProperty(
		ctx context.Context,
		id uint,
	) (*models.Property, error)

	// -------- Booking (create / availability) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	HasAcceptedOverlap(
		ctx context.Context,
		propertyID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// AcceptWithRecheck flips pending -> accepted and re-validates the
	// accepted-overlap invariant in the same transaction.
	AcceptWithRecheck(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listing --------
	ListForTraveler(
		ctx context.Context,
		travelerID uint,
	) ([]dto.TravelerBookingRow, error)

	ListForOwner(
		ctx context.Context,
		ownerID uint,
	) ([]dto.OwnerBookingRow, error)
}
