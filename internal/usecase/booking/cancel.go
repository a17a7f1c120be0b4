package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/openstays/stay-booking/internal/audit"
	domain "github.com/openstays/stay-booking/internal/domain/booking"
	"github.com/openstays/stay-booking/internal/httperr"
	"github.com/openstays/stay-booking/internal/models"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	actorID uint,
	actorRole models.Role,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	if !canActOn(b, actorID, actorRole) {
		return nil, httperr.ErrBusiness("not_authorized")
	}

	if err := domain.Cancel(b, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// canActOn allows the booking's traveler and the owner of the booked
// property, nobody else.
func canActOn(b *models.Booking, actorID uint, actorRole models.Role) bool {
	switch actorRole {
	case models.RoleTraveler:
		return b.TravelerID == actorID
	case models.RoleOwner:
		return b.Property.OwnerID == actorID
	default:
		return false
	}
}
