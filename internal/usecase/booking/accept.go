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

type AcceptBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAcceptBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AcceptBooking {
	return &AcceptBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AcceptBooking) Execute(
	ctx context.Context,
	ownerID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	if b.Property.OwnerID != ownerID {
		return nil, httperr.ErrBusiness("not_authorized")
	}

	if err := domain.Accept(b, time.Now()); err != nil {
		return nil, err
	}

	// The overlap invariant lives on accepted bookings, so it has to be
	// enforced here, atomically with the status flip.
	if err := uc.repo.AcceptWithRecheck(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "booking_accepted",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
