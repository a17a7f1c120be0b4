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

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	TravelerID uint
	PropertyID uint

	StartDate string
	EndDate   string
	NumGuests int
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.PropertyID == 0 || in.NumGuests <= 0 || in.StartDate == "" || in.EndDate == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	start, err := time.Parse(domain.DateLayout, in.StartDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_dates")
	}
	end, err := time.Parse(domain.DateLayout, in.EndDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_dates")
	}

	if !end.After(start) {
		return nil, httperr.ErrBusiness("invalid_dates")
	}

	property, err := uc.repo.GetProperty(ctx, in.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("property_not_found")
		}
		return nil, err
	}

	if in.NumGuests > property.MaxGuests {
		return nil, httperr.ErrBusiness("max_guests_exceeded")
	}

	// Only accepted stays block dates; pending requests can pile up
	// and get resolved at accept time.
	taken, err := uc.repo.HasAcceptedOverlap(ctx, property.ID, start, end)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("dates_unavailable")
	}

	b := &models.Booking{
		PropertyID: property.ID,
		TravelerID: in.TravelerID,
		StartDate:  start,
		EndDate:    end,
		NumGuests:  in.NumGuests,
		TotalPrice: domain.TotalPrice(start, end, property.PricePerNight),
		Status:     string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.TravelerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
