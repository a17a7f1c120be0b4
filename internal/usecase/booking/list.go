package booking

import (
	"context"

	domain "github.com/openstays/stay-booking/internal/domain/booking"
	"github.com/openstays/stay-booking/internal/dto"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) ForTraveler(
	ctx context.Context,
	travelerID uint,
) ([]dto.TravelerBookingRow, error) {
	return uc.repo.ListForTraveler(ctx, travelerID)
}

func (uc *ListBookings) ForOwner(
	ctx context.Context,
	ownerID uint,
) ([]dto.OwnerBookingRow, error) {
	return uc.repo.ListForOwner(ctx, ownerID)
}
