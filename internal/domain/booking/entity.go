package booking

import (
	"time"

	"github.com/openstays/stay-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(b *models.Booking, now time.Time) error {
	if err := CanAccept(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusAccepted)
	b.AcceptedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	if b.Status != string(StatusCancelled) {
		b.CancelledAt = &now
	}
	b.Status = string(StatusCancelled)
	return nil
}
