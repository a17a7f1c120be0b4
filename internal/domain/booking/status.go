package booking

import "github.com/openstays/stay-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Transitions
// ===============================

// CanAccept allows pending -> accepted only. An accepted or cancelled
// booking never returns to pending.
func CanAccept(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel allows cancel from any state. Cancelling an already
// cancelled booking is a no-op so client retries stay safe.
func CanCancel(current Status) error {
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
