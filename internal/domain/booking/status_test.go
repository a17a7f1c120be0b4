package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstays/stay-booking/internal/httperr"
	"github.com/openstays/stay-booking/internal/models"
)

func TestCanAccept(t *testing.T) {
	assert.NoError(t, CanAccept(StatusPending))

	err := CanAccept(StatusAccepted)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	err = CanAccept(StatusCancelled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestAcceptAction(t *testing.T) {
	now := time.Now()

	b := &models.Booking{Status: string(StatusPending)}
	require.NoError(t, Accept(b, now))
	assert.Equal(t, string(StatusAccepted), b.Status)
	require.NotNil(t, b.AcceptedAt)
	assert.Equal(t, now, *b.AcceptedAt)

	// No second acceptance, no way back from cancelled.
	assert.Error(t, Accept(b, now))
	b.Status = string(StatusCancelled)
	assert.Error(t, Accept(b, now))
}

func TestCancelAction(t *testing.T) {
	first := time.Now()

	b := &models.Booking{Status: string(StatusAccepted)}
	require.NoError(t, Cancel(b, first))
	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)

	// Cancelling twice stays quiet and keeps the original timestamp.
	later := first.Add(time.Hour)
	require.NoError(t, Cancel(b, later))
	assert.Equal(t, first, *b.CancelledAt)
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus())
}
