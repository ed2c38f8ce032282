package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Cancel(ap, now, "patient request"))

	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, "patient request", ap.CancellationReason)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)

	// cancelling twice is rejected
	err := Cancel(ap, now, "again")
	assert.True(t, httperr.IsBusiness(err, "already_cancelled"))
}

func TestCancelCompletedAppointment(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusCompleted)}

	// completed appointments can still be cancelled, e.g. logged in error
	require.NoError(t, Cancel(ap, time.Now().UTC(), ""))
	assert.Equal(t, string(StatusCancelled), ap.Status)
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	prescription := uint(42)

	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Complete(ap, now, &prescription))

	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.PrescriptionID)
	assert.Equal(t, prescription, *ap.PrescriptionID)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)
}

func TestCompleteRequiresPending(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		err := Complete(ap, time.Now().UTC(), nil)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "status %s", status)
	}
}

func TestStartInstant(t *testing.T) {
	ap := &models.Appointment{
		Date:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "14:30",
	}

	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), StartInstant(ap))
}

func TestReference(t *testing.T) {
	ref := Ref[models.Doctor](7)
	assert.Equal(t, uint(7), ref.ID())
	_, ok := ref.Record()
	assert.False(t, ok)

	doc := &models.Doctor{Name: "Dr. Silva"}
	resolved := Resolved(7, doc)
	assert.Equal(t, uint(7), resolved.ID())
	got, ok := resolved.Record()
	require.True(t, ok)
	assert.Equal(t, doc, got)
}
