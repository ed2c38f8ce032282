package booking

import (
	"time"

	"github.com/clinicore/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancellationReason = reason
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time, prescriptionID *uint) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.PrescriptionID = prescriptionID
	ap.CompletedAt = &now
	return nil
}

// StartInstant combines the appointment's UTC day with its start time.
func StartInstant(ap *models.Appointment) time.Time {
	t, _ := time.Parse("15:04", ap.StartTime)
	d := ap.Date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}
