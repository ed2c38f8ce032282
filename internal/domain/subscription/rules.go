package subscription

import (
	"time"

	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

// CancellationGrace is how long after purchase a subscription may still be
// cancelled for a refund.
const CancellationGrace = 30 * time.Minute

// CanCancel enforces the refund rules: subscription still active, no
// appointments consumed, and cancellation requested within the grace
// window after purchase.
func CanCancel(sub *models.PatientSubscription, now time.Time) error {
	if Status(sub.Status) != StatusActive {
		return httperr.ErrValidation("subscription_not_active", "Only active subscriptions can be cancelled.")
	}
	if sub.AppointmentsUsed != 0 {
		return httperr.ErrValidation("subscription_in_use", "Subscriptions with booked appointments cannot be cancelled.")
	}
	if now.Sub(sub.CreatedAt) > CancellationGrace {
		return httperr.ErrValidation("grace_window_elapsed", "The cancellation window has elapsed.")
	}
	return nil
}

// RemainingForDisplay clamps the remaining-appointment counter at zero.
// The stored value is never clamped so that racing increments and
// decrements cannot drift.
func RemainingForDisplay(sub *models.PatientSubscription) int {
	if sub.AppointmentsLeft < 0 {
		return 0
	}
	return sub.AppointmentsLeft
}

// IsUsable reports whether sub still entitles the patient to book.
func IsUsable(sub *models.PatientSubscription, now time.Time) bool {
	return Status(sub.Status) == StatusActive &&
		sub.AppointmentsLeft > 0 &&
		!sub.EndDate.Before(now)
}
