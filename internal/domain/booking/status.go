package booking

import "github.com/clinicore/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrValidation("already_cancelled", "Appointment is already cancelled.")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusPending {
		return httperr.ErrValidation("invalid_state", "Only pending appointments can be completed.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
