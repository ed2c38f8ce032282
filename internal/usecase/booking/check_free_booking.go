package booking

import (
	"context"
	"time"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	subdomain "github.com/clinicore/clinic-scheduler/internal/domain/subscription"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
)

// CheckFreeBooking answers whether a patient may take a doctor's one-time
// free appointment. Side-effect-free; the booking path runs the same check
// inline, so the pre-flight verdict and the booking verdict always agree.
type CheckFreeBooking struct {
	repo domain.Repository
	subs subdomain.Repository
	now  func() time.Time
}

func NewCheckFreeBooking(
	repo domain.Repository,
	subs subdomain.Repository,
) *CheckFreeBooking {
	return &CheckFreeBooking{
		repo: repo,
		subs: subs,
		now:  dateutil.NowUTC,
	}
}

func (uc *CheckFreeBooking) Execute(
	ctx context.Context,
	patientID uint,
	doctorID uint,
) error {

	doctor, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			return httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
		}
		return err
	}

	if !doctor.AllowsFreeBooking {
		return httperr.ErrValidation("free_booking_not_allowed", "This doctor does not offer free bookings.")
	}

	sub, err := uc.subs.FindActiveByPatientAndDoctor(ctx, patientID, doctorID, uc.now())
	if err != nil {
		return err
	}
	if sub != nil {
		return httperr.ErrValidation("has_active_subscription", "Patients with an active subscription book through it.")
	}

	used, err := uc.repo.CountFreeAppointments(ctx, patientID, doctorID)
	if err != nil {
		return err
	}
	if used > 0 {
		return httperr.ErrValidation("free_booking_used", "The free booking with this doctor was already used.")
	}

	return nil
}
