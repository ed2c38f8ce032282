package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/audit"
	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	subdomain "github.com/clinicore/clinic-scheduler/internal/domain/subscription"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/infra/cache"
	"github.com/clinicore/clinic-scheduler/internal/models"
	"github.com/clinicore/clinic-scheduler/internal/notify"
	"github.com/clinicore/clinic-scheduler/internal/sideeffect"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientID uint
	DoctorID  uint

	Date      time.Time
	StartTime string
	EndTime   string

	IsFreeBooking bool
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo       domain.Repository
	subs       subdomain.Repository
	free       *CheckFreeBooking
	dispatcher *notify.Dispatcher
	cache      cache.DayCache
	audit      *audit.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	subs subdomain.Repository,
	free *CheckFreeBooking,
	dispatcher *notify.Dispatcher,
	avCache cache.DayCache,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:       repo,
		subs:       subs,
		free:       free,
		dispatcher: dispatcher,
		cache:      avCache,
		audit:      auditDispatcher,
		logger:     logger,
		now:        dateutil.NowUTC,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Parties
	// --------------------------------------------------
	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
		}
		return nil, err
	}

	patient, err := uc.repo.GetPatientByID(ctx, in.PatientID)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("patient_not_found", "Patient not found.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 2. Day availability
	// --------------------------------------------------
	date := dateutil.DayStartUTC(in.Date)

	av, err := uc.repo.FindAvailability(ctx, in.DoctorID, date)
	if err != nil {
		return nil, err
	}
	if av == nil {
		return nil, httperr.ErrNotFound("availability_not_found", "The doctor has no availability on this day.")
	}

	// --------------------------------------------------
	// 3. Requested slot
	// --------------------------------------------------
	idx := domain.IndexOfSlot(av.Slots, in.StartTime, in.EndTime)
	if idx < 0 {
		return nil, httperr.ErrValidation("slot_not_found", "No such slot on this day.")
	}
	if av.Slots[idx].IsBooked {
		return nil, httperr.ErrValidation("slot_already_booked", "This slot is already booked.")
	}

	// --------------------------------------------------
	// 4. Race guard (pre-check; the unique index decides)
	// --------------------------------------------------
	existing, err := uc.repo.FindActiveAppointmentBySlot(
		ctx, in.DoctorID, date, in.StartTime, in.EndTime,
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrValidation("slot_already_booked", "This slot is already booked.")
	}

	// --------------------------------------------------
	// 5. Entitlement — exactly one path
	// --------------------------------------------------
	var planID *uint
	var sub *models.PatientSubscription

	if in.IsFreeBooking {
		if err := uc.free.Execute(ctx, in.PatientID, in.DoctorID); err != nil {
			return nil, err
		}
	} else {
		sub, err = uc.subs.FindActiveByPatientAndDoctor(ctx, in.PatientID, in.DoctorID, uc.now())
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, httperr.ErrValidation("no_active_subscription", "No active subscription with this doctor.")
		}
		if !subdomain.IsUsable(sub, uc.now()) {
			return nil, httperr.ErrValidation("no_appointments_left", "The subscription has no appointments left.")
		}
		planID = &sub.PlanID
	}

	// --------------------------------------------------
	// 6. Appointment — the write that decides the race
	// --------------------------------------------------
	ap := &models.Appointment{
		PatientID:     in.PatientID,
		DoctorID:      in.DoctorID,
		Date:          date,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Status:        string(domain.InitialStatus()),
		IsFreeBooking: in.IsFreeBooking,
		BookingTime:   uc.now(),
		PlanID:        planID,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsDuplicateKey(err) {
			return nil, httperr.ErrValidation("slot_already_booked", "This slot is already booked.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 7. Best-effort side effects
	// --------------------------------------------------
	hooks := []sideeffect.Hook{}

	if sub != nil {
		subID := sub.ID
		hooks = append(hooks, sideeffect.Hook{
			Name: "subscription_counter",
			Run: func(ctx context.Context) error {
				return uc.subs.IncrementAppointmentCount(ctx, subID)
			},
		})
	}

	hooks = append(hooks,
		sideeffect.Hook{
			Name: "slot_flag",
			Run: func(ctx context.Context) error {
				return uc.repo.SetSlotBooked(ctx, av.ID, in.StartTime, in.EndTime, true)
			},
		},
		sideeffect.Hook{
			Name: "cache_invalidate",
			Run: func(ctx context.Context) error {
				if uc.cache != nil {
					uc.cache.Invalidate(ctx, in.DoctorID, date)
				}
				return nil
			},
		},
		sideeffect.Hook{
			Name: "notifications",
			Run: func(ctx context.Context) error {
				notices := bookingNotices(
					domain.Resolved(doctor.ID, doctor),
					domain.Resolved(patient.ID, patient),
					ap,
				)
				for _, msg := range notices {
					uc.dispatcher.Dispatch(msg)
				}
				return nil
			},
		},
	)

	sideeffect.Run(ctx, uc.logger, hooks)

	uc.audit.Dispatch(audit.Event{
		ActorType: models.RecipientPatient,
		ActorID:   &in.PatientID,
		Action:    "appointment_booked",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
