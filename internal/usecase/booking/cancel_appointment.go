package booking

import (
	"context"
	"strings"
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

// CancelAppointmentInput names the requester. Set RequesterPatientID for
// patient self-service, RequesterDoctorID for doctor-initiated
// cancellation, neither for admin.
type CancelAppointmentInput struct {
	AppointmentID uint

	RequesterPatientID *uint
	RequesterDoctorID  *uint

	Reason string
}

// ======================================================
// USE CASE
// ======================================================

type CancelAppointment struct {
	repo       domain.Repository
	subs       subdomain.Repository
	dispatcher *notify.Dispatcher
	cache      cache.DayCache
	audit      *audit.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	subs subdomain.Repository,
	dispatcher *notify.Dispatcher,
	avCache cache.DayCache,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:       repo,
		subs:       subs,
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

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) error {

	ap, err := uc.repo.FindAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return err
	}
	if ap == nil {
		return httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
	}

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return err
	}

	if err := uc.authorize(ap, in); err != nil {
		return err
	}

	if err := domain.Cancel(ap, uc.now(), in.Reason); err != nil {
		return err
	}

	// primary write; everything after is best-effort
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return err
	}

	hooks := []sideeffect.Hook{
		{
			Name: "slot_release",
			Run: func(ctx context.Context) error {
				av, err := uc.repo.FindAvailability(ctx, ap.DoctorID, ap.Date)
				if err != nil || av == nil {
					return err
				}
				return uc.repo.SetSlotBooked(ctx, av.ID, ap.StartTime, ap.EndTime, false)
			},
		},
		{
			Name: "subscription_restore",
			Run: func(ctx context.Context) error {
				return uc.restoreSubscription(ctx, ap)
			},
		},
		{
			Name: "cache_invalidate",
			Run: func(ctx context.Context) error {
				if uc.cache != nil {
					uc.cache.Invalidate(ctx, ap.DoctorID, ap.Date)
				}
				return nil
			},
		},
		{
			Name: "notifications",
			Run: func(ctx context.Context) error {
				uc.notifyParties(ctx, ap)
				return nil
			},
		},
	}

	sideeffect.Run(ctx, uc.logger, hooks)

	uc.audit.Dispatch(audit.Event{
		ActorType: actorType(in),
		ActorID:   actorID(in),
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return nil
}

// authorize applies the per-actor rules. Patients may only cancel their
// own appointments and only before the scheduled start; doctors may only
// cancel their own and must give a reason; admin requests carry neither id
// and skip both checks.
func (uc *CancelAppointment) authorize(
	ap *models.Appointment,
	in CancelAppointmentInput,
) error {

	if in.RequesterPatientID != nil && in.RequesterDoctorID != nil {
		return httperr.ErrValidation("ambiguous_requester", "A cancellation has exactly one requester.")
	}

	switch {
	case in.RequesterPatientID != nil:
		if *in.RequesterPatientID != ap.PatientID {
			return httperr.ErrValidation("not_allowed", "Appointment belongs to another patient.")
		}
		if !uc.now().Before(domain.StartInstant(ap)) {
			return httperr.ErrValidation("appointment_started", "Appointments can only be cancelled before they start.")
		}

	case in.RequesterDoctorID != nil:
		if *in.RequesterDoctorID != ap.DoctorID {
			return httperr.ErrValidation("not_allowed", "Appointment belongs to another doctor.")
		}
		if strings.TrimSpace(in.Reason) == "" {
			return httperr.ErrValidation("reason_required", "Doctor cancellations require a reason.")
		}
	}

	return nil
}

// restoreSubscription gives the consumed appointment back, but only when
// the patient's current active subscription is still the one that paid for
// the booking.
func (uc *CancelAppointment) restoreSubscription(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if ap.IsFreeBooking || ap.PlanID == nil {
		return nil
	}

	sub, err := uc.subs.FindActiveByPatientAndDoctor(ctx, ap.PatientID, ap.DoctorID, uc.now())
	if err != nil {
		return err
	}
	if sub == nil || sub.PlanID != *ap.PlanID {
		return nil
	}

	return uc.subs.DecrementAppointmentCount(ctx, sub.ID)
}

func (uc *CancelAppointment) notifyParties(ctx context.Context, ap *models.Appointment) {
	doctorRef := domain.Ref[models.Doctor](ap.DoctorID)
	if doctor, err := uc.repo.GetDoctorByID(ctx, ap.DoctorID); err == nil {
		doctorRef = domain.Resolved(doctor.ID, doctor)
	}

	patientRef := domain.Ref[models.Patient](ap.PatientID)
	if patient, err := uc.repo.GetPatientByID(ctx, ap.PatientID); err == nil {
		patientRef = domain.Resolved(patient.ID, patient)
	}

	for _, msg := range cancellationNotices(doctorRef, patientRef, ap) {
		uc.dispatcher.Dispatch(msg)
	}
}

func actorType(in CancelAppointmentInput) string {
	switch {
	case in.RequesterPatientID != nil:
		return models.RecipientPatient
	case in.RequesterDoctorID != nil:
		return models.RecipientDoctor
	default:
		return "admin"
	}
}

func actorID(in CancelAppointmentInput) *uint {
	switch {
	case in.RequesterPatientID != nil:
		return in.RequesterPatientID
	case in.RequesterDoctorID != nil:
		return in.RequesterDoctorID
	default:
		return nil
	}
}
