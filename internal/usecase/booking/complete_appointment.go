package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/audit"
	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/models"
	"github.com/clinicore/clinic-scheduler/internal/notify"
)

type CompleteAppointment struct {
	repo       domain.Repository
	dispatcher *notify.Dispatcher
	audit      *audit.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	dispatcher *notify.Dispatcher,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:       repo,
		dispatcher: dispatcher,
		audit:      auditDispatcher,
		logger:     logger,
		now:        dateutil.NowUTC,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	doctorID uint,
	prescriptionID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
	}

	if ap.DoctorID != doctorID {
		return nil, httperr.ErrValidation("not_allowed", "Appointment belongs to another doctor.")
	}

	if err := domain.Complete(ap, uc.now(), prescriptionID); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	email := ""
	if patient, err := uc.repo.GetPatientByID(ctx, ap.PatientID); err == nil {
		email = patient.Email
	}
	uc.dispatcher.Dispatch(notify.Message{
		RecipientType: models.RecipientPatient,
		RecipientID:   ap.PatientID,
		Type:          "appointment_completed",
		Text:          fmt.Sprintf("Your appointment on %s was completed.", slotLabel(ap.Date, ap.StartTime, ap.EndTime)),
		Email:         email,
		EmailSubject:  "Appointment completed",
	})

	uc.audit.Dispatch(audit.Event{
		ActorType: models.RecipientDoctor,
		ActorID:   &doctorID,
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
