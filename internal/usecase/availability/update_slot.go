package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/audit"
	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/infra/cache"
	"github.com/clinicore/clinic-scheduler/internal/models"
	"github.com/clinicore/clinic-scheduler/internal/notify"
)

type UpdateSlot struct {
	repo       domain.Repository
	dispatcher *notify.Dispatcher
	cache      cache.DayCache
	audit      *audit.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewUpdateSlot(
	repo domain.Repository,
	dispatcher *notify.Dispatcher,
	avCache cache.DayCache,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *UpdateSlot {
	return &UpdateSlot{
		repo:       repo,
		dispatcher: dispatcher,
		cache:      avCache,
		audit:      auditDispatcher,
		logger:     logger,
		now:        dateutil.NowUTC,
	}
}

func (uc *UpdateSlot) Execute(
	ctx context.Context,
	availabilityID uint,
	slotIndex int,
	newSlot models.TimeSlot,
	doctorID uint,
	reason string,
) (*models.Availability, error) {

	av, err := uc.repo.FindAvailabilityByID(ctx, availabilityID)
	if err != nil {
		return nil, err
	}
	if av == nil {
		return nil, httperr.ErrNotFound("availability_not_found", "Availability record not found.")
	}

	if av.DoctorID != doctorID {
		return nil, httperr.ErrValidation("not_allowed", "Availability belongs to another doctor.")
	}

	if slotIndex < 0 || slotIndex >= len(av.Slots) {
		return nil, httperr.ErrValidation("invalid_slot_index", "Slot index out of range.")
	}

	old := av.Slots[slotIndex]

	if old.IsBooked && strings.TrimSpace(reason) == "" {
		return nil, httperr.ErrValidation("reason_required", "Changing a booked slot requires a reason.")
	}

	if err := domain.ValidateSlot(newSlot, av.Date, uc.now()); err != nil {
		return nil, err
	}
	if idx := domain.FindConflict(av.Slots, newSlot, slotIndex); idx >= 0 {
		return nil, httperr.ErrValidation("slot_conflict", "Updated slot overlaps another slot on this day.")
	}

	newSlot.IsBooked = old.IsBooked

	// a booked slot drags its appointment along. The appointment table is
	// the record of truth, so it moves first; the slot list is only
	// rewritten once the move is committed.
	var moved *models.Appointment
	if old.IsBooked {
		ap, err := uc.repo.FindActiveAppointmentBySlot(
			ctx, av.DoctorID, av.Date, old.StartTime, old.EndTime,
		)
		if err != nil {
			return nil, err
		}
		if ap != nil {
			ap.StartTime = newSlot.StartTime
			ap.EndTime = newSlot.EndTime
			if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
				if httperr.IsDuplicateKey(err) {
					return nil, httperr.ErrValidation("slot_already_booked", "Another appointment occupies the new time.")
				}
				return nil, err
			}
			moved = ap
		}
	}

	av.Slots[slotIndex] = newSlot

	if err := uc.repo.SaveAvailability(ctx, av); err != nil {
		return nil, err
	}

	if moved != nil {
		msg := fmt.Sprintf(
			"Your appointment on %s was moved to %s-%s. Reason: %s",
			av.Date.Format(dateutil.DayLayout), newSlot.StartTime, newSlot.EndTime, reason,
		)
		email := ""
		if patient, err := uc.repo.GetPatientByID(ctx, moved.PatientID); err == nil {
			email = patient.Email
		}
		uc.dispatcher.Dispatch(notify.Message{
			RecipientType: models.RecipientPatient,
			RecipientID:   moved.PatientID,
			Type:          "appointment_rescheduled",
			Text:          msg,
			Email:         email,
			EmailSubject:  "Your appointment was rescheduled",
		})
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, av.DoctorID, av.Date)
	}

	uc.audit.Dispatch(audit.Event{
		ActorType: models.RecipientDoctor,
		ActorID:   &doctorID,
		Action:    "slot_updated",
		Entity:    "availability",
		EntityID:  &av.ID,
	})

	return av, nil
}
