package availability

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/audit"
	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/infra/cache"
	"github.com/clinicore/clinic-scheduler/internal/models"
	ucbooking "github.com/clinicore/clinic-scheduler/internal/usecase/booking"
)

type RemoveSlot struct {
	repo   domain.Repository
	cancel *ucbooking.CancelAppointment
	cache  cache.DayCache
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewRemoveSlot(
	repo domain.Repository,
	cancel *ucbooking.CancelAppointment,
	avCache cache.DayCache,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *RemoveSlot {
	return &RemoveSlot{
		repo:   repo,
		cancel: cancel,
		cache:  avCache,
		audit:  auditDispatcher,
		logger: logger,
	}
}

func (uc *RemoveSlot) Execute(
	ctx context.Context,
	availabilityID uint,
	slotIndex int,
	doctorID uint,
	reason string,
) error {

	av, err := uc.repo.FindAvailabilityByID(ctx, availabilityID)
	if err != nil {
		return err
	}
	if av == nil {
		return httperr.ErrNotFound("availability_not_found", "Availability record not found.")
	}

	if av.DoctorID != doctorID {
		return httperr.ErrValidation("not_allowed", "Availability belongs to another doctor.")
	}

	if slotIndex < 0 || slotIndex >= len(av.Slots) {
		return httperr.ErrValidation("invalid_slot_index", "Slot index out of range.")
	}

	slot := av.Slots[slotIndex]

	// removing a booked slot cancels the appointment behind it, which
	// needs an explanation for the patient
	if slot.IsBooked {
		if strings.TrimSpace(reason) == "" {
			return httperr.ErrValidation("reason_required", "Removing a booked slot requires a reason.")
		}

		ap, err := uc.repo.FindActiveAppointmentBySlot(
			ctx, av.DoctorID, av.Date, slot.StartTime, slot.EndTime,
		)
		if err != nil {
			return err
		}
		if ap != nil {
			if err := uc.cancel.Execute(ctx, ucbooking.CancelAppointmentInput{
				AppointmentID:     ap.ID,
				RequesterDoctorID: &doctorID,
				Reason:            reason,
			}); err != nil {
				return err
			}
		}
	}

	av.Slots = append(av.Slots[:slotIndex], av.Slots[slotIndex+1:]...)

	if len(av.Slots) == 0 {
		// an empty day is deleted rather than kept around
		if err := uc.repo.DeleteAvailability(ctx, av.ID); err != nil {
			return err
		}
	} else {
		if err := uc.repo.SaveAvailability(ctx, av); err != nil {
			return err
		}
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, av.DoctorID, av.Date)
	}

	uc.audit.Dispatch(audit.Event{
		ActorType: models.RecipientDoctor,
		ActorID:   &doctorID,
		Action:    "slot_removed",
		Entity:    "availability",
		EntityID:  &av.ID,
		Metadata: map[string]any{
			"date":  av.Date.Format(dateutil.DayLayout),
			"start": slot.StartTime,
			"end":   slot.EndTime,
		},
	})

	return nil
}
