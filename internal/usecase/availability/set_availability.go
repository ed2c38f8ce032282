package availability

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/audit"
	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/infra/cache"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SetAvailabilityInput struct {
	DoctorID uint
	Date     time.Time
	Slots    []models.TimeSlot

	Recurring        bool
	RecurringEndDate time.Time
	RecurringDays    []time.Weekday
}

// Conflict records why one target date could not be processed. Recurring
// creation is partial by design: a bad date never aborts the others.
type Conflict struct {
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

type SetAvailabilityResult struct {
	Availabilities []models.Availability `json:"availabilities"`
	Conflicts      []Conflict            `json:"conflicts"`
}

// ======================================================
// USE CASE
// ======================================================

type SetAvailability struct {
	repo   domain.Repository
	cache  cache.DayCache
	audit  *audit.Dispatcher
	logger *zap.Logger
	now    func() time.Time
}

func NewSetAvailability(
	repo domain.Repository,
	avCache cache.DayCache,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *SetAvailability {
	return &SetAvailability{
		repo:   repo,
		cache:  avCache,
		audit:  auditDispatcher,
		logger: logger,
		now:    dateutil.NowUTC,
	}
}

func (uc *SetAvailability) Execute(
	ctx context.Context,
	in SetAvailabilityInput,
) (*SetAvailabilityResult, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, in.DoctorID); err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
		}
		return nil, err
	}

	if len(in.Slots) == 0 {
		return nil, httperr.ErrValidation("no_slots", "At least one slot is required.")
	}

	dates, err := uc.targetDates(in)
	if err != nil {
		return nil, err
	}

	result := &SetAvailabilityResult{
		Availabilities: []models.Availability{},
		Conflicts:      []Conflict{},
	}

	for _, date := range dates {
		av, err := uc.applyToDate(ctx, in.DoctorID, date, in.Slots)
		if err != nil {
			// single-date requests surface the error directly; recurring
			// ones collect it and keep going
			if !in.Recurring {
				return nil, err
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Date:    date,
				Message: err.Error(),
			})
			continue
		}
		result.Availabilities = append(result.Availabilities, *av)
	}

	uc.audit.Dispatch(audit.Event{
		ActorType: models.RecipientDoctor,
		ActorID:   &in.DoctorID,
		Action:    "availability_set",
		Entity:    "availability",
		Metadata: map[string]any{
			"dates":     len(dates),
			"conflicts": len(result.Conflicts),
		},
	})

	return result, nil
}

// targetDates resolves the request to the list of UTC days to process.
func (uc *SetAvailability) targetDates(in SetAvailabilityInput) ([]time.Time, error) {
	date := dateutil.DayStartUTC(in.Date)

	if !in.Recurring {
		return []time.Time{date}, nil
	}

	if len(in.RecurringDays) == 0 {
		return nil, httperr.ErrValidation("no_recurring_days", "Recurring availability needs at least one weekday.")
	}

	end := dateutil.DayStartUTC(in.RecurringEndDate)
	if end.Before(date) {
		return nil, httperr.ErrValidation("invalid_recurring_range", "Recurring end date is before the start date.")
	}

	dates := domain.ExpandRecurringDates(date, end, in.RecurringDays)
	if len(dates) == 0 {
		return nil, httperr.ErrValidation("empty_recurring_range", "No dates match the requested weekdays.")
	}
	return dates, nil
}

// applyToDate validates the new slots against each other and against the
// day's existing set, then creates or extends the day's record.
func (uc *SetAvailability) applyToDate(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	slots []models.TimeSlot,
) (*models.Availability, error) {

	now := uc.now()

	for i, slot := range slots {
		slot.IsBooked = false
		if err := domain.ValidateSlot(slot, date, now); err != nil {
			return nil, err
		}
		for _, other := range slots[i+1:] {
			if domain.Overlaps(slot, other) {
				return nil, httperr.ErrValidation("overlapping_slots", "Requested slots overlap each other.")
			}
		}
	}

	av, err := uc.repo.FindAvailability(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	if av == nil {
		av = &models.Availability{
			DoctorID: doctorID,
			Date:     date,
			Slots:    models.TimeSlots{},
		}
	}

	for _, slot := range slots {
		slot.IsBooked = false
		if idx := domain.FindConflict(av.Slots, slot, -1); idx >= 0 {
			return nil, httperr.ErrValidation("slot_conflict", "Slot overlaps an existing slot on this day.")
		}
		av.Slots = append(av.Slots, slot)
	}

	sort.SliceStable(av.Slots, func(i, j int) bool {
		return dateutil.MinutesOf(av.Slots[i].StartTime) < dateutil.MinutesOf(av.Slots[j].StartTime)
	})

	if err := uc.repo.SaveAvailability(ctx, av); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, doctorID, date)
	}

	return av, nil
}
