package booking

import (
	"time"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

const (
	MinSlotMinutes = 15
	MaxSlotMinutes = 480
)

// ValidateSlot checks the shape of a single slot: well-formed "HH:mm"
// times, start strictly before end, duration policy, and — when day is
// today — a start strictly after now.
func ValidateSlot(slot models.TimeSlot, day time.Time, now time.Time) error {
	if !dateutil.IsValidHM(slot.StartTime) || !dateutil.IsValidHM(slot.EndTime) {
		return httperr.ErrValidation("invalid_time_format", "Slot times must be HH:mm.")
	}

	start := dateutil.MinutesOf(slot.StartTime)
	end := dateutil.MinutesOf(slot.EndTime)

	if start >= end {
		return httperr.ErrValidation("invalid_time_range", "Slot start must be before its end.")
	}

	if end-start < MinSlotMinutes {
		return httperr.ErrValidation("slot_too_short", "Slot is shorter than the minimum duration.")
	}
	if end-start > MaxSlotMinutes {
		return httperr.ErrValidation("slot_too_long", "Slot exceeds the maximum duration.")
	}

	if dateutil.SameDay(day, now) && !dateutil.CombineDayHM(day, slot.StartTime).After(now) {
		return httperr.ErrValidation("slot_in_past", "Slots for today must start in the future.")
	}

	return nil
}

// Overlaps uses half-open interval semantics: touching endpoints do not
// overlap, so back-to-back slots are allowed.
func Overlaps(a, b models.TimeSlot) bool {
	return dateutil.MinutesOf(a.StartTime) < dateutil.MinutesOf(b.EndTime) &&
		dateutil.MinutesOf(b.StartTime) < dateutil.MinutesOf(a.EndTime)
}

// FindConflict returns the index of the first slot in slots overlapping
// candidate, skipping skipIdx (pass -1 to check all), or -1.
func FindConflict(slots models.TimeSlots, candidate models.TimeSlot, skipIdx int) int {
	for i, s := range slots {
		if i == skipIdx {
			continue
		}
		if Overlaps(s, candidate) {
			return i
		}
	}
	return -1
}

// IndexOfSlot locates the slot with an exact (start, end) match, or -1.
func IndexOfSlot(slots models.TimeSlots, startTime, endTime string) int {
	for i, s := range slots {
		if s.StartTime == startTime && s.EndTime == endTime {
			return i
		}
	}
	return -1
}
