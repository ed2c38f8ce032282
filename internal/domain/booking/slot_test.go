package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

var (
	testDay = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
)

func slot(start, end string) models.TimeSlot {
	return models.TimeSlot{StartTime: start, EndTime: end}
}

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		name     string
		slot     models.TimeSlot
		wantCode string
	}{
		{"valid hour slot", slot("09:00", "10:00"), ""},
		{"valid minimum duration", slot("09:00", "09:15"), ""},
		{"malformed start", slot("9:00", "10:00"), "invalid_time_format"},
		{"malformed end", slot("09:00", "25:00"), "invalid_time_format"},
		{"start equals end", slot("09:00", "09:00"), "invalid_time_range"},
		{"start after end", slot("10:00", "09:00"), "invalid_time_range"},
		{"below minimum duration", slot("09:00", "09:10"), "slot_too_short"},
		{"above maximum duration", slot("08:00", "16:01"), "slot_too_long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlot(tt.slot, testDay, testNow)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var berr httperr.BusinessError
			require.ErrorAs(t, err, &berr)
			assert.Equal(t, tt.wantCode, berr.Code)
		})
	}
}

func TestValidateSlotToday(t *testing.T) {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	err := ValidateSlot(slot("11:00", "11:30"), testDay, now)
	require.Error(t, err)
	var berr httperr.BusinessError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "slot_in_past", berr.Code)

	// a start exactly at now is still in the past
	err = ValidateSlot(slot("12:00", "12:30"), testDay, now)
	assert.Error(t, err)

	assert.NoError(t, ValidateSlot(slot("12:01", "12:31"), testDay, now))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b models.TimeSlot
		want bool
	}{
		{"disjoint", slot("09:00", "10:00"), slot("11:00", "12:00"), false},
		{"back to back", slot("09:00", "10:00"), slot("10:00", "11:00"), false},
		{"partial overlap", slot("09:00", "10:00"), slot("09:30", "10:30"), true},
		{"contained", slot("09:00", "12:00"), slot("10:00", "11:00"), true},
		{"identical", slot("09:00", "10:00"), slot("09:00", "10:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestFindConflict(t *testing.T) {
	slots := models.TimeSlots{
		slot("09:00", "10:00"),
		slot("10:00", "11:00"),
		slot("14:00", "15:00"),
	}

	assert.Equal(t, -1, FindConflict(slots, slot("11:00", "12:00"), -1))
	assert.Equal(t, 0, FindConflict(slots, slot("09:30", "10:30"), -1))
	assert.Equal(t, 2, FindConflict(slots, slot("14:30", "15:30"), -1))

	// skipIdx lets a slot be re-validated against its siblings only
	assert.Equal(t, -1, FindConflict(slots, slot("14:00", "15:00"), 2))
	assert.Equal(t, 1, FindConflict(slots, slot("10:30", "11:30"), 2))
}

func TestIndexOfSlot(t *testing.T) {
	slots := models.TimeSlots{
		slot("09:00", "10:00"),
		slot("10:00", "11:00"),
	}

	assert.Equal(t, 1, IndexOfSlot(slots, "10:00", "11:00"))
	assert.Equal(t, -1, IndexOfSlot(slots, "10:00", "10:45"))
}
