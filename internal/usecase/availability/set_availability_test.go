package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

var (
	setNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	setDay = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // a Monday
)

func fixedNow() time.Time { return setNow }

func slot(start, end string) models.TimeSlot {
	return models.TimeSlot{StartTime: start, EndTime: end}
}

func newSetUC(repo *mockRepo) *SetAvailability {
	uc := NewSetAvailability(repo, nil, nil, zap.NewNop())
	uc.now = fixedNow
	return uc
}

func TestSetAvailabilitySingleDay(t *testing.T) {
	var saved *models.Availability

	repo := &mockRepo{
		saveAvailability: func(_ context.Context, av *models.Availability) error {
			saved = av
			return nil
		},
	}

	result, err := newSetUC(repo).Execute(context.Background(), SetAvailabilityInput{
		DoctorID: 1,
		Date:     setDay,
		Slots:    []models.TimeSlot{slot("14:00", "15:00"), slot("09:00", "10:00")},
	})
	require.NoError(t, err)

	require.Len(t, result.Availabilities, 1)
	assert.Empty(t, result.Conflicts)

	require.NotNil(t, saved)
	require.Len(t, saved.Slots, 2)
	// slots come back ordered by start time regardless of request order
	assert.Equal(t, "09:00", saved.Slots[0].StartTime)
	assert.Equal(t, "14:00", saved.Slots[1].StartTime)
}

func TestSetAvailabilityExtendsExistingDay(t *testing.T) {
	var saved *models.Availability

	repo := &mockRepo{
		findAvailability: func(_ context.Context, _ uint, _ time.Time) (*models.Availability, error) {
			return &models.Availability{
				ID:       10,
				DoctorID: 1,
				Date:     setDay,
				Slots:    models.TimeSlots{{StartTime: "09:00", EndTime: "10:00", IsBooked: true}},
			}, nil
		},
		saveAvailability: func(_ context.Context, av *models.Availability) error {
			saved = av
			return nil
		},
	}

	_, err := newSetUC(repo).Execute(context.Background(), SetAvailabilityInput{
		DoctorID: 1,
		Date:     setDay,
		Slots:    []models.TimeSlot{slot("10:00", "11:00")},
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	require.Len(t, saved.Slots, 2)
	assert.True(t, saved.Slots[0].IsBooked)
	assert.False(t, saved.Slots[1].IsBooked)
}

func TestSetAvailabilityRejectsOverlapWithinRequest(t *testing.T) {
	_, err := newSetUC(&mockRepo{}).Execute(context.Background(), SetAvailabilityInput{
		DoctorID: 1,
		Date:     setDay,
		Slots:    []models.TimeSlot{slot("09:00", "10:00"), slot("09:30", "10:30")},
	})
	assert.True(t, httperr.IsBusiness(err, "overlapping_slots"))
}

func TestSetAvailabilityRejectsOverlapWithExisting(t *testing.T) {
	repo := &mockRepo{
		findAvailability: func(_ context.Context, _ uint, _ time.Time) (*models.Availability, error) {
			return &models.Availability{
				DoctorID: 1,
				Date:     setDay,
				Slots:    models.TimeSlots{{StartTime: "09:00", EndTime: "10:00"}},
			}, nil
		},
	}

	_, err := newSetUC(repo).Execute(context.Background(), SetAvailabilityInput{
		DoctorID: 1,
		Date:     setDay,
		Slots:    []models.TimeSlot{slot("09:30", "10:30")},
	})
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
}

func TestSetAvailabilityAllowsBackToBack(t *testing.T) {
	repo := &mockRepo{
		findAvailability: func(_ context.Context, _ uint, _ time.Time) (*models.Availability, error) {
			return &models.Availability{
				DoctorID: 1,
				Date:     setDay,
				Slots:    models.TimeSlots{{StartTime: "09:00", EndTime: "10:00"}},
			}, nil
		},
	}

	result, err := newSetUC(repo).Execute(context.Background(), SetAvailabilityInput{
		DoctorID: 1,
		Date:     setDay,
		Slots:    []models.TimeSlot{slot("10:00", "11:00")},
	})
	require.NoError(t, err)
	assert.Len(t, result.Availabilities, 1)
}

func TestSetAvailabilityRejectsPastSlotToday(t *testing.T) {
	today := dateutil.DayStartUTC(setNow)

	_, err := newSetUC(&mockRepo{}).Execute(context.Background(), SetAvailabilityInput{
		DoctorID: 1,
		Date:     today,
		Slots:    []models.TimeSlot{slot("09:00", "10:00")},
	})
	assert.True(t, httperr.IsBusiness(err, "slot_in_past"))
}

func TestSetAvailabilityNoSlots(t *testing.T) {
	_, err := newSetUC(&mockRepo{}).Execute(context.Background(), SetAvailabilityInput{
		DoctorID: 1,
		Date:     setDay,
	})
	assert.True(t, httperr.IsBusiness(err, "no_slots"))
}

// Recurring creation is partial: a date with a conflict is reported and
// skipped while the rest of the range is still created.
func TestSetAvailabilityRecurringPartialSuccess(t *testing.T) {
	conflictDate := time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC) // second Monday
	var savedDates []time.Time

	repo := &mockRepo{
		findAvailability: func(_ context.Context, _ uint, date time.Time) (*models.Availability, error) {
			if date.Equal(conflictDate) {
				return &models.Availability{
					DoctorID: 1,
					Date:     date,
					Slots:    models.TimeSlots{{StartTime: "09:00", EndTime: "10:00"}},
				}, nil
			}
			return nil, nil
		},
		saveAvailability: func(_ context.Context, av *models.Availability) error {
			savedDates = append(savedDates, av.Date)
			return nil
		},
	}

	result, err := newSetUC(repo).Execute(context.Background(), SetAvailabilityInput{
		DoctorID:         1,
		Date:             setDay,
		Slots:            []models.TimeSlot{slot("09:30", "10:30")},
		Recurring:        true,
		RecurringEndDate: setDay.AddDate(0, 0, 28),
		RecurringDays:    []time.Weekday{time.Monday},
	})
	require.NoError(t, err)

	assert.Len(t, result.Availabilities, 4)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, conflictDate, result.Conflicts[0].Date)
	assert.Len(t, savedDates, 4)
	assert.NotContains(t, savedDates, conflictDate)
}

func TestSetAvailabilityRecurringValidation(t *testing.T) {
	uc := newSetUC(&mockRepo{})

	_, err := uc.Execute(context.Background(), SetAvailabilityInput{
		DoctorID:         1,
		Date:             setDay,
		Slots:            []models.TimeSlot{slot("09:00", "10:00")},
		Recurring:        true,
		RecurringEndDate: setDay.AddDate(0, 0, 7),
	})
	assert.True(t, httperr.IsBusiness(err, "no_recurring_days"))

	_, err = uc.Execute(context.Background(), SetAvailabilityInput{
		DoctorID:         1,
		Date:             setDay,
		Slots:            []models.TimeSlot{slot("09:00", "10:00")},
		Recurring:        true,
		RecurringEndDate: setDay.AddDate(0, 0, -7),
		RecurringDays:    []time.Weekday{time.Monday},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_recurring_range"))

	// a range whose days never occur, e.g. Sunday within Mon-Fri only
	_, err = uc.Execute(context.Background(), SetAvailabilityInput{
		DoctorID:         1,
		Date:             setDay,
		Slots:            []models.TimeSlot{slot("09:00", "10:00")},
		Recurring:        true,
		RecurringEndDate: setDay.AddDate(0, 0, 4),
		RecurringDays:    []time.Weekday{time.Sunday},
	})
	assert.True(t, httperr.IsBusiness(err, "empty_recurring_range"))
}
