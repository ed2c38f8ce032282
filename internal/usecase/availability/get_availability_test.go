package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-scheduler/internal/models"
)

func TestGetAvailability(t *testing.T) {
	repo := &mockRepo{
		listAvailability: func(_ context.Context, _ uint, from, to time.Time) ([]models.Availability, error) {
			return []models.Availability{
				{
					ID:   10,
					Date: from,
					Slots: models.TimeSlots{
						{StartTime: "09:00", EndTime: "10:00", IsBooked: true},
						{StartTime: "10:00", EndTime: "11:00"},
					},
				},
				{
					ID:    11,
					Date:  to,
					Slots: models.TimeSlots{{StartTime: "09:00", EndTime: "10:00"}},
				},
			}, nil
		},
	}
	uc := NewGetAvailability(repo, nil)

	from := setDay
	to := setDay.AddDate(0, 0, 1)

	days, err := uc.Execute(context.Background(), 1, from, to, false)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Len(t, days[0].Slots, 2)

	// free_only drops slots that are already taken
	days, err = uc.Execute(context.Background(), 1, from, to, true)
	require.NoError(t, err)
	require.Len(t, days, 2)
	require.Len(t, days[0].Slots, 1)
	assert.Equal(t, "10:00", days[0].Slots[0].StartTime)
}

// A cache hit answers with the exact record the database would, id
// included, so clients can always address slots on it.
func TestGetAvailabilityCacheHitMatchesDatabase(t *testing.T) {
	day := func() *models.Availability {
		return &models.Availability{
			ID:       10,
			DoctorID: 1,
			Date:     setDay,
			Slots: models.TimeSlots{
				{StartTime: "09:00", EndTime: "10:00", IsBooked: true},
				{StartTime: "10:00", EndTime: "11:00"},
			},
		}
	}

	repo := &mockRepo{
		listAvailability: func(_ context.Context, _ uint, _, _ time.Time) ([]models.Availability, error) {
			return []models.Availability{*day()}, nil
		},
	}

	uncached, err := NewGetAvailability(repo, nil).Execute(context.Background(), 1, setDay, setDay, false)
	require.NoError(t, err)

	warm := &mockCache{
		get: func(_ context.Context, _ uint, _ time.Time) (*models.Availability, bool) {
			return day(), true
		},
	}
	coldRepo := &mockRepo{
		listAvailability: func(_ context.Context, _ uint, _, _ time.Time) ([]models.Availability, error) {
			t.Fatal("a cache hit must not reach the database")
			return nil, nil
		},
	}

	cached, err := NewGetAvailability(coldRepo, warm).Execute(context.Background(), 1, setDay, setDay, false)
	require.NoError(t, err)

	assert.Equal(t, uncached, cached)
	require.Len(t, cached, 1)
	assert.Equal(t, uint(10), cached[0].ID)
}

func TestGetAvailabilityMissStoresWholeRecord(t *testing.T) {
	var stored *models.Availability

	repo := &mockRepo{
		listAvailability: func(_ context.Context, _ uint, from, _ time.Time) ([]models.Availability, error) {
			return []models.Availability{{
				ID:       10,
				DoctorID: 1,
				Date:     from,
				Slots:    models.TimeSlots{{StartTime: "09:00", EndTime: "10:00"}},
			}}, nil
		},
	}
	c := &mockCache{
		set: func(_ context.Context, av *models.Availability) {
			stored = av
		},
	}

	_, err := NewGetAvailability(repo, c).Execute(context.Background(), 1, setDay, setDay, false)
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, uint(10), stored.ID)
	assert.Equal(t, setDay, stored.Date)
	assert.Len(t, stored.Slots, 1)
}

func TestGetAvailabilityEmptyRange(t *testing.T) {
	uc := NewGetAvailability(&mockRepo{}, nil)

	days, err := uc.Execute(context.Background(), 1, setDay, setDay.AddDate(0, 0, 7), false)
	require.NoError(t, err)
	assert.Empty(t, days)
}
