package availability

import (
	"context"
	"time"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	"github.com/clinicore/clinic-scheduler/internal/infra/cache"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

type DayAvailability struct {
	ID    uint             `json:"id"`
	Date  time.Time        `json:"date"`
	Slots models.TimeSlots `json:"time_slots"`
}

type GetAvailability struct {
	repo  domain.Repository
	cache cache.DayCache
}

func NewGetAvailability(
	repo domain.Repository,
	avCache cache.DayCache,
) *GetAvailability {
	return &GetAvailability{repo: repo, cache: avCache}
}

// Execute returns a doctor's declared days in [from, to]. With
// filterBooked set, already-booked slots are dropped so clients see only
// what can still be taken.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
	filterBooked bool,
) ([]DayAvailability, error) {

	from = dateutil.DayStartUTC(from)
	to = dateutil.DayStartUTC(to)

	singleDay := from.Equal(to)

	// a cache hit must answer with the same record the database would,
	// id included, since clients address slots by availability id
	if singleDay && uc.cache != nil {
		if av, ok := uc.cache.Get(ctx, doctorID, from); ok {
			return []DayAvailability{{
				ID:    av.ID,
				Date:  av.Date,
				Slots: filterSlots(av.Slots, filterBooked),
			}}, nil
		}
	}

	avs, err := uc.repo.ListAvailability(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]DayAvailability, 0, len(avs))
	for i := range avs {
		av := avs[i]
		if singleDay && uc.cache != nil {
			uc.cache.Set(ctx, &avs[i])
		}
		out = append(out, DayAvailability{
			ID:    av.ID,
			Date:  av.Date,
			Slots: filterSlots(av.Slots, filterBooked),
		})
	}
	return out, nil
}

func filterSlots(slots models.TimeSlots, filterBooked bool) models.TimeSlots {
	if !filterBooked {
		return slots
	}
	free := make(models.TimeSlots, 0, len(slots))
	for _, s := range slots {
		if !s.IsBooked {
			free = append(free, s)
		}
	}
	return free
}
