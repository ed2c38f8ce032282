package booking

import (
	"time"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
)

// ExpandRecurringDates enumerates the UTC days in [start, end] whose
// weekday is in weekdays. Pure; the caller processes each date
// independently.
func ExpandRecurringDates(start, end time.Time, weekdays []time.Weekday) []time.Time {
	start = dateutil.DayStartUTC(start)
	end = dateutil.DayStartUTC(end)

	wanted := make(map[time.Weekday]bool, len(weekdays))
	for _, wd := range weekdays {
		wanted[wd] = true
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wanted[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}
