package dateutil

import (
	"time"
)

const (
	DayLayout = "2006-01-02"
	HMLayout  = "15:04"
)

// DayStartUTC truncates t to the UTC day boundary.
func DayStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a "YYYY-MM-DD" string into a UTC day-aligned instant.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DayStartUTC(t), nil
}

// IsValidHM reports whether s is a valid "HH:mm" 24-hour time.
func IsValidHM(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse(HMLayout, s)
	return err == nil
}

// MinutesOf converts "HH:mm" to minutes since midnight. Callers must
// validate with IsValidHM first; invalid input yields 0.
func MinutesOf(hm string) int {
	t, err := time.Parse(HMLayout, hm)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// CombineDayHM places an "HH:mm" time onto a UTC day, producing the instant
// the slot begins or ends.
func CombineDayHM(day time.Time, hm string) time.Time {
	day = day.UTC()
	t, _ := time.Parse(HMLayout, hm)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		time.UTC,
	)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayStartUTC(a).Equal(DayStartUTC(b))
}

func NowUTC() time.Time {
	return time.Now().UTC()
}
