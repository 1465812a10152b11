package report

import (
	"time"

	"github.com/adibhanna/worktime/internal/models"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the most recent week-start day at or before
// t. weekStartDay is 1..7 with 1 = Sunday.
func StartOfWeek(t time.Time, weekStartDay int) time.Time {
	if weekStartDay < 1 || weekStartDay > 7 {
		weekStartDay = 1
	}
	weekday := int(t.Weekday()) + 1 // 1 = Sunday .. 7 = Saturday
	back := (weekday - weekStartDay + 7) % 7
	return StartOfDay(t).AddDate(0, 0, -back)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Range resolves a reporting period to a half-open [start, end) interval
// anchored at now. For models.Total there is no interval; bounded is false.
func Range(p models.Period, now time.Time, weekStartDay int) (start, end time.Time, bounded bool) {
	switch p {
	case models.Today:
		start = StartOfDay(now)
		return start, start.AddDate(0, 0, 1), true
	case models.ThisWeek:
		start = StartOfWeek(now, weekStartDay)
		return start, start.AddDate(0, 0, 7), true
	case models.LastWeek:
		end = StartOfWeek(now, weekStartDay)
		return end.AddDate(0, 0, -7), end, true
	case models.ThisMonth:
		start = StartOfMonth(now)
		return start, start.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// InRange reports whether t falls inside [start, end).
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
