package report

import (
	"time"

	"github.com/adibhanna/worktime/internal/models"
)

// Session is the live-tracking input to aggregation: whether a session is
// running, when it started, and the accumulated time kept outside the ledger.
type Session struct {
	Running     bool
	Start       time.Time
	Accumulated time.Duration
}

// TotalDuration sums the signed durations of all ledger entries whose start
// falls inside the period, plus the live session when its start does. Entries
// with negative durations are adjustments and count as-is.
//
// For the total period with an empty ledger the accumulated time stands in
// for the ledger: editing the all-time total bypasses entries entirely and
// writes the accumulated figure instead.
func TotalDuration(p models.Period, entries []models.TimeEntry, session Session, now time.Time, weekStartDay int) time.Duration {
	start, end, bounded := Range(p, now, weekStartDay)

	var total time.Duration
	for _, e := range entries {
		if e.IsActive {
			continue
		}
		if !bounded || InRange(e.StartDate, start, end) {
			total += e.Duration(now)
		}
	}

	if p == models.Total && len(entries) == 0 {
		total += session.Accumulated
	}

	if session.Running && (!bounded || InRange(session.Start, start, end)) {
		total += now.Sub(session.Start)
	}
	return total
}

// TotalHours is TotalDuration expressed as fractional hours.
func TotalHours(p models.Period, entries []models.TimeEntry, session Session, now time.Time, weekStartDay int) float64 {
	return TotalDuration(p, entries, session, now, weekStartDay).Hours()
}

// Earnings multiplies the period's hours by the hourly rate.
func Earnings(p models.Period, entries []models.TimeEntry, session Session, now time.Time, settings models.Settings) float64 {
	return TotalHours(p, entries, session, now, settings.WeekStartDay) * settings.HourlyRate
}

// EntriesInRange filters entries whose start falls inside [start, end),
// preserving ledger order.
func EntriesInRange(entries []models.TimeEntry, start, end time.Time) []models.TimeEntry {
	var out []models.TimeEntry
	for _, e := range entries {
		if InRange(e.StartDate, start, end) {
			out = append(out, e)
		}
	}
	return out
}

// IsDayManuallyEdited reports whether a day's entries have been collapsed to
// a single synthetic entry anchored exactly at the day's start. That shape is
// only ever produced by an edit, so it doubles as the edited marker.
func IsDayManuallyEdited(entries []models.TimeEntry, day time.Time) bool {
	dayStart := StartOfDay(day)
	dayEntries := EntriesInRange(entries, dayStart, dayStart.AddDate(0, 0, 1))
	return len(dayEntries) == 1 && dayEntries[0].StartDate.Equal(dayStart)
}
