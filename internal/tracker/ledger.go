package tracker

import (
	"time"

	"github.com/adibhanna/worktime/internal/models"
	"github.com/adibhanna/worktime/internal/report"
)

// EntriesForRange returns the ledger entries whose start falls inside
// [start, end), in ledger order.
func (t *Tracker) EntriesForRange(start, end time.Time) []models.TimeEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return report.EntriesInRange(t.entries, start, end)
}

// EntriesForDay returns the entries of day's calendar day.
func (t *Tracker) EntriesForDay(day time.Time) []models.TimeEntry {
	dayStart := report.StartOfDay(day)
	return t.EntriesForRange(dayStart, dayStart.AddDate(0, 0, 1))
}

// IsDayManuallyEdited reports whether the day's sessions were overwritten by
// an edit: exactly one entry anchored at the day's start.
func (t *Tracker) IsDayManuallyEdited(day time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return report.IsDayManuallyEdited(t.entries, day)
}

// DeleteDay removes every entry of day's calendar day. A session running on
// that day is finalized first, so the entry it produces is deleted along
// with the rest.
func (t *Tracker) DeleteDay(day time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	dayStart := report.StartOfDay(day)
	t.clearRangeLocked(dayStart, dayStart.AddDate(0, 0, 1))
	t.persistEntries()
	t.notify()
}

// EditDay replaces the day's entries with a single synthetic entry of the
// given duration anchored at the day's start. A non-positive duration just
// deletes the day.
func (t *Tracker) EditDay(day time.Time, newDuration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	dayStart := report.StartOfDay(day)
	t.clearRangeLocked(dayStart, dayStart.AddDate(0, 0, 1))
	if newDuration > 0 {
		t.entries = append(t.entries, models.NewEntry(dayStart, dayStart.Add(newDuration)))
	}
	t.persistEntries()
	t.notify()
}

// EditPeriod overwrites a whole reporting period with one synthetic entry
// anchored at the period's start. The all-time total has no anchor: the
// ledger is cleared and the duration is written as accumulated time instead.
func (t *Tracker) EditPeriod(p models.Period, newDuration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()

	if p == models.Total {
		if t.running {
			t.pauseLocked(now)
		}
		t.entries = nil
		t.accumulated = newDuration
		t.persistEntries()
		t.persistAccumulated(now)
		t.notify()
		return
	}

	start, end, _ := report.Range(p, now, t.currentSettings().WeekStartDay)
	t.clearRangeLocked(start, end)
	if newDuration > 0 {
		t.entries = append(t.entries, models.NewEntry(start, start.Add(newDuration)))
	}
	t.persistEntries()
	t.notify()
}

// ResetPeriod deletes the period's entries. Total and last week clear the
// whole ledger; a running session inside the cleared range is finalized
// first and removed with it.
func (t *Tracker) ResetPeriod(p models.Period) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()

	if p == models.Total || p == models.LastWeek {
		if t.running {
			t.pauseLocked(now)
		}
		t.entries = nil
		if p == models.Total {
			t.accumulated = 0
			t.persistAccumulated(now)
		}
		t.persistEntries()
		t.notify()
		return
	}

	start, end, _ := report.Range(p, now, t.currentSettings().WeekStartDay)
	t.clearRangeLocked(start, end)
	t.persistEntries()
	t.notify()
}

// AdjustPeriod nudges a period's total to newDuration by appending a single
// correction entry at now, keeping the existing entries intact. A negative
// delta produces an entry that ends before it starts, which sums as a
// negative duration. Deltas under a second are ignored.
func (t *Tracker) AdjustPeriod(p models.Period, newDuration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()
	weekStartDay := t.currentSettings().WeekStartDay

	current := report.TotalDuration(p, t.entries, t.session(), now, weekStartDay)
	delta := newDuration - current
	if delta > -time.Second && delta < time.Second {
		return
	}

	// Anchored at now so it lands inside any period containing now. A
	// negative delta makes the entry end before it starts; its duration
	// sums as delta either way.
	t.entries = append(t.entries, models.NewEntry(now, now.Add(delta)))
	t.persistEntries()
	t.notify()
}

// clearRangeLocked finalizes a session running inside [start, end) and then
// drops every entry starting in that range.
func (t *Tracker) clearRangeLocked(start, end time.Time) {
	if t.running && report.InRange(t.sessionStart, start, end) {
		t.pauseLocked(t.clock.Now())
	}
	kept := t.entries[:0]
	for _, e := range t.entries {
		if !report.InRange(e.StartDate, start, end) {
			kept = append(kept, e)
		}
	}
	t.entries = kept
}
