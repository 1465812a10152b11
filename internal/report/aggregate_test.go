package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/worktime/internal/models"
)

func entry(start time.Time, d time.Duration) models.TimeEntry {
	return models.NewEntry(start, start.Add(d))
}

func TestTotalDurationSumsEntriesInPeriod(t *testing.T) {
	now := at(2025, time.March, 12, 18, 0)
	entries := []models.TimeEntry{
		entry(at(2025, time.March, 12, 9, 0), 2*time.Hour),
		entry(at(2025, time.March, 12, 13, 0), 3*time.Hour),
		entry(at(2025, time.March, 11, 9, 0), 4*time.Hour), // yesterday
	}

	total := TotalDuration(models.Today, entries, Session{}, now, 2)
	assert.Equal(t, 5*time.Hour, total)

	week := TotalDuration(models.ThisWeek, entries, Session{}, now, 2)
	assert.Equal(t, 9*time.Hour, week)
}

func TestTotalDurationIsOrderIndependent(t *testing.T) {
	now := at(2025, time.March, 12, 18, 0)
	a := entry(at(2025, time.March, 12, 9, 0), 90*time.Minute)
	b := entry(at(2025, time.March, 12, 11, 0), time.Hour)
	c := entry(at(2025, time.March, 12, 14, 0), 15*time.Minute)

	forward := TotalDuration(models.Today, []models.TimeEntry{a, b, c}, Session{}, now, 2)
	reversed := TotalDuration(models.Today, []models.TimeEntry{c, b, a}, Session{}, now, 2)

	assert.Equal(t, forward, reversed)
	assert.Equal(t, 165*time.Minute, forward)
}

func TestTotalDurationIncludesNegativeAdjustments(t *testing.T) {
	now := at(2025, time.March, 12, 18, 0)
	entries := []models.TimeEntry{
		entry(at(2025, time.March, 12, 9, 0), 8*time.Hour),
		entry(now, -30*time.Minute), // ends before it starts
	}
	require.Negative(t, entries[1].Duration(now))

	total := TotalDuration(models.Today, entries, Session{}, now, 2)
	assert.Equal(t, 8*time.Hour-30*time.Minute, total)
}

func TestTotalDurationAddsLiveSessionInsidePeriod(t *testing.T) {
	now := at(2025, time.March, 12, 18, 0)
	session := Session{Running: true, Start: at(2025, time.March, 12, 17, 0)}

	total := TotalDuration(models.Today, nil, session, now, 2)
	assert.Equal(t, time.Hour, total)
}

func TestTotalDurationSkipsLiveSessionOutsidePeriod(t *testing.T) {
	// Session started last week; today's total must not include it.
	now := at(2025, time.March, 12, 18, 0)
	session := Session{Running: true, Start: at(2025, time.March, 5, 17, 0)}

	total := TotalDuration(models.Today, nil, session, now, 2)
	assert.Zero(t, total)

	all := TotalDuration(models.Total, nil, session, now, 2)
	assert.Equal(t, 7*24*time.Hour+time.Hour, all)
}

func TestTotalFallsBackToAccumulatedWhenLedgerEmpty(t *testing.T) {
	now := at(2025, time.March, 12, 18, 0)
	session := Session{Accumulated: 100 * time.Hour}

	assert.Equal(t, 100*time.Hour, TotalDuration(models.Total, nil, session, now, 2))
	assert.InDelta(t, 100.0, TotalHours(models.Total, nil, session, now, 2), 1e-9)

	// With entries present the ledger wins.
	entries := []models.TimeEntry{entry(at(2025, time.March, 12, 9, 0), time.Hour)}
	assert.Equal(t, time.Hour, TotalDuration(models.Total, entries, session, now, 2))
}

func TestEarnings(t *testing.T) {
	now := at(2025, time.March, 12, 18, 0)
	entries := []models.TimeEntry{entry(at(2025, time.March, 12, 9, 0), 8*time.Hour)}
	settings := models.Settings{HourlyRate: 80, WeekStartDay: 2}

	assert.InDelta(t, 640.0, Earnings(models.Today, entries, Session{}, now, settings), 1e-9)
}

func TestIsDayManuallyEdited(t *testing.T) {
	day := at(2025, time.March, 12, 0, 0)

	edited := []models.TimeEntry{entry(day, 5*time.Hour)}
	assert.True(t, IsDayManuallyEdited(edited, day.Add(15*time.Hour)))

	notAtMidnight := []models.TimeEntry{entry(day.Add(9*time.Hour), 5*time.Hour)}
	assert.False(t, IsDayManuallyEdited(notAtMidnight, day))

	twoEntries := []models.TimeEntry{entry(day, time.Hour), entry(day.Add(12*time.Hour), time.Hour)}
	assert.False(t, IsDayManuallyEdited(twoEntries, day))

	assert.False(t, IsDayManuallyEdited(nil, day))
}
