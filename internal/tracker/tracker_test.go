package tracker

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/worktime/internal/models"
	"github.com/adibhanna/worktime/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type memStore struct {
	values     map[string][]byte
	failWrites bool
}

func newMemStore() *memStore {
	return &memStore{values: map[string][]byte{}}
}

func (s *memStore) Get(key string, v any) bool {
	raw, ok := s.values[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (s *memStore) Set(key string, v any) error {
	if s.failWrites {
		return errors.New("disk full")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.values[key] = raw
	return nil
}

func (s *memStore) Remove(key string) error {
	if s.failWrites {
		return errors.New("disk full")
	}
	delete(s.values, key)
	return nil
}

type staticSettings struct {
	settings models.Settings
}

func (p staticSettings) GetSettings() (models.Settings, error) {
	return p.settings, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSettings() staticSettings {
	return staticSettings{settings: models.Settings{
		HourlyRate:      80,
		WeekStartDay:    2,
		Use24HourFormat: true,
	}}
}

func newTestTracker(t *testing.T, now time.Time) (*Tracker, *fakeClock, *memStore) {
	t.Helper()
	clock := &fakeClock{now: now}
	store := newMemStore()
	return New(clock, store, testSettings(), testLogger()), clock, store
}

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestStartPauseRecordsEntry(t *testing.T) {
	trk, clock, _ := newTestTracker(t, at(2025, time.March, 10, 9, 0))

	trk.Start()
	require.True(t, trk.IsRunning())

	clock.Advance(8 * time.Hour)
	trk.Pause()

	require.False(t, trk.IsRunning())
	entries := trk.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 8*time.Hour, entries[0].Duration(clock.Now()))
	assert.Equal(t, 8*time.Hour, trk.Accumulated())

	assert.InDelta(t, 8.0, trk.TotalHours(models.Today), 1e-9)
	assert.InDelta(t, 640.0, trk.Earnings(models.Today), 1e-9)
}

func TestPauseIsIdempotent(t *testing.T) {
	trk, clock, _ := newTestTracker(t, at(2025, time.March, 10, 9, 0))

	trk.Start()
	clock.Advance(time.Hour)
	trk.Pause()
	trk.Pause()

	assert.Len(t, trk.Entries(), 1)
	assert.Equal(t, time.Hour, trk.Accumulated())
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	trk, clock, _ := newTestTracker(t, at(2025, time.March, 10, 9, 0))

	trk.Start()
	clock.Advance(30 * time.Minute)
	trk.Start()
	trk.Tick()

	assert.Equal(t, 30*time.Minute, trk.Elapsed())
}

func TestTickWhileIdleIsNoOp(t *testing.T) {
	trk, clock, _ := newTestTracker(t, at(2025, time.March, 10, 9, 0))

	clock.Advance(time.Hour)
	trk.Tick()

	assert.False(t, trk.IsRunning())
	assert.Zero(t, trk.Elapsed())
	assert.Empty(t, trk.Entries())
}

func TestMidnightRolloverSplitsSession(t *testing.T) {
	start := at(2025, time.March, 10, 23, 0)
	trk, clock, _ := newTestTracker(t, start)

	trk.Start()
	clock.Advance(90 * time.Minute) // 00:30 next day
	trk.Tick()

	entries := trk.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, start, entries[0].StartDate)
	require.NotNil(t, entries[0].EndDate)

	midnight := at(2025, time.March, 11, 0, 0)
	assert.Equal(t, midnight, *entries[0].EndDate)
	assert.Equal(t, time.Hour, entries[0].Duration(clock.Now()))

	require.True(t, trk.IsRunning())
	assert.Equal(t, 30*time.Minute, trk.Elapsed())

	// Duration is conserved across the split.
	total := entries[0].Duration(clock.Now()) + trk.Elapsed()
	assert.Equal(t, clock.Now().Sub(start), total)

	// Accumulated time starts fresh for the new day.
	assert.Zero(t, trk.Accumulated())

	trk.Pause()
	assert.InDelta(t, 0.5, trk.TotalHours(models.Today), 1e-9)

	yesterday := trk.EntriesForDay(start)
	require.Len(t, yesterday, 1)
	assert.Equal(t, time.Hour, yesterday[0].Duration(clock.Now()))
}

func TestRolloverAfterMultipleDays(t *testing.T) {
	start := at(2025, time.March, 10, 22, 0)
	trk, clock, _ := newTestTracker(t, start)

	trk.Start()
	clock.Advance(28 * time.Hour) // 02:00 on March 12
	trk.Tick()

	entries := trk.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 2*time.Hour, entries[0].Duration(clock.Now()))
	assert.Equal(t, 24*time.Hour, entries[1].Duration(clock.Now()))
	assert.Equal(t, midnightOf(t, clock.Now()), *entries[1].EndDate)

	require.True(t, trk.IsRunning())
	assert.Equal(t, 2*time.Hour, trk.Elapsed())
}

func midnightOf(t *testing.T, tm time.Time) time.Time {
	t.Helper()
	return time.Date(tm.Year(), tm.Month(), tm.Day(), 0, 0, 0, 0, time.UTC)
}

func TestRecordAndRestart(t *testing.T) {
	trk, clock, _ := newTestTracker(t, at(2025, time.March, 10, 9, 0))

	trk.Start()
	clock.Advance(2 * time.Hour)
	trk.RecordAndRestart()

	entries := trk.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 2*time.Hour, entries[0].Duration(clock.Now()))
	assert.True(t, trk.IsRunning())
	assert.Zero(t, trk.Elapsed())
	assert.Zero(t, trk.Accumulated())
}

func TestResetDiscardsSession(t *testing.T) {
	trk, clock, _ := newTestTracker(t, at(2025, time.March, 10, 9, 0))

	trk.Start()
	clock.Advance(2 * time.Hour)
	trk.Reset()

	assert.False(t, trk.IsRunning())
	assert.Empty(t, trk.Entries())
	assert.Zero(t, trk.Accumulated())
}

func TestRehydrateRestoresLedgerAndSession(t *testing.T) {
	clock := &fakeClock{now: at(2025, time.March, 10, 9, 0)}
	store := newMemStore()

	trk := New(clock, store, testSettings(), testLogger())
	trk.Start()
	clock.Advance(time.Hour)
	trk.Pause()
	trk.Start()
	clock.Advance(30 * time.Minute)

	restored := New(clock, store, testSettings(), testLogger())
	assert.Len(t, restored.Entries(), 1)
	assert.Equal(t, time.Hour, restored.Accumulated())
	assert.True(t, restored.IsRunning())
	assert.Equal(t, 30*time.Minute, restored.Elapsed())
}

func TestRehydrateResetsAccumulatedOnNewDay(t *testing.T) {
	clock := &fakeClock{now: at(2025, time.March, 10, 15, 0)}
	store := newMemStore()

	trk := New(clock, store, testSettings(), testLogger())
	trk.Start()
	clock.Advance(time.Hour)
	trk.Pause()
	require.Equal(t, time.Hour, trk.Accumulated())

	// Next morning the accumulated total belongs to yesterday.
	clock.Advance(18 * time.Hour)
	restored := New(clock, store, testSettings(), testLogger())
	assert.Zero(t, restored.Accumulated())
	assert.Len(t, restored.Entries(), 1)
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	clock := &fakeClock{now: at(2025, time.March, 10, 9, 0)}
	store := newMemStore()
	store.failWrites = true

	trk := New(clock, store, testSettings(), testLogger())
	trk.Start()
	clock.Advance(time.Hour)
	trk.Pause()

	assert.Len(t, trk.Entries(), 1)
	assert.Equal(t, time.Hour, trk.Accumulated())
}

func TestRehydrateDiscardsMalformedEntries(t *testing.T) {
	clock := &fakeClock{now: at(2025, time.March, 10, 9, 0)}
	store := newMemStore()
	store.values[storage.KeyTimeEntries] = []byte(`{"not":"a list"}`)
	store.values[storage.KeyTotalAccumulatedTime] = []byte(`"garbage"`)

	trk := New(clock, store, testSettings(), testLogger())
	assert.Empty(t, trk.Entries())
	assert.Zero(t, trk.Accumulated())
	assert.False(t, trk.IsRunning())
}

func TestActiveEntryIsSynthesized(t *testing.T) {
	trk, clock, _ := newTestTracker(t, at(2025, time.March, 10, 9, 0))

	assert.Nil(t, trk.ActiveEntry())

	trk.Start()
	clock.Advance(time.Minute)

	active := trk.ActiveEntry()
	require.NotNil(t, active)
	assert.True(t, active.IsActive)
	assert.Nil(t, active.EndDate)
	assert.Empty(t, trk.Entries(), "active session never joins the ledger")
}

func TestOnChangeFiresAfterMutations(t *testing.T) {
	trk, clock, _ := newTestTracker(t, at(2025, time.March, 10, 9, 0))

	var calls int
	trk.SetOnChange(func() { calls++ })

	trk.Start()
	clock.Advance(time.Hour)
	trk.Tick()
	trk.Pause()

	assert.Equal(t, 3, calls)
}
