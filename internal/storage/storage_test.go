package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/worktime/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewAt(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	start := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	entries := []models.TimeEntry{{ID: "abc", StartDate: start, EndDate: &end}}

	require.NoError(t, store.Set(KeyTimeEntries, entries))
	require.NoError(t, store.Set(KeyIsRunning, true))
	require.NoError(t, store.Set(KeyTotalAccumulatedTime, 3600.0))

	var got []models.TimeEntry
	require.True(t, store.Get(KeyTimeEntries, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].ID)
	assert.True(t, got[0].StartDate.Equal(start))
	require.NotNil(t, got[0].EndDate)
	assert.True(t, got[0].EndDate.Equal(end))

	var running bool
	require.True(t, store.Get(KeyIsRunning, &running))
	assert.True(t, running)

	var seconds float64
	require.True(t, store.Get(KeyTotalAccumulatedTime, &seconds))
	assert.Equal(t, 3600.0, seconds)
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	var v string
	assert.False(t, store.Get("nope", &v))
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(KeyIsRunning, true))
	require.NoError(t, store.Remove(KeyIsRunning))

	var running bool
	assert.False(t, store.Get(KeyIsRunning, &running))

	// Removing an absent key is fine.
	assert.NoError(t, store.Remove(KeyIsRunning))
}

func TestUnreadableValueReportsAbsent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(KeyCurrentSessionStart, "not a timestamp"))

	var start time.Time
	assert.False(t, store.Get(KeyCurrentSessionStart, &start))
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAt(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.json"), []byte("{{{"), 0644))

	var v bool
	assert.False(t, store.Get(KeyIsRunning, &v))

	// Writes still work afterwards.
	require.NoError(t, store.Set(KeyIsRunning, true))
	assert.True(t, store.Get(KeyIsRunning, &v))
}

func TestSettingsDefaultsOnFirstRun(t *testing.T) {
	store := newTestStore(t)

	assert.True(t, store.IsFirstTime())

	settings, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)

	assert.False(t, store.IsFirstTime(), "defaults are written on first read")
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := models.Settings{HourlyRate: 120, WeekStartDay: 1, Use24HourFormat: false}
	require.NoError(t, store.SaveSettings(want))

	got, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsClampInvalidWeekStart(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveSettings(models.Settings{HourlyRate: 50, WeekStartDay: 9}))

	got, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings().WeekStartDay, got.WeekStartDay)
}

func TestResetAllData(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(KeyIsRunning, true))
	require.NoError(t, store.SaveSettings(models.DefaultSettings()))
	require.NoError(t, store.ResetAllData())

	var running bool
	assert.False(t, store.Get(KeyIsRunning, &running))
	assert.True(t, store.IsFirstTime())
}
