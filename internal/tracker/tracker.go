package tracker

import (
	"log/slog"
	"sync"
	"time"

	"github.com/adibhanna/worktime/internal/models"
	"github.com/adibhanna/worktime/internal/report"
	"github.com/adibhanna/worktime/internal/storage"
)

// Store is the flat key/value persistence the tracker writes through.
// Writes are best-effort; the in-memory state stays authoritative when a
// write fails.
type Store interface {
	Get(key string, v any) bool
	Set(key string, v any) error
	Remove(key string) error
}

// SettingsProvider supplies the user preferences aggregation depends on.
type SettingsProvider interface {
	GetSettings() (models.Settings, error)
}

// Tracker owns the session state machine and the entry ledger. All mutations
// are serialized behind one mutex; there is exactly one Tracker per process.
type Tracker struct {
	mu       sync.Mutex
	clock    Clock
	store    Store
	settings SettingsProvider
	logger   *slog.Logger
	onChange func()

	entries      []models.TimeEntry
	running      bool
	sessionStart time.Time
	elapsed      time.Duration
	accumulated  time.Duration
}

func New(clock Clock, store Store, settings SettingsProvider, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		clock:    clock,
		store:    store,
		settings: settings,
		logger:   logger,
	}
	t.rehydrate()
	return t
}

// rehydrate restores persisted state at startup, dropping anything that no
// longer parses, and zeroes the accumulated time when its last update was on
// an earlier day (the live rollover only fires while ticking).
func (t *Tracker) rehydrate() {
	now := t.clock.Now()

	t.store.Get(storage.KeyTimeEntries, &t.entries)

	var running bool
	var start time.Time
	if t.store.Get(storage.KeyIsRunning, &running) && running &&
		t.store.Get(storage.KeyCurrentSessionStart, &start) && !start.IsZero() {
		t.running = true
		t.sessionStart = start
		t.elapsed = now.Sub(start)
	}

	var seconds float64
	if t.store.Get(storage.KeyTotalAccumulatedTime, &seconds) {
		t.accumulated = time.Duration(seconds * float64(time.Second))
	}

	var lastUpdate time.Time
	if t.store.Get(storage.KeyLastAccumulatedTimeUpdate, &lastUpdate) && !lastUpdate.IsZero() {
		if report.StartOfDay(lastUpdate).Before(report.StartOfDay(now)) {
			t.accumulated = 0
			t.persistAccumulated(now)
		}
	}
}

// SetOnChange registers a callback invoked after every mutating command, so
// a UI can re-query without the tracker knowing how it renders. The callback
// runs with the tracker lock held and must not call back into the tracker;
// post a message to your own loop instead.
func (t *Tracker) SetOnChange(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

func (t *Tracker) notify() {
	if t.onChange != nil {
		t.onChange()
	}
}

// Start begins a new session. A no-op while already running.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.startLocked(t.clock.Now())
	t.notify()
}

func (t *Tracker) startLocked(now time.Time) {
	t.running = true
	t.sessionStart = now
	t.elapsed = 0
	t.persistSession()
}

// Pause finalizes the running session into a ledger entry. A no-op while
// idle.
func (t *Tracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.pauseLocked(t.clock.Now())
	t.notify()
}

func (t *Tracker) pauseLocked(now time.Time) {
	t.accumulated += now.Sub(t.sessionStart)
	t.entries = append(t.entries, models.NewEntry(t.sessionStart, now))
	t.running = false
	t.sessionStart = time.Time{}
	t.elapsed = 0
	t.persistEntries()
	t.persistAccumulated(now)
	t.persistSession()
}

// RecordAndRestart stores the running session, clears the accumulated time,
// and immediately starts a fresh session.
func (t *Tracker) RecordAndRestart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()
	if t.running {
		t.pauseLocked(now)
	}
	t.accumulated = 0
	t.persistAccumulated(now)
	t.startLocked(now)
	t.notify()
}

// Reset discards the in-progress session and the accumulated time without
// writing a ledger entry.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.sessionStart = time.Time{}
	t.elapsed = 0
	t.accumulated = 0
	t.persistSession()
	t.persistAccumulated(t.clock.Now())
	t.notify()
}

// Tick refreshes the live elapsed time and splits the session at midnight
// when it has crossed a day boundary. Meant to run about once per second
// while tracking; does nothing while idle.
func (t *Tracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	now := t.clock.Now()
	t.elapsed = now.Sub(t.sessionStart)

	// Split once per crossed boundary so no ledger entry ever straddles a
	// day. The session itself keeps running from midnight.
	for report.StartOfDay(t.sessionStart).Before(report.StartOfDay(now)) {
		midnight := report.StartOfDay(t.sessionStart).AddDate(0, 0, 1)
		t.entries = append(t.entries, models.NewEntry(t.sessionStart, midnight))
		t.accumulated += midnight.Sub(t.sessionStart)
		t.persistEntries()
		t.persistAccumulated(now)

		t.sessionStart = midnight
		t.elapsed = now.Sub(midnight)
		t.accumulated = 0
		t.persistAccumulated(now)
		t.persistSession()
	}
	t.notify()
}

// Flush writes the current state through to the store. Called at shutdown.
func (t *Tracker) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.persistEntries()
	t.persistSession()
	t.persistAccumulated(t.clock.Now())
}

func (t *Tracker) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

func (t *Tracker) Accumulated() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.accumulated
}

// CurrentElapsedDisplay renders the live session clock.
func (t *Tracker) CurrentElapsedDisplay() string {
	return report.FormatDuration(t.Elapsed())
}

// ActiveEntry synthesizes the in-progress session as an entry, or nil while
// idle. It is never part of the ledger.
func (t *Tracker) ActiveEntry() *models.TimeEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return nil
	}
	return &models.TimeEntry{
		ID:        "current-session",
		StartDate: t.sessionStart,
		IsActive:  true,
	}
}

// Entries returns a copy of the ledger.
func (t *Tracker) Entries() []models.TimeEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.TimeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Tracker) session() report.Session {
	return report.Session{
		Running:     t.running,
		Start:       t.sessionStart,
		Accumulated: t.accumulated,
	}
}

func (t *Tracker) currentSettings() models.Settings {
	settings, err := t.settings.GetSettings()
	if err != nil {
		t.logger.Warn("load settings", "err", err)
	}
	return settings
}

// TotalHours aggregates the period's entries plus the live session into
// fractional hours.
func (t *Tracker) TotalHours(p models.Period) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	settings := t.currentSettings()
	return report.TotalHours(p, t.entries, t.session(), t.clock.Now(), settings.WeekStartDay)
}

// Earnings is the period's hours times the configured hourly rate.
func (t *Tracker) Earnings(p models.Period) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	settings := t.currentSettings()
	return report.Earnings(p, t.entries, t.session(), t.clock.Now(), settings)
}

// FormattedDuration renders the period total as HH:MM:SS.
func (t *Tracker) FormattedDuration(p models.Period) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	settings := t.currentSettings()
	d := report.TotalDuration(p, t.entries, t.session(), t.clock.Now(), settings.WeekStartDay)
	return report.FormatDuration(d)
}
