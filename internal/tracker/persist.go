package tracker

import (
	"time"

	"github.com/adibhanna/worktime/internal/storage"
)

// Persistence is best-effort: a failed write leaves the in-memory state as
// the source of truth for the rest of the process.

func (t *Tracker) persistEntries() {
	if err := t.store.Set(storage.KeyTimeEntries, t.entries); err != nil {
		t.logger.Warn("persist entries", "err", err)
	}
}

func (t *Tracker) persistSession() {
	if t.running {
		if err := t.store.Set(storage.KeyCurrentSessionStart, t.sessionStart); err != nil {
			t.logger.Warn("persist session start", "err", err)
		}
		if err := t.store.Set(storage.KeyIsRunning, true); err != nil {
			t.logger.Warn("persist running flag", "err", err)
		}
		return
	}
	if err := t.store.Remove(storage.KeyCurrentSessionStart); err != nil {
		t.logger.Warn("clear session start", "err", err)
	}
	if err := t.store.Remove(storage.KeyIsRunning); err != nil {
		t.logger.Warn("clear running flag", "err", err)
	}
}

func (t *Tracker) persistAccumulated(now time.Time) {
	if err := t.store.Set(storage.KeyTotalAccumulatedTime, t.accumulated.Seconds()); err != nil {
		t.logger.Warn("persist accumulated time", "err", err)
	}
	if err := t.store.Set(storage.KeyLastAccumulatedTimeUpdate, now); err != nil {
		t.logger.Warn("persist accumulated timestamp", "err", err)
	}
}
