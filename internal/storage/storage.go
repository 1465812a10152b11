package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adibhanna/worktime/internal/models"
)

// Keys the tracker persists under. The store itself is schema-free.
const (
	KeyTimeEntries               = "timeEntries"
	KeyCurrentSessionStart       = "currentSessionStart"
	KeyIsRunning                 = "isRunning"
	KeyTotalAccumulatedTime      = "totalAccumulatedTime"
	KeyLastAccumulatedTimeUpdate = "lastAccumulatedTimeUpdate"
)

// Store is a flat key/value file store. All values live in one JSON document
// that is read and rewritten whole on every mutation.
type Store struct {
	dataDir string
	logger  *slog.Logger
}

func New(logger *slog.Logger) (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewAt(filepath.Join(homeDir, ".worktime"), logger)
}

func NewAt(dataDir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dataDir: dataDir, logger: logger}, nil
}

func (s *Store) dataFile() string {
	return filepath.Join(s.dataDir, "data.json")
}

func (s *Store) settingsFile() string {
	return filepath.Join(s.dataDir, "settings.json")
}

func (s *Store) load() map[string]json.RawMessage {
	data, err := os.ReadFile(s.dataFile())
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read store", "err", err)
		}
		return map[string]json.RawMessage{}
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		s.logger.Warn("store file unreadable, starting empty", "err", err)
		return map[string]json.RawMessage{}
	}
	return values
}

func (s *Store) save(values map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.dataFile() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.dataFile())
}

// Get unmarshals the value stored under key into v. A missing key or a value
// that no longer parses both report absent; the bad record is dropped rather
// than aborting the caller.
func (s *Store) Get(key string, v any) bool {
	raw, ok := s.load()[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.logger.Warn("discarding unreadable record", "key", key, "err", err)
		return false
	}
	return true
}

func (s *Store) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	values := s.load()
	values[key] = raw
	return s.save(values)
}

func (s *Store) Remove(key string) error {
	values := s.load()
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *Store) GetSettings() (models.Settings, error) {
	data, err := os.ReadFile(s.settingsFile())
	if err != nil {
		if os.IsNotExist(err) {
			settings := models.DefaultSettings()
			if err := s.SaveSettings(settings); err != nil {
				return settings, err
			}
			return settings, nil
		}
		return models.DefaultSettings(), err
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Warn("settings unreadable, using defaults", "err", err)
		return models.DefaultSettings(), nil
	}
	if settings.WeekStartDay < 1 || settings.WeekStartDay > 7 {
		settings.WeekStartDay = models.DefaultSettings().WeekStartDay
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.settingsFile(), data, 0644)
}

func (s *Store) IsFirstTime() bool {
	if _, err := os.Stat(s.settingsFile()); os.IsNotExist(err) {
		return true
	}
	return false
}

func (s *Store) ResetAllData() error {
	if err := os.Remove(s.dataFile()); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(s.settingsFile()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
