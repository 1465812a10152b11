package app

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application. User preferences
// (rate, week start, clock format) live in the settings file instead.
type Config struct {
	DataDir   string `envconfig:"WORKTIME_DATA_DIR" default:""`
	LogFormat string `envconfig:"WORKTIME_LOG_FORMAT" default:"text"`
	LogFile   string `envconfig:"WORKTIME_LOG_FILE" default:""`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
