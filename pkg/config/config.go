package config

import (
	"time"

	"github.com/sdejongh/dirstamp/pkg/models"
	"github.com/sdejongh/dirstamp/pkg/storage"
)

// Config represents the application configuration
type Config struct {
	Stamp   StampConfig   `yaml:"stamp"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Exclude []string      `yaml:"exclude"`
}

// StampConfig holds reconciliation settings
type StampConfig struct {
	Tolerance time.Duration `yaml:"tolerance"` // Differences up to this are ignored
	Backend   string        `yaml:"backend"`   // "os" or "billy"
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format    string `yaml:"format"`     // "human" or "json"
	ShowDates bool   `yaml:"show_dates"` // Show from/to timestamps per change
	Progress  bool   `yaml:"progress"`   // Show a progress counter on stderr
	Quiet     bool   `yaml:"quiet"`      // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = no file log)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Stamp: StampConfig{
			Tolerance: models.DefaultTolerance,
			Backend:   storage.KindOS,
		},
		Output: OutputConfig{
			Format: "human",
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Stamp.Tolerance < 0 {
		return &models.ValidationError{
			Field:   "stamp.tolerance",
			Message: "must not be negative",
		}
	}

	validBackends := map[string]bool{storage.KindOS: true, storage.KindBilly: true}
	if !validBackends[c.Stamp.Backend] {
		return &models.ValidationError{
			Field:   "stamp.backend",
			Message: "must be 'os' or 'billy'",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
