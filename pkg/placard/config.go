package placard

import (
	"errors"
	"os"
	"strconv"
)

// Config contains the tunables of the generator. Values come from the
// environment (PLACARD_* variables); the CLI loads a .env file first so
// deployments can keep them next to the data folders.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error, off).
	LogLevel string
	// MaxFieldLength is the longest replacement value passed to the
	// substitution engine. Longer values are truncated by the generator
	// before substitution; the engine itself never truncates.
	MaxFieldLength int
	// MaxRecords caps the number of rows accepted for a single shipment.
	MaxRecords int
	// Workers bounds parallel shipment rendering in batch mode.
	// 0 means derive from GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		MaxFieldLength: 1000,
		MaxRecords:     10000,
		Workers:        0,
	}
}

// ConfigFromEnvironment creates a configuration from environment
// variables, falling back to defaults for anything unset or malformed.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("PLACARD_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	if val := os.Getenv("PLACARD_MAX_FIELD_LENGTH"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxFieldLength = n
		}
	}

	if val := os.Getenv("PLACARD_MAX_RECORDS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxRecords = n
		}
	}

	if val := os.Getenv("PLACARD_WORKERS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.Workers = n
		}
	}

	return config
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MaxFieldLength <= 0 {
		return errors.New("max field length must be positive")
	}

	if c.MaxRecords <= 0 {
		return errors.New("max records must be positive")
	}

	if c.Workers < 0 {
		return errors.New("workers cannot be negative")
	}

	return nil
}
