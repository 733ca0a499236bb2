package config

import "fmt"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"LOG_FORMAT"` // json, console
	File   string `yaml:"file" env:"LOG_FILE"`     // empty means stderr
}

// Validate checks level and format names.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Level)
	}
	switch c.Format {
	case "", "json", "console", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Format)
	}
	return nil
}
