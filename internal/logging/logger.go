// Package logging builds the zap loggers used across uncreator.
// Every component logs through a named child of one root logger, so the
// category shows up as the "logger" field in each entry.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"uncreator/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config resolution
	CategorySubs     Category = "subs"     // Substitution table loading
	CategoryDispatch Category = "dispatch" // Record fan-out and join
	CategorySink     Category = "sink"     // Output file
)

// ParseLevel maps a config level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", config.ErrInvalidLogLevel, level)
	}
}

// New builds the root logger. verbose forces debug level regardless of cfg.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	switch cfg.Format {
	case "json":
	case "", "console", "text":
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidLogFormat, cfg.Format)
	}
	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// For returns the named child logger for a category. A nil parent yields a
// no-op logger so library code never has to nil-check.
func For(parent *zap.Logger, category Category) *zap.Logger {
	if parent == nil {
		return zap.NewNop()
	}
	return parent.Named(string(category))
}
