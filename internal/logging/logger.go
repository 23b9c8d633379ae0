// Package logging wraps zap with the small configuration surface the
// springbok pipeline needs. Components accept a *Logger and treat nil as
// a no-op logger, so the core packages stay silent under test.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with convenience constructors.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
}

// DefaultConfig returns the production logger configuration.
func DefaultConfig() Config {
	return Config{Level: "info"}
}

// New creates a logger with the provided configuration.
func New(cfg Config) (*Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// NewDefault creates a logger with default configuration, falling back to
// a no-op logger if construction fails.
func NewDefault() *Logger {
	logger, err := New(DefaultConfig())
	if err != nil {
		return NewNop()
	}
	return logger
}

// NewNop returns a logger that discards all output.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// OrNop returns the given logger, or a no-op logger when nil. Core
// components call this so callers may pass nil.
func OrNop(logger *Logger) *Logger {
	if logger == nil {
		return NewNop()
	}
	return logger
}
