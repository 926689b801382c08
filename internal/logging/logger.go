package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	Output     io.Writer
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.TimeOnly,
		Output:     os.Stderr,
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// ConfigFromEnv applies environment overrides to the defaults
// CORNERPEEK_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// CORNERPEEK_LOG_FORMAT: json, console (default: console)
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("CORNERPEEK_LOG_LEVEL"))); err == nil && level != zerolog.NoLevel {
		cfg.Level = level
	}

	switch format := os.Getenv("CORNERPEEK_LOG_FORMAT"); format {
	case "json", "console":
		cfg.Format = format
	}

	return cfg
}

// Setup builds the process logger and installs it as the zerolog global,
// which the platform package logs through.
func Setup(cfg Config) zerolog.Logger {
	logger := New(cfg)
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return logger
}
