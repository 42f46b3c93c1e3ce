// Package logger builds the zerolog logger shared by the CLI and the server.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/tucano/internal/config"
)

// Configure builds a logger writing to stderr, leaving stdout to command output
func Configure(cfg config.LogConfig) zerolog.Logger {
	return New(os.Stderr, cfg)
}

// New builds a logger on w. JSON by default, human-readable when Format is console.
func New(w io.Writer, cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	output := w
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("service", "tucano").
		Logger()
}
