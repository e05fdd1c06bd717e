// Package logging builds the JSON line logger shared by both apps.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimestampFieldName = "ts"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
}

// New returns a zerolog logger writing one JSON object per line to w
// (stdout when w is nil). Every entry carries ts, level and service.
func New(service, level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// Nop returns a logger that discards everything, for tests and defaults.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
