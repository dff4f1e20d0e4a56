// Package logging builds the zerolog loggers used by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
}

// ParseLevel maps a level name to a zerolog level. Unknown names mean info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "OFF", "DISABLED":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a human-readable logger writing to w.
func New(w io.Writer, level string, color bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Open returns a logger appending to the file at path, creating parent
// directories as needed. An empty path yields a disabled logger and a no-op
// closer.
func Open(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return New(f, level, false), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
