package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"off", zerolog.Disabled},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := New(&buf, "warn", false)

	log.Info().Msg("quiet")
	log.Warn().Str("file", "a.vcd").Msg("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info message should be filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "file=a.vcd") {
		t.Errorf("warn message missing:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("NoColor output contains escape codes:\n%s", out)
	}
}

func TestOpenWritesFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "vcdscope.log")

	log, closer, err := Open(path, "debug")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Debug().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestOpenEmptyPathDisabled(t *testing.T) {
	t.Parallel()

	log, closer, err := Open("", "debug")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", log.GetLevel())
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
