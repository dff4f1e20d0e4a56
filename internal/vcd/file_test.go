package vcd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rs/zerolog"
)

func TestParseReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")
	_, err := Parse(iotest.ErrReader(boom))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T: %v", err, err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("IOError does not wrap cause: %v", err)
	}
}

func TestParseInternalFailure(t *testing.T) {
	t.Parallel()

	tr, err := Parse(panicReader{})
	var pErr *ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if tr != nil {
		t.Error("expected nil trace on internal failure")
	}
	if !strings.Contains(err.Error(), "reader exploded") {
		t.Errorf("error lacks cause: %v", err)
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "counter.vcd")
	if err := os.WriteFile(path, []byte(counterVCD), 0o644); err != nil {
		t.Fatal(err)
	}

	tr, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if tr.SignalCount() != 2 {
		t.Errorf("SignalCount = %d, want 2", tr.SignalCount())
	}

	_, err = ParseFile(filepath.Join(dir, "missing.vcd"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError for missing file, got %T", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain: %v", err)
	}
	if !strings.Contains(err.Error(), "missing.vcd") {
		t.Errorf("error does not name the path: %v", err)
	}
}

func TestParseLogsSkippedLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	mustParse(t, "$enddefinitions $end\n1?\n", WithLogger(logger))

	out := buf.String()
	if !strings.Contains(out, `"kind":"unknown identifier"`) {
		t.Errorf("expected skipped-line log entry, got: %s", out)
	}
	if !strings.Contains(out, "parse complete") {
		t.Errorf("expected completion log entry, got: %s", out)
	}
}
