package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/papapumpkin/vcdscope/internal/config"
	"github.com/papapumpkin/vcdscope/internal/logging"
	"github.com/papapumpkin/vcdscope/internal/session"
	"github.com/papapumpkin/vcdscope/internal/timeview"
	"github.com/papapumpkin/vcdscope/internal/trace"
	"github.com/papapumpkin/vcdscope/internal/vcd"
)

// isStderrTTY reports whether stderr is attached to a terminal. Tests swap
// it out to keep the viewer from starting.
var isStderrTTY = func() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// cliLogger returns the stderr logger used by the non-interactive commands.
// Verbose output lowers the level to debug.
func cliLogger(cfg config.Config) zerolog.Logger {
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	return logging.New(os.Stderr, level, isStderrTTY())
}

// loadedTrace is a parsed file together with a view configured for its
// timescale.
type loadedTrace struct {
	Path        string
	Trace       *trace.Trace
	View        *timeview.View
	Diagnostics []vcd.Diagnostic
}

// loadTrace parses the file at path and prepares a view for formatting its
// times. The returned Path is absolute, which is how sessions are keyed.
func loadTrace(path string, cfg config.Config, logger zerolog.Logger) (*loadedTrace, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	lt := &loadedTrace{Path: abs}
	lt.Trace, err = vcd.ParseFile(abs,
		vcd.WithLogger(logger),
		vcd.WithDiagnostics(func(d vcd.Diagnostic) { lt.Diagnostics = append(lt.Diagnostics, d) }),
		vcd.WithDumpValues(cfg.DumpValues),
	)
	if err != nil {
		return nil, err
	}

	lt.View = timeview.New(cfg.Margin, cfg.RightPad)
	if err := lt.View.SetTimescale(lt.Trace.Timescale); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := lt.View.SetTimeBase(cfg.TimeBase); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lt, nil
}

// openStore opens the configured session store. A nil store with a nil
// error means persistence is disabled.
func openStore(ctx context.Context, cfg config.Config) (*session.Store, error) {
	path, err := cfg.SessionPath()
	if err != nil || path == "" {
		return nil, err
	}
	store, err := session.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	return store, nil
}
