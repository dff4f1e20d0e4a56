package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/papapumpkin/vcdscope/internal/session"
	"github.com/papapumpkin/vcdscope/internal/vcd"
	"github.com/papapumpkin/vcdscope/internal/watch"
)

// loadTraceCmd parses path off the event loop. When store is non-nil the
// saved session for path is fetched alongside.
func loadTraceCmd(path string, store *session.Store, logger zerolog.Logger, dumpValues bool) tea.Cmd {
	return func() tea.Msg {
		var diags []vcd.Diagnostic
		tr, err := vcd.ParseFile(path,
			vcd.WithLogger(logger),
			vcd.WithDiagnostics(func(d vcd.Diagnostic) { diags = append(diags, d) }),
			vcd.WithDumpValues(dumpValues),
		)
		if err != nil {
			return MsgLoadFailed{Path: path, Err: err}
		}

		msg := MsgTraceLoaded{Path: path, Trace: tr, Diagnostics: diags}
		if store == nil {
			return msg
		}
		st, err := store.Load(context.Background(), path)
		switch {
		case err == nil:
			msg.Saved = &st
		case !errors.Is(err, session.ErrNotFound):
			logger.Warn().Err(err).Str("path", path).Msg("tui: session load failed")
		}
		return msg
	}
}

// waitForChange blocks until the watcher reports a change.
func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-w.Changes
		if !ok {
			return MsgWatchClosed{}
		}
		return MsgFileChanged{Change: change}
	}
}
