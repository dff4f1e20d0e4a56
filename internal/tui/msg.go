package tui

import (
	"github.com/papapumpkin/vcdscope/internal/session"
	"github.com/papapumpkin/vcdscope/internal/trace"
	"github.com/papapumpkin/vcdscope/internal/vcd"
	"github.com/papapumpkin/vcdscope/internal/watch"
)

// Trace lifecycle messages, produced by the load command off the event loop.

// MsgTraceLoaded carries a freshly parsed trace. Saved is the stored session
// for the file, nil when none was found or none was requested.
type MsgTraceLoaded struct {
	Path        string
	Trace       *trace.Trace
	Diagnostics []vcd.Diagnostic
	Saved       *session.State
}

// MsgLoadFailed is sent when a load could not produce a trace.
type MsgLoadFailed struct {
	Path string
	Err  error
}

// MsgFileChanged is sent when the watcher reports the trace file changed.
type MsgFileChanged struct {
	Change watch.Change
}

// MsgWatchClosed is sent once the watcher's channel is closed.
type MsgWatchClosed struct{}

// MsgSessionSaved reports the result of a background session save.
type MsgSessionSaved struct {
	Err error
}

// MsgError is sent for error messages.
type MsgError struct {
	Msg string
}

// MsgInfo is sent for informational messages.
type MsgInfo struct {
	Msg string
}
