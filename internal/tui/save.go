package tui

import (
	"context"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/vcdscope/internal/session"
	"github.com/papapumpkin/vcdscope/internal/trace"
)

// sessionWriter orders the session saves of one viewer. Each captured state
// is numbered; a write older than one already committed is dropped, so a
// slow background save never lands on top of a newer state.
type sessionWriter struct {
	store *session.Store
	path  string

	seq     atomic.Uint64 // last number handed out
	mu      sync.Mutex    // held across a write
	written uint64        // newest number committed
}

func newSessionWriter(store *session.Store, path string) *sessionWriter {
	if store == nil {
		return nil
	}
	return &sessionWriter{store: store, path: path}
}

// capture copies the persistent state of tr and numbers it.
func (w *sessionWriter) capture(tr *trace.Trace) (uint64, session.State) {
	return w.seq.Add(1), session.Capture(tr)
}

// write commits st unless a newer capture is already stored. stale reports
// a dropped write.
func (w *sessionWriter) write(ctx context.Context, seq uint64, st session.State) (stale bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq <= w.written {
		return true, nil
	}
	w.written = seq
	return false, w.store.Save(ctx, w.path, st)
}

// saveCmd captures tr now and writes it off the event loop.
func (w *sessionWriter) saveCmd(tr *trace.Trace) tea.Cmd {
	seq, st := w.capture(tr)
	return func() tea.Msg {
		_, err := w.write(context.Background(), seq, st)
		return MsgSessionSaved{Err: err}
	}
}

// SaveFinal writes the current state synchronously. Background saves still
// in flight cannot overwrite it. It does nothing without a store or a trace.
func (m AppModel) SaveFinal(ctx context.Context) error {
	if m.saver == nil || m.Trace == nil {
		return nil
	}
	seq, st := m.saver.capture(m.Trace)
	_, err := m.saver.write(ctx, seq, st)
	return err
}
