package tui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/papapumpkin/vcdscope/internal/interact"
	"github.com/papapumpkin/vcdscope/internal/session"
	"github.com/papapumpkin/vcdscope/internal/telemetry"
	"github.com/papapumpkin/vcdscope/internal/timeview"
	"github.com/papapumpkin/vcdscope/internal/trace"
	"github.com/papapumpkin/vcdscope/internal/watch"
)

// DoubleClickInterval is the longest gap between two presses on the same
// cell that still counts as a double-click.
const DoubleClickInterval = 400 * time.Millisecond

// maxMessages bounds the message history kept on the model.
const maxMessages = 50

// Options configures a viewer session.
type Options struct {
	Path     string
	Margin   int // name gutter width in cells
	RightPad int
	TimeBase string

	DumpValues bool // apply the changes inside $dumpvars-style blocks

	Store   *session.Store     // nil disables persistence
	Journal *telemetry.Emitter // nil disables the event journal
	Watcher *watch.Watcher     // nil disables reload on change
	Logger  zerolog.Logger
}

// AppModel is the root BubbleTea model composing all sub-views.
type AppModel struct {
	Keys      KeyMap
	StatusBar StatusBar
	Width     int
	Height    int
	Path      string
	Trace     *trace.Trace
	Timeline  *timeview.View
	Ctrl      *interact.Controller
	Selected  int      // index into the display order
	Messages  []string // recent info/error messages
	LastError bool     // whether the newest message is an error
	Loading   bool

	store    *session.Store
	saver    *sessionWriter
	journal  *telemetry.Emitter
	watcher  *watch.Watcher
	logger   zerolog.Logger
	timeBase string
	dumps    bool

	events *eventQueue
	dirty  bool // session state changed since the last save
	fitted bool // the first fit-to-window has happened
	press  lastPress
	now    func() time.Time
}

// eventQueue collects controller events during one Update. It is shared by
// pointer so copies of the model see the same queue.
type eventQueue struct {
	items []interact.Event
}

type lastPress struct {
	at   time.Time
	x, y int
}

// NewAppModel creates a root model for the trace at opts.Path. The trace
// itself is loaded by Init.
func NewAppModel(opts Options) AppModel {
	view := timeview.New(opts.Margin, opts.RightPad)
	base := opts.TimeBase
	if err := view.SetTimeBase(base); err != nil {
		base = timeview.TimeBaseAuto
	}

	path := opts.Path
	if abs, err := filepath.Abs(path); err == nil && path != "" {
		path = abs
	}

	q := &eventQueue{}
	ctrl := interact.New(nil, view)
	ctrl.Observe(func(e interact.Event) { q.items = append(q.items, e) })

	m := AppModel{
		Keys:     DefaultKeyMap(),
		Path:     path,
		Timeline: view,
		Ctrl:     ctrl,
		Loading:  path != "",
		store:    opts.Store,
		saver:    newSessionWriter(opts.Store, path),
		journal:  opts.Journal,
		watcher:  opts.Watcher,
		logger:   opts.Logger,
		timeBase: base,
		dumps:    opts.DumpValues,
		events:   q,
		now:      time.Now,
	}
	m.syncStatus()
	return m
}

// Init starts the first load and the file watch.
func (m AppModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.Path != "" {
		cmds = append(cmds, loadTraceCmd(m.Path, m.store, m.logger, m.dumps))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.StatusBar.Width = msg.Width
		m.layout()
		if m.Trace != nil && !m.fitted {
			m.fit()
		}

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case MsgTraceLoaded:
		m.applyTrace(msg)

	case MsgLoadFailed:
		m.Loading = false
		m.addError("load %s: %v", filepath.Base(msg.Path), msg.Err)
		m.record(telemetry.KindLoadFailed, map[string]any{"error": msg.Err.Error()})
		m.logger.Error().Err(msg.Err).Str("path", msg.Path).Msg("tui: load failed")

	case MsgFileChanged:
		if msg.Change.Kind == watch.ChangeRemoved {
			m.addError("%s was removed; keeping the loaded trace", filepath.Base(msg.Change.Path))
		} else {
			m.Loading = true
			cmds = append(cmds, loadTraceCmd(m.Path, nil, m.logger, m.dumps))
		}
		if m.watcher != nil {
			cmds = append(cmds, waitForChange(m.watcher))
		}

	case MsgWatchClosed:
		m.logger.Debug().Msg("tui: watcher closed")

	case MsgSessionSaved:
		if msg.Err != nil {
			m.addError("session save: %v", msg.Err)
			m.logger.Warn().Err(msg.Err).Str("path", m.Path).Msg("tui: session save failed")
		}

	case MsgError:
		m.addError("%s", msg.Msg)
	case MsgInfo:
		m.addMessage("%s", msg.Msg)
	}

	if cmd := m.flush(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.syncStatus()
	return m, tea.Batch(cmds...)
}

// applyTrace installs a loaded trace. A reload carries the live markers and
// signal preferences over; a first load restores the saved session.
func (m *AppModel) applyTrace(msg MsgTraceLoaded) {
	m.Loading = false
	tr := msg.Trace
	tr.TimeBase = m.timeBase

	reload := m.Trace != nil
	switch {
	case reload:
		session.Restore(tr, session.Capture(m.Trace))
	case msg.Saved != nil:
		session.Restore(tr, *msg.Saved)
	}

	if err := m.Timeline.SetTimescale(tr.Timescale); err != nil {
		m.addError("timescale %q: %v; using %s", tr.Timescale, err, formatTimescale(m.Timeline))
	}
	if err := m.Timeline.SetTimeBase(tr.TimeBase); err != nil {
		tr.TimeBase = timeview.TimeBaseAuto
		_ = m.Timeline.SetTimeBase(tr.TimeBase)
	}

	m.Trace = tr
	m.Ctrl.SetTrace(tr)
	m.layout()
	if !m.fitted {
		m.fit()
	}
	m.clampSelection()

	st := tr.Stats()
	verb := "loaded"
	if reload {
		verb = "reloaded"
	}
	m.addMessage("%s %s: %d signals, %d changes", verb, filepath.Base(msg.Path), st.Signals, st.Changes)
	if n := len(msg.Diagnostics); n > 0 {
		m.addError("%d lines skipped (first: %s)", n, msg.Diagnostics[0])
	}
	m.record(telemetry.KindTraceLoaded, map[string]any{
		"signals":     st.Signals,
		"changes":     st.Changes,
		"max_time":    tr.MaxTimestamp,
		"diagnostics": len(msg.Diagnostics),
		"reload":      reload,
	})
	m.logger.Info().Str("path", msg.Path).Int("signals", st.Signals).Int64("max_time", tr.MaxTimestamp).
		Int("diagnostics", len(msg.Diagnostics)).Msg("tui: trace loaded")
}

// flush drains controller events into the journal and returns a session
// save when anything persistent changed.
func (m *AppModel) flush() tea.Cmd {
	for _, e := range m.events.items {
		m.dirty = true
		var kind string
		switch e.Kind {
		case interact.MarkerAdded:
			kind = telemetry.KindMarkerAdded
		case interact.MarkerMoved:
			kind = telemetry.KindMarkerMoved
		case interact.MarkerRemoved:
			kind = telemetry.KindMarkerRemoved
		default:
			continue
		}
		if err := m.journal.Emit(telemetry.Event{
			Kind:   kind,
			File:   m.Path,
			Marker: e.Marker.Label,
			Data:   map[string]any{"id": e.Marker.ID, "time": e.Time},
		}); err != nil {
			m.logger.Warn().Err(err).Msg("tui: journal write failed")
		}
	}
	m.events.items = m.events.items[:0]

	if !m.dirty || m.saver == nil || m.Trace == nil {
		return nil
	}
	m.dirty = false
	return m.saver.saveCmd(m.Trace)
}

func (m *AppModel) record(kind string, data any) {
	if err := m.journal.Record(kind, m.Path, data); err != nil {
		m.logger.Warn().Err(err).Msg("tui: journal write failed")
	}
}

// zoomed keeps the cursor in view after a scale change.
func (m *AppModel) zoomed() {
	if m.Trace.Cursor.Visible {
		m.Ctrl.Reveal(m.Trace.Cursor.Time)
	}
	m.record(telemetry.KindZoomChanged, map[string]any{"scale": m.Timeline.Scale()})
}

func (m *AppModel) fit() {
	if m.Width == 0 || m.Trace == nil {
		return
	}
	m.Timeline.FitToWindow(m.Width, m.Trace.MaxTimestamp)
	_, y := m.Ctrl.Scroll()
	m.Ctrl.SetScroll(0, y)
	m.fitted = true
}

// layout pushes the terminal size into the controller.
func (m *AppModel) layout() {
	m.Ctrl.SetViewport(m.Width, m.rowsHeight())
	if m.Trace != nil {
		m.Ctrl.SetContentHeight(len(m.Trace.DisplayOrder()))
	}
}

func (m AppModel) rowsHeight() int {
	return max(m.Height-chromeRows, 0)
}

func (m AppModel) scrollStep() int {
	return max((m.Width-m.Timeline.Margin())/4, 1)
}

func (m AppModel) signals() []*trace.Signal {
	if m.Trace == nil {
		return nil
	}
	return m.Trace.SignalsInDisplayOrder()
}

func (m AppModel) selectedSignal() *trace.Signal {
	sigs := m.signals()
	if m.Selected < 0 || m.Selected >= len(sigs) {
		return nil
	}
	return sigs[m.Selected]
}

// firstRow returns the index of the topmost visible signal row.
func (m AppModel) firstRow() int {
	_, y := m.Ctrl.Offset()
	return y
}

// clampSelection keeps Selected in range and scrolls it into view.
func (m *AppModel) clampSelection() {
	n := len(m.signals())
	m.Selected = max(min(m.Selected, n-1), 0)

	h := m.rowsHeight()
	over := n - h
	if over <= 0 || h == 0 {
		return
	}
	first := m.firstRow()
	switch {
	case m.Selected < first:
		first = m.Selected
	case m.Selected >= first+h:
		first = m.Selected - h + 1
	default:
		return
	}
	x, _ := m.Ctrl.Scroll()
	m.Ctrl.SetScroll(x, float64(first)/float64(over))
}

func (m *AppModel) moveSelected(delta int) {
	s := m.selectedSignal()
	if s == nil {
		return
	}
	if m.Trace.MoveSignal(s.FullName(), delta) {
		m.Selected += delta
		m.clampSelection()
		m.dirty = true
	}
}

func (m *AppModel) selectRowAt(y int) {
	i := m.firstRow() + y - headerRows
	if i >= 0 && i < len(m.signals()) {
		m.Selected = i
	}
}
