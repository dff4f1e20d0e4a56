package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/vcdscope/internal/timeview"
)

// handleKey processes keyboard input.
func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.Keys.Reload):
		if m.Path == "" {
			return nil
		}
		m.Loading = true
		return loadTraceCmd(m.Path, nil, m.logger, m.dumps)
	}

	if m.Trace == nil {
		return nil
	}
	tr := m.Trace

	switch {
	case key.Matches(msg, m.Keys.ZoomIn):
		m.Timeline.ZoomIn()
		m.zoomed()

	case key.Matches(msg, m.Keys.ZoomOut):
		m.Timeline.ZoomOut(tr.MaxTimestamp)
		m.zoomed()

	case key.Matches(msg, m.Keys.Fit):
		m.fit()
		m.zoomed()

	case key.Matches(msg, m.Keys.TimeBase):
		tr.TimeBase = timeview.NextTimeBase(tr.TimeBase)
		_ = m.Timeline.SetTimeBase(tr.TimeBase)
		m.dirty = true
		m.addMessage("time base: %s", tr.TimeBase)

	case key.Matches(msg, m.Keys.Up):
		m.Selected--
		m.clampSelection()

	case key.Matches(msg, m.Keys.Down):
		m.Selected++
		m.clampSelection()

	case key.Matches(msg, m.Keys.Left):
		m.Ctrl.ScrollBy(-m.scrollStep(), 0)

	case key.Matches(msg, m.Keys.Right):
		m.Ctrl.ScrollBy(m.scrollStep(), 0)

	case key.Matches(msg, m.Keys.Toggle):
		if s := m.selectedSignal(); s != nil {
			s.Visible = !s.Visible
			m.dirty = true
		}

	case key.Matches(msg, m.Keys.MoveUp):
		m.moveSelected(-1)

	case key.Matches(msg, m.Keys.MoveDown):
		m.moveSelected(1)

	case key.Matches(msg, m.Keys.AddMarker):
		m.Ctrl.AddMarkerAtCursor()

	case key.Matches(msg, m.Keys.DeleteMarkers):
		if m.Ctrl.DeleteSelectedMarkers() == 0 {
			m.addMessage("no markers selected")
		}

	case key.Matches(msg, m.Keys.PrevEdge):
		if !m.Ctrl.JumpToEdge(false) {
			m.addMessage("no earlier edge")
		}

	case key.Matches(msg, m.Keys.NextEdge):
		if !m.Ctrl.JumpToEdge(true) {
			m.addMessage("no later edge")
		}
	}
	return nil
}

// handleMouse translates terminal mouse events into controller gestures.
// Screen columns are content pixels shifted by the scroll offset.
func (m *AppModel) handleMouse(msg tea.MouseMsg) {
	if m.Trace == nil {
		return
	}
	modifier := msg.Alt || msg.Ctrl

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.Timeline.ZoomIn()
		m.zoomed()

	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.Timeline.ZoomOut(m.Trace.MaxTimestamp)
		m.zoomed()

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if msg.Y < 1 || msg.Y >= headerRows+m.rowsHeight() {
			return
		}
		if msg.X < m.Timeline.Margin() {
			if msg.Y >= headerRows {
				m.selectRowAt(msg.Y)
			}
			return
		}
		now := m.now()
		if m.press.x == msg.X && m.press.y == msg.Y && !m.press.at.IsZero() &&
			now.Sub(m.press.at) <= DoubleClickInterval {
			m.press = lastPress{}
			m.Ctrl.DoubleClick(msg.X, msg.Y)
			return
		}
		m.press = lastPress{at: now, x: msg.X, y: msg.Y}
		m.Ctrl.PointerDown(msg.X, msg.Y, modifier)

	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		m.Ctrl.PointerMove(msg.X, msg.Y, modifier)

	case msg.Action == tea.MouseActionRelease:
		m.Ctrl.PointerUp(msg.X, msg.Y, modifier)
	}
}
