package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/vcdscope/internal/plot"
	"github.com/papapumpkin/vcdscope/internal/timeview"
	"github.com/papapumpkin/vcdscope/internal/trace"
)

// syncStatus copies trace state into the status bar.
func (m *AppModel) syncStatus() {
	sb := StatusBar{
		File:    m.Path,
		Loading: m.Loading,
		Width:   m.Width,
	}
	if tr := m.Trace; tr != nil {
		sb.Timescale = formatTimescale(m.Timeline)
		sb.TimeBase = tr.TimeBase
		sb.Signals = tr.SignalCount()
		sb.Markers = len(tr.Markers())
		if tr.Cursor.Visible {
			sb.Cursor = m.Timeline.FormatPreciseLabel(float64(tr.Cursor.Time))
		}
		if d, ok := m.Ctrl.CursorDelta(); ok {
			sb.Delta = m.Timeline.FormatPreciseLabel(float64(d))
		}
		if d, ok := m.Ctrl.MarkerPairDelta(); ok {
			sb.PairDelta = m.Timeline.FormatPreciseLabel(float64(d))
		}
	}
	m.StatusBar = sb
}

// addMessage appends a formatted message to the messages log.
func (m *AppModel) addMessage(format string, args ...any) {
	m.pushMessage(fmt.Sprintf(format, args...), false)
}

func (m *AppModel) addError(format string, args ...any) {
	m.pushMessage(fmt.Sprintf(format, args...), true)
}

func (m *AppModel) pushMessage(msg string, isErr bool) {
	m.Messages = append(m.Messages, msg)
	if len(m.Messages) > maxMessages {
		m.Messages = m.Messages[len(m.Messages)-maxMessages:]
	}
	m.LastError = isErr
}

// View renders the full TUI.
func (m AppModel) View() string {
	if m.Width == 0 {
		return "initializing..."
	}
	if m.Width < MinWidth || m.Height < MinHeight {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: %dx%d", m.Width, m.Height, MinWidth, MinHeight)
	}

	sections := []string{m.StatusBar.View()}
	sections = append(sections, m.renderTrace()...)
	sections = append(sections, m.renderMessage())
	sections = append(sections, m.buildFooter().View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTrace renders the axis, marker heads and signal rows, padded to
// the full waveform area height.
func (m AppModel) renderTrace() []string {
	h := m.rowsHeight()
	lines := make([]string, 0, headerRows-1+h)
	margin := m.Timeline.Margin()

	if m.Trace == nil {
		msg := "no trace loaded"
		if m.Loading {
			msg = "loading " + filepath.Base(m.Path) + "..."
		}
		lines = append(lines, styleNameNormal.Render(msg), "")
		for range h {
			lines = append(lines, "")
		}
		return lines
	}

	ox, _ := m.Ctrl.Offset()
	frame := plot.Plan(m.Trace, m.Timeline, plot.Window{From: ox + margin, To: ox + m.Width})
	w := waveform{frame: frame, offset: ox, gutter: margin, width: m.Width}

	lines = append(lines, padGutter("", margin)+w.axis().render(margin))
	lines = append(lines, padGutter("", margin)+w.markerHeads().render(margin))

	sigs := m.signals()
	first := m.firstRow()
	for i, l := range w.rows(sigs, first, h) {
		lines = append(lines, m.renderName(sigs[first+i], first+i == m.Selected, margin)+l.render(margin))
	}
	for len(lines) < headerRows-1+h {
		lines = append(lines, "")
	}
	return lines
}

// renderName renders one cell of the signal name gutter.
func (m AppModel) renderName(s *trace.Signal, selected bool, width int) string {
	if width <= 0 {
		return ""
	}
	name := truncateLeft(s.FullName(), width-2)
	style := styleNameNormal
	switch {
	case selected:
		style = styleNameSelected
	case !s.Visible:
		style = styleNameHidden
	}
	prefix := " "
	if selected {
		prefix = styleSelectionIndicator.Render(selectionIndicator)
	}
	text := prefix + style.Render(name)
	if selected {
		return padToWidth(text, width, colorSurface)
	}
	return padGutter(text, width)
}

func padGutter(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// renderMessage renders the newest message, if any.
func (m AppModel) renderMessage() string {
	if len(m.Messages) == 0 {
		return ""
	}
	msg := TruncateWithEllipsis(m.Messages[len(m.Messages)-1], m.Width-1)
	if m.LastError {
		return styleMessageError.Render(msg)
	}
	return styleMessage.Render(msg)
}

// buildFooter creates the footer for the current state.
func (m AppModel) buildFooter() Footer {
	f := Footer{Width: m.Width}
	if m.Trace == nil {
		f.Bindings = EmptyFooterBindings(m.Keys)
	} else {
		f.Bindings = ViewerFooterBindings(m.Keys)
	}
	return f
}

// formatTimescale renders the view's timescale as "<n><unit>".
func formatTimescale(v *timeview.View) string {
	mult, unit := v.Timescale()
	return fmt.Sprintf("%g%s", mult, unit)
}
