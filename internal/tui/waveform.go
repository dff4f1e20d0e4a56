package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/vcdscope/internal/plot"
	"github.com/papapumpkin/vcdscope/internal/trace"
)

// cell is one styled terminal column.
type cell struct {
	r    rune
	fg   lipgloss.Color
	bold bool
}

// cellLine is a row of cells addressed by screen column.
type cellLine []cell

func newCellLine(width int) cellLine {
	l := make(cellLine, max(width, 0))
	for i := range l {
		l[i].r = ' '
	}
	return l
}

func (l cellLine) set(x int, r rune, fg lipgloss.Color, bold bool) {
	if x >= 0 && x < len(l) {
		l[x] = cell{r: r, fg: fg, bold: bold}
	}
}

// text writes s from column x, clipped to [lo, len(l)).
func (l cellLine) text(x, lo int, s string, fg lipgloss.Color, bold bool) {
	for _, r := range s {
		if x >= lo {
			l.set(x, r, fg, bold)
		}
		x++
	}
}

// render styles runs of identical cells from column from onwards.
func (l cellLine) render(from int) string {
	var b strings.Builder
	var run strings.Builder
	var cur cell
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur.fg == "" && !cur.bold {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(cur.fg).Bold(cur.bold).Render(run.String()))
		}
		run.Reset()
	}
	for i := max(from, 0); i < len(l); i++ {
		c := l[i]
		if c.fg != cur.fg || c.bold != cur.bold {
			flush()
			cur = c
		}
		run.WriteRune(c.r)
	}
	flush()
	return b.String()
}

// waveform draws a plot.Frame onto terminal rows. Content pixel x appears
// at screen column x-offset; columns left of gutter belong to signal names.
type waveform struct {
	frame  plot.Frame
	offset int
	gutter int
	width  int
}

func (w waveform) col(x int) int { return x - w.offset }

// axis renders the tick row with grid labels.
func (w waveform) axis() cellLine {
	l := newCellLine(w.width)
	for x := w.gutter; x < w.width; x++ {
		l.set(x, glyphAxis, colorMuted, false)
	}
	for _, g := range w.frame.Grid {
		if c := w.col(g.X); c >= w.gutter {
			l.set(c, glyphTick, colorBlue, false)
		}
	}
	// Labels that would run into the previous one are dropped.
	free := w.gutter
	for _, g := range w.frame.Grid {
		c := w.col(g.X)
		if c < w.gutter || c+1 < free {
			continue
		}
		l.text(c+1, w.gutter, g.Label, colorMutedLight, false)
		free = c + 2 + len(g.Label)
	}
	return l
}

// markerHeads renders marker labels and the cursor head.
func (w waveform) markerHeads() cellLine {
	l := newCellLine(w.width)
	for _, m := range w.frame.Markers {
		c := w.col(m.X)
		fg, bold := markerStyle(m)
		l.set(c, glyphMarkerHead, fg, bold)
		l.text(c+1, w.gutter, m.Label, fg, bold)
	}
	if cur := w.frame.Cursor; cur.Visible {
		l.set(w.col(cur.X), glyphMarkerHead, colorPrimary, true)
	}
	return l
}

// signal renders the waveform of one plotted row.
func (w waveform) signal(row plot.Row) cellLine {
	l := newCellLine(w.width)
	for i, seg := range row.Segments {
		c0, c1 := w.col(seg.X0), w.col(seg.X1)
		lo, hi := max(c0, w.gutter), min(max(c1, c0+1), w.width)
		fg := lipgloss.Color(seg.Color)
		g := levelGlyph(seg.Level)
		for x := lo; x < hi; x++ {
			l.set(x, g, fg, false)
		}
		if i > 0 && c0 >= w.gutter {
			edge := glyphEdge
			if seg.Level == plot.Bus {
				edge = glyphBusEdge
			}
			l.set(c0, edge, fg, false)
		}
		if seg.Level == plot.Bus && seg.Label != "" {
			start := max(c0+1, w.gutter)
			room := hi - start
			if n := len(seg.Label); n <= room {
				l.text(start+(room-n)/2, w.gutter, seg.Label, colorWhite, false)
			}
		}
	}
	w.overlay(l)
	return l
}

// overlay draws marker and cursor lines over a signal row.
func (w waveform) overlay(l cellLine) {
	for _, m := range w.frame.Markers {
		fg, bold := markerStyle(m)
		l.set(w.col(m.X), glyphMarker, fg, bold)
	}
	if cur := w.frame.Cursor; cur.Visible {
		l.set(w.col(cur.X), glyphCursor, colorPrimary, true)
	}
}

// rows renders height signal rows starting at index first of sigs.
// Hidden signals keep their row with an empty trace.
func (w waveform) rows(sigs []*trace.Signal, first, height int) []cellLine {
	bySignal := make(map[*trace.Signal]plot.Row, len(w.frame.Rows))
	for _, r := range w.frame.Rows {
		bySignal[r.Signal] = r
	}
	var out []cellLine
	for i := first; i < len(sigs) && len(out) < height; i++ {
		if r, ok := bySignal[sigs[i]]; ok {
			out = append(out, w.signal(r))
			continue
		}
		l := newCellLine(w.width)
		w.overlay(l)
		out = append(out, l)
	}
	return out
}

func levelGlyph(lv plot.Level) rune {
	switch lv {
	case plot.High:
		return glyphHigh
	case plot.Low:
		return glyphLow
	case plot.Bus:
		return glyphBus
	default:
		return glyphMid
	}
}

func markerStyle(m plot.MarkerLine) (lipgloss.Color, bool) {
	if m.Selected {
		return colorAccent, true
	}
	return lipgloss.Color(m.Color), false
}
