// Package plot computes what a waveform display must draw for a horizontal
// window of content: grid lines, one row of segments per visible signal,
// marker lines and the cursor.
//
// Plan is a pure function of the trace and view, so any number of redraw
// requests can be collapsed into one.
package plot

import (
	"math"
	"strings"

	"github.com/papapumpkin/vcdscope/internal/timeview"
	"github.com/papapumpkin/vcdscope/internal/trace"
)

// Level is how a segment is drawn.
type Level int

// Segment levels.
const (
	High Level = iota
	Low
	Unknown
	HighZ
	Bus
)

func (l Level) String() string {
	switch l {
	case High:
		return "high"
	case Low:
		return "low"
	case Unknown:
		return "x"
	case HighZ:
		return "z"
	case Bus:
		return "bus"
	}
	return "unknown level"
}

// Waveform colors.
const (
	ColorHigh    = "#00ff00"
	ColorLow     = "#008800"
	ColorUnknown = "#ff0000"
	ColorHighZ   = "#0000ff"
)

// Window is a half-open range [From, To) of content x coordinates.
type Window struct {
	From, To int
}

// Width returns the window width in pixels.
func (w Window) Width() int { return w.To - w.From }

// Segment is one held value of a signal between two pixels.
type Segment struct {
	X0, X1 int
	Level  Level
	Color  string
	Value  string
	Label  string // formatted bus value, empty for scalars
}

// Row is the drawing of one signal.
type Row struct {
	Name     string
	Signal   *trace.Signal
	Segments []Segment
}

// GridLine is a vertical time grid line.
type GridLine struct {
	X     int
	Time  float64
	Label string
}

// MarkerLine is a vertical marker line.
type MarkerLine struct {
	X        int
	Marker   *trace.Marker
	Label    string
	Color    string
	Selected bool
}

// CursorLine is the cursor position. Visible is false when the cursor is
// hidden or outside the window.
type CursorLine struct {
	X       int
	Time    int64
	Label   string
	Visible bool
}

// Frame is a complete draw plan.
type Frame struct {
	Window       Window
	ContentWidth int
	Grid         []GridLine
	Rows         []Row
	Markers      []MarkerLine
	Cursor       CursorLine
}

// Plan computes the frame for win. A nil trace yields an empty frame.
func Plan(tr *trace.Trace, v *timeview.View, win Window) Frame {
	f := Frame{Window: win}
	if tr == nil || win.Width() <= 0 {
		return f
	}
	f.ContentWidth = v.ContentWidth(tr.MaxTimestamp)

	tFrom := math.Max(v.ToTime(win.From), 0)
	tTo := v.ToTime(win.To)
	if limit := float64(tr.MaxTimestamp) + 1e-9; tTo > limit {
		tTo = limit
	}
	for _, t := range timeview.GridTimes(v.GridStep(win.Width()+v.Margin()), tFrom, tTo) {
		f.Grid = append(f.Grid, GridLine{X: v.ToPixel(t), Time: t, Label: v.FormatGridLabel(t)})
	}

	for _, s := range tr.SignalsInDisplayOrder() {
		if !s.Visible {
			continue
		}
		f.Rows = append(f.Rows, Row{
			Name:     s.FullName(),
			Signal:   s,
			Segments: segments(s, v, win, tr.MaxTimestamp, int64(math.Floor(tFrom))),
		})
	}

	for _, m := range tr.Markers() {
		x := v.ToPixel(float64(m.Time))
		if x < win.From || x >= win.To {
			continue
		}
		f.Markers = append(f.Markers, MarkerLine{X: x, Marker: m, Label: m.Label, Color: m.Color, Selected: m.Selected})
	}

	cur := tr.Cursor
	x := v.ToPixel(float64(cur.Time))
	f.Cursor = CursorLine{
		X:       x,
		Time:    cur.Time,
		Label:   v.FormatPreciseLabel(float64(cur.Time)),
		Visible: cur.Visible && x >= win.From && x < win.To,
	}
	return f
}

// segments lays out the changes of s that overlap win. The scan starts at
// the change in effect at tFrom.
func segments(s *trace.Signal, v *timeview.View, win Window, maxTime, tFrom int64) []Segment {
	n := len(s.Changes)
	if n == 0 {
		return nil
	}
	start := max(s.IndexAt(tFrom), 0)
	endX := v.ToPixel(float64(maxTime))
	scalar := s.IsScalar()

	var out []Segment
	for i := start; i < n; i++ {
		ch := s.Changes[i]
		x0 := v.ToPixel(float64(ch.Time))
		if x0 >= win.To {
			break
		}
		x1 := endX
		if i+1 < n {
			x1 = v.ToPixel(float64(s.Changes[i+1].Time))
		}
		if x1 < win.From {
			continue
		}
		seg := Segment{X0: x0, X1: x1, Value: ch.Value}
		if scalar {
			seg.Level = ScalarLevel(ch.Value)
		} else {
			seg.Level = Bus
			seg.Label = timeview.FormatBusValue(ch.Value)
		}
		seg.Color = ColorFor(ch.Value)
		out = append(out, seg)
	}
	return out
}

// ScalarLevel classifies a 1-bit value. Anything unrecognised draws high.
func ScalarLevel(value string) Level {
	switch value {
	case "0", "l", "L":
		return Low
	case "x", "X":
		return Unknown
	case "z", "Z":
		return HighZ
	}
	return High
}

// ColorFor returns the waveform color of a value. Buses are colored by
// their x/z content like scalars.
func ColorFor(value string) string {
	switch {
	case value == "":
		return ColorHigh
	case strings.Trim(value, "xX") == "":
		return ColorUnknown
	case strings.Trim(value, "zZ") == "":
		return ColorHighZ
	case value == "0" || value == "l" || value == "L":
		return ColorLow
	}
	return ColorHigh
}
