package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the persistent top bar: file name, timescale, time base
// and the cursor and delta readouts.
type StatusBar struct {
	File      string
	Timescale string
	TimeBase  string
	Cursor    string // formatted cursor time, empty when hidden
	Delta     string // cursor to the selected marker
	PairDelta string // between the first two selected markers
	Signals   int
	Markers   int
	Loading   bool
	Width     int
}

// View renders the status bar as a single line. Narrow terminals drop
// the low-priority segments first (counts → time base → deltas).
func (s StatusBar) View() string {
	compact := s.Width < CompactWidth

	// The outer styleStatusBar applies Padding(0,1), consuming 2 columns.
	const barPadding = 2
	innerWidth := max(s.Width-barPadding, 0)

	barBg := lipgloss.NewStyle().Background(colorSurface)

	rightSegments := s.buildRightSegments(compact)
	right := joinSegments(rightSegments)
	rightWidth := lipgloss.Width(right)

	const minGap = 1
	left := s.buildLeft(innerWidth - rightWidth - minGap)
	leftWidth := lipgloss.Width(left)
	if leftWidth+rightWidth+minGap > innerWidth {
		rightSegments = dropSegments(rightSegments, innerWidth-leftWidth-minGap)
		right = joinSegments(rightSegments)
		rightWidth = lipgloss.Width(right)
	}

	gap := max(innerWidth-leftWidth-rightWidth, 1)
	line := left + barBg.Render(strings.Repeat(" ", gap)) + right

	if lipgloss.Width(line) > innerWidth {
		line = truncateToWidth(line, innerWidth)
	}
	return styleStatusBar.Width(s.Width).Render(line)
}

// buildLeft renders the file name and timescale, truncating the name to fit
// within avail cells.
func (s StatusBar) buildLeft(avail int) string {
	name := filepath.Base(s.File)
	if s.File == "" {
		name = "no trace"
	}
	suffix := ""
	if s.Loading {
		suffix = " (loading)"
	}
	ts := ""
	if s.Timescale != "" {
		ts = "  " + s.Timescale
	}
	room := avail - len(ts) - len(suffix)
	if room < len(name) {
		name = TruncateWithEllipsis(name, max(room, 1))
	}
	return styleStatusLabel.Render(name) + styleStatusDim.Render(suffix) + styleStatusValue.Render(ts)
}

// statusSegment represents a styled segment of the status bar with a drop priority.
// Lower priority values are dropped first when the terminal is too narrow.
type statusSegment struct {
	text     string
	priority int // higher = keep longer; counts=0, base=1, deltas=2, cursor=3
}

// buildRightSegments assembles the right-side segments in display order.
func (s StatusBar) buildRightSegments(compact bool) []statusSegment {
	var segments []statusSegment

	if s.Signals > 0 && !compact {
		segments = append(segments, statusSegment{
			text:     styleStatusDim.Render(fmt.Sprintf("%d sig %d mk  ", s.Signals, s.Markers)),
			priority: 0,
		})
	}
	if s.TimeBase != "" {
		segments = append(segments, statusSegment{
			text:     styleStatusDim.Render("base ") + styleStatusValue.Render(s.TimeBase+"  "),
			priority: 1,
		})
	}
	if s.PairDelta != "" {
		segments = append(segments, statusSegment{
			text:     styleStatusDelta.Render("ΔM " + s.PairDelta + "  "),
			priority: 2,
		})
	}
	if s.Delta != "" {
		segments = append(segments, statusSegment{
			text:     styleStatusDelta.Render("Δ " + s.Delta + "  "),
			priority: 2,
		})
	}
	if s.Cursor != "" {
		segments = append(segments, statusSegment{
			text:     styleStatusLabel.Render("@ ") + styleStatusValue.Render(s.Cursor),
			priority: 3,
		})
	}
	return segments
}

// joinSegments concatenates segment text with a trailing bar-colored space.
func joinSegments(segments []statusSegment) string {
	barBg := lipgloss.NewStyle().Background(colorSurface)
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.text)
	}
	b.WriteString(barBg.Render(" "))
	return b.String()
}

// dropSegments removes lowest-priority segments until the combined width fits within maxWidth.
func dropSegments(segments []statusSegment, maxWidth int) []statusSegment {
	result := make([]statusSegment, len(segments))
	copy(result, segments)

	for totalWidth(result) > maxWidth && len(result) > 0 {
		minIdx := 0
		minPri := result[0].priority
		for i, seg := range result {
			if seg.priority < minPri {
				minPri = seg.priority
				minIdx = i
			}
		}
		result = append(result[:minIdx], result[minIdx+1:]...)
	}
	return result
}

// totalWidth computes the rendered width of all segments plus trailing space.
func totalWidth(segments []statusSegment) int {
	w := 1 // trailing space from joinSegments
	for _, seg := range segments {
		w += lipgloss.Width(seg.text)
	}
	return w
}
