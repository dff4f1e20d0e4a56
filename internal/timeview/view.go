// Package timeview maps trace time to horizontal pixels and formats time
// and bus values for display.
//
// A View owns only presentation state: the scale, the label gutter and the
// time units. It reads trace data (maximum time, edge lists) through
// arguments and never mutates a trace.
package timeview

import (
	"math"
	"sort"
)

// Zoom and snapping constants.
const (
	ZoomFactor = 1.5
	// MinVisiblePixels bounds zoom-out: the whole trace never shrinks below
	// this many pixels.
	MinVisiblePixels = 50.0
	// SnapPixels is the edge-snapping threshold in pixels.
	SnapPixels = 5.0
)

// View is the time/pixel mapping for one trace display.
type View struct {
	scale    float64 // pixels per time unit, always > 0
	margin   int
	rightPad int

	tsMult float64
	tsUnit Unit

	base     string
	baseUnit Unit
	baseAuto bool
}

// New returns a view at scale 1 with a 1ns timescale and automatic
// time-base.
func New(margin, rightPad int) *View {
	return &View{
		scale:    1,
		margin:   max(margin, 0),
		rightPad: max(rightPad, 0),
		tsMult:   1,
		tsUnit:   Nanosecond,
		base:     TimeBaseAuto,
		baseAuto: true,
	}
}

// Scale returns pixels per time unit.
func (v *View) Scale() float64 { return v.scale }

// Margin returns the label gutter width.
func (v *View) Margin() int { return v.margin }

// RightPad returns the padding kept right of the last timestamp.
func (v *View) RightPad() int { return v.rightPad }

// SetScale sets pixels per time unit. Non-positive and non-finite values
// are ignored.
func (v *View) SetScale(s float64) {
	if s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s) {
		v.scale = s
	}
}

// SetTimescale parses a trace timescale string. On error the previous
// timescale is kept.
func (v *View) SetTimescale(ts string) error {
	mult, unit, err := ParseTimescale(ts)
	if err != nil {
		return err
	}
	v.tsMult, v.tsUnit = mult, unit
	return nil
}

// Timescale returns the parsed timescale multiplier and unit.
func (v *View) Timescale() (float64, Unit) { return v.tsMult, v.tsUnit }

// SetTimeBase selects the display time-base ("auto" or a unit name).
func (v *View) SetTimeBase(base string) error {
	u, auto, err := ParseTimeBase(base)
	if err != nil {
		return err
	}
	v.baseUnit, v.baseAuto = u, auto
	if auto {
		v.base = TimeBaseAuto
	} else {
		v.base = u.String()
	}
	return nil
}

// TimeBase returns the selected time-base in its canonical spelling.
func (v *View) TimeBase() string { return v.base }

// ToPixel maps a time to an x coordinate.
func (v *View) ToPixel(t float64) int {
	return v.margin + int(math.Round(t*v.scale))
}

// ToTime maps an x coordinate back to time. It is the inverse of ToPixel up
// to one pixel of rounding.
func (v *View) ToTime(x int) float64 {
	return float64(x-v.margin) / v.scale
}

// ZoomIn magnifies the view.
func (v *View) ZoomIn() {
	v.scale *= ZoomFactor
}

// ZoomOut shrinks the view, never below MinVisiblePixels for the whole
// trace.
func (v *View) ZoomOut(maxTime int64) {
	s := v.scale / ZoomFactor
	if maxTime > 0 {
		s = math.Max(s, MinVisiblePixels/float64(maxTime))
	}
	v.scale = s
}

// FitToWindow scales the view so that [0, maxTime] fills the viewport
// between the margin and the right pad.
func (v *View) FitToWindow(viewportWidth int, maxTime int64) {
	avail := viewportWidth - v.margin - v.rightPad
	if maxTime <= 0 || avail <= 0 {
		v.scale = 1
		return
	}
	v.scale = float64(avail) / float64(maxTime)
}

// ContentWidth is the full drawable width for a trace ending at maxTime.
func (v *View) ContentWidth(maxTime int64) int {
	return v.ToPixel(float64(maxTime)) + v.rightPad
}

var niceSteps = [...]float64{1, 2, 5, 10}

// GridStep returns the smallest step of the form {1,2,5,10}x10^k that
// divides the visible time span into at most ten intervals.
func (v *View) GridStep(viewportWidth int) float64 {
	span := float64(viewportWidth-v.margin) / v.scale
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 1
	}
	raw := span / 10
	mag := math.Pow10(int(math.Floor(math.Log10(raw))))
	for _, m := range niceSteps {
		if step := m * mag; step >= raw*(1-1e-9) {
			return step
		}
	}
	return 10 * mag
}

// GridTimes lists the non-negative multiples of step in [from, to).
func GridTimes(step, from, to float64) []float64 {
	if step <= 0 || to <= from {
		return nil
	}
	first := math.Ceil(math.Max(from, 0)/step - 1e-9)
	var out []float64
	for k := first; k*step < to; k++ {
		out = append(out, k*step)
	}
	return out
}

// SnapToEdge returns the edge nearest to t when it lies within SnapPixels
// at the current scale, and t unchanged otherwise. edges must be sorted.
func (v *View) SnapToEdge(t float64, edges []int64) float64 {
	if len(edges) == 0 {
		return t
	}
	i := sort.Search(len(edges), func(i int) bool { return float64(edges[i]) >= t })
	best, bestDist := -1, math.Inf(1)
	for _, j := range [2]int{i - 1, i} {
		if j < 0 || j >= len(edges) {
			continue
		}
		if d := math.Abs(float64(edges[j]) - t); d < bestDist {
			best, bestDist = j, d
		}
	}
	if bestDist <= SnapPixels/v.scale {
		return float64(edges[best])
	}
	return t
}
