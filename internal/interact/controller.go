// Package interact turns pointer gestures into cursor, marker and scroll
// changes on a trace.
//
// The Controller owns no trace data. It mutates the Trace it was given
// through the trace's own operations and reads the time mapping from a
// timeview.View. Out-of-range coordinates are clamped, never rejected.
package interact

import (
	"fmt"
	"math"

	"github.com/papapumpkin/vcdscope/internal/timeview"
	"github.com/papapumpkin/vcdscope/internal/trace"
)

// DefaultHitPixels is how close a press must land to the cursor or a marker
// to grab it.
const DefaultHitPixels = 10

// EventKind classifies an Event.
type EventKind int

// Event kinds reported to an observer.
const (
	CursorMoved EventKind = iota
	MarkerAdded
	MarkerMoved
	MarkerRemoved
	MarkerToggled
)

var eventNames = [...]string{"cursor_moved", "marker_added", "marker_moved", "marker_removed", "marker_toggled"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

// Event describes a completed change. Marker is nil for cursor events.
type Event struct {
	Kind   EventKind
	Marker *trace.Marker
	Time   int64
}

// Controller interprets pointer input in viewport coordinates.
type Controller struct {
	tr   *trace.Trace
	view *timeview.View

	state State
	edges []int64 // edge cache for the drag in progress

	viewportW, viewportH int
	contentH             int
	scrollX, scrollY     float64 // fractions in [0,1]

	// HitPixels is the grab tolerance for the cursor and markers.
	HitPixels int

	observer func(Event)
}

// New returns an idle controller for tr drawn through view.
func New(tr *trace.Trace, view *timeview.View) *Controller {
	return &Controller{
		tr:        tr,
		view:      view,
		state:     Idle{},
		HitPixels: DefaultHitPixels,
	}
}

// Observe registers fn to receive an Event for every completed change.
func (c *Controller) Observe(fn func(Event)) {
	c.observer = fn
}

func (c *Controller) emit(e Event) {
	if c.observer != nil {
		c.observer(e)
	}
}

// SetTrace replaces the trace after a reload and abandons any gesture.
func (c *Controller) SetTrace(tr *trace.Trace) {
	c.tr = tr
	c.state = Idle{}
	c.edges = nil
}

// Trace returns the controlled trace.
func (c *Controller) Trace() *trace.Trace { return c.tr }

// State returns the current gesture state.
func (c *Controller) State() State { return c.state }

// SetViewport records the visible area size.
func (c *Controller) SetViewport(w, h int) {
	c.viewportW, c.viewportH = max(w, 0), max(h, 0)
}

// SetContentHeight records the full height of the drawn rows.
func (c *Controller) SetContentHeight(h int) {
	c.contentH = max(h, 0)
}

func (c *Controller) contentW() int {
	if c.tr == nil {
		return c.viewportW
	}
	return c.view.ContentWidth(c.tr.MaxTimestamp)
}

// Scroll returns the horizontal and vertical scroll fractions.
func (c *Controller) Scroll() (x, y float64) { return c.scrollX, c.scrollY }

// SetScroll sets both scroll fractions, clamped to [0,1].
func (c *Controller) SetScroll(x, y float64) {
	c.scrollX, c.scrollY = clamp01(x), clamp01(y)
}

// Offset returns the scroll position in pixels.
func (c *Controller) Offset() (x, y int) {
	overX := max(c.contentW()-c.viewportW, 0)
	overY := max(c.contentH-c.viewportH, 0)
	return int(math.Round(c.scrollX * float64(overX))), int(math.Round(c.scrollY * float64(overY)))
}

// ScrollBy moves the content by dx, dy pixels. An axis only scrolls when
// the content exceeds the viewport on it.
func (c *Controller) ScrollBy(dx, dy int) bool {
	changed := false
	if over := c.contentW() - c.viewportW; over > 0 && dx != 0 {
		x := clamp01(c.scrollX + float64(dx)/float64(over))
		changed = changed || x != c.scrollX
		c.scrollX = x
	}
	if over := c.contentH - c.viewportH; over > 0 && dy != 0 {
		y := clamp01(c.scrollY + float64(dy)/float64(over))
		changed = changed || y != c.scrollY
		c.scrollY = y
	}
	return changed
}

func (c *Controller) contentX(x int) int {
	ox, _ := c.Offset()
	return x + ox
}

func (c *Controller) near(px, cx int) bool {
	d := px - cx
	return d >= -c.HitPixels && d <= c.HitPixels
}

// PointerDown starts a gesture: grab the cursor, else the first marker
// under the pointer, else pan. Grabbing a marker toggles its selection.
func (c *Controller) PointerDown(x, y int, modifier bool) bool {
	if c.tr == nil {
		return false
	}
	if c.grab(c.contentX(x)) {
		return true
	}
	c.state = Panning{lastX: x, lastY: y}
	return false
}

func (c *Controller) grab(cx int) bool {
	cur := &c.tr.Cursor
	if cur.Visible && c.near(c.view.ToPixel(float64(cur.Time)), cx) {
		cur.Dragging = true
		c.edges = c.tr.AllEdges()
		c.state = DraggingCursor{from: cur.Time}
		return true
	}
	for _, m := range c.tr.Markers() {
		if !c.near(c.view.ToPixel(float64(m.Time)), cx) {
			continue
		}
		m.Selected = !m.Selected
		m.Dragging = true
		c.edges = c.tr.AllEdges()
		c.state = DraggingMarker{Marker: m, from: m.Time}
		c.emit(Event{Kind: MarkerToggled, Marker: m, Time: m.Time})
		return true
	}
	return false
}

// PointerMove drags whatever the gesture holds. Unless modifier is held,
// dragged times snap to nearby edges.
func (c *Controller) PointerMove(x, y int, modifier bool) bool {
	switch s := c.state.(type) {
	case DraggingCursor:
		t := c.timeAt(x, modifier)
		if t == c.tr.Cursor.Time {
			return false
		}
		c.tr.Cursor.Time = t
		return true
	case DraggingMarker:
		t := c.timeAt(x, modifier)
		if t == s.Marker.Time {
			return false
		}
		c.tr.SetMarkerTime(s.Marker, t)
		return true
	case Panning:
		c.state = Panning{lastX: x, lastY: y}
		return c.ScrollBy(s.lastX-x, s.lastY-y)
	case Idle:
		return false
	default:
		panic(fmt.Sprintf("interact: unhandled state %T", c.state))
	}
}

// PointerUp ends any gesture.
func (c *Controller) PointerUp(x, y int, modifier bool) bool {
	redraw := false
	switch s := c.state.(type) {
	case DraggingCursor:
		c.tr.Cursor.Dragging = false
		if c.tr.Cursor.Time != s.from {
			c.emit(Event{Kind: CursorMoved, Time: c.tr.Cursor.Time})
		}
		redraw = true
	case DraggingMarker:
		s.Marker.Dragging = false
		if s.Marker.Time != s.from {
			c.emit(Event{Kind: MarkerMoved, Marker: s.Marker, Time: s.Marker.Time})
		}
		redraw = true
	}
	c.state = Idle{}
	c.edges = nil
	return redraw
}

// DoubleClick adds a marker at the snapped pointer time. A double-click on
// the cursor or a marker grabs it instead.
func (c *Controller) DoubleClick(x, y int) bool {
	if c.tr == nil {
		return false
	}
	if c.grab(c.contentX(x)) {
		return true
	}
	c.edges = c.tr.AllEdges()
	t := c.timeAt(x, false)
	c.edges = nil
	c.state = Idle{}
	c.addMarker(t)
	return true
}

// timeAt converts a viewport x to a trace time clamped to the trace, snapped
// to the cached edges unless free is set.
func (c *Controller) timeAt(x int, free bool) int64 {
	maxT := float64(c.tr.MaxTimestamp)
	t := clamp(c.view.ToTime(c.contentX(x)), 0, maxT)
	if !free {
		t = clamp(c.view.SnapToEdge(t, c.edges), 0, maxT)
	}
	return int64(math.Round(t))
}

// Reveal scrolls horizontally so that time t is inside the viewport.
func (c *Controller) Reveal(t int64) {
	over := c.contentW() - c.viewportW
	if over <= 0 {
		return
	}
	px := c.view.ToPixel(float64(t))
	ox, _ := c.Offset()
	switch {
	case px < ox+c.view.Margin():
		ox = px - c.view.Margin()
	case px >= ox+c.viewportW:
		ox = px - c.viewportW + 1
	default:
		return
	}
	c.scrollX = clamp01(float64(ox) / float64(over))
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 1)
}
