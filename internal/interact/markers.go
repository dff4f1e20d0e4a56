package interact

import (
	"fmt"

	"github.com/papapumpkin/vcdscope/internal/trace"
)

func (c *Controller) addMarker(t int64) *trace.Marker {
	m := trace.NewMarker(t, fmt.Sprintf("M%d", len(c.tr.Markers())+1), "")
	c.tr.AddMarker(m)
	c.emit(Event{Kind: MarkerAdded, Marker: m, Time: m.Time})
	return m
}

// AddMarkerAtCursor drops a marker where the cursor is.
func (c *Controller) AddMarkerAtCursor() *trace.Marker {
	if c.tr == nil {
		return nil
	}
	return c.addMarker(c.tr.Cursor.Time)
}

// DeleteSelectedMarkers removes every selected marker and returns how many
// were removed.
func (c *Controller) DeleteSelectedMarkers() int {
	if c.tr == nil {
		return 0
	}
	if s, ok := c.state.(DraggingMarker); ok && s.Marker.Selected {
		c.state = Idle{}
	}
	n := 0
	for _, m := range c.tr.SelectedMarkers() {
		if c.tr.RemoveMarker(m) {
			n++
			c.emit(Event{Kind: MarkerRemoved, Marker: m, Time: m.Time})
		}
	}
	return n
}

// JumpToEdge moves the cursor to the next (or previous) edge of a visible
// signal and scrolls it into view.
func (c *Controller) JumpToEdge(forward bool) bool {
	if c.tr == nil {
		return false
	}
	cur := c.tr.Cursor.Time
	edges := c.tr.AllEdges()
	target, found := int64(0), false
	if forward {
		for _, e := range edges {
			if e > cur {
				target, found = e, true
				break
			}
		}
	} else {
		for i := len(edges) - 1; i >= 0; i-- {
			if edges[i] < cur {
				target, found = edges[i], true
				break
			}
		}
	}
	if !found {
		return false
	}
	c.tr.Cursor.Time = target
	c.tr.Cursor.Visible = true
	c.Reveal(target)
	c.emit(Event{Kind: CursorMoved, Time: target})
	return true
}

// CursorDelta is the distance between the cursor and the only selected
// marker. ok is false unless exactly one marker is selected.
func (c *Controller) CursorDelta() (delta int64, ok bool) {
	if c.tr == nil {
		return 0, false
	}
	sel := c.tr.SelectedMarkers()
	if len(sel) != 1 {
		return 0, false
	}
	return abs(c.tr.Cursor.Time - sel[0].Time), true
}

// MarkerPairDelta is the distance between the first two selected markers in
// list order. ok is false with fewer than two selected.
func (c *Controller) MarkerPairDelta() (delta int64, ok bool) {
	if c.tr == nil {
		return 0, false
	}
	sel := c.tr.SelectedMarkers()
	if len(sel) < 2 {
		return 0, false
	}
	return abs(sel[1].Time - sel[0].Time), true
}
