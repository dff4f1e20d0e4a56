package trace

import (
	"sort"

	"github.com/google/uuid"
)

// DefaultMarkerColor is the color given to markers created without one.
const DefaultMarkerColor = "#FF5252"

// Marker is a user-placed, labelled point in time.
type Marker struct {
	ID       string
	Time     int64
	Label    string
	Color    string
	Selected bool
	Dragging bool
}

// NewMarker creates an unselected marker with a fresh ID. An empty color
// falls back to DefaultMarkerColor.
func NewMarker(t int64, label, color string) *Marker {
	if color == "" {
		color = DefaultMarkerColor
	}
	if t < 0 {
		t = 0
	}
	return &Marker{
		ID:    uuid.NewString(),
		Time:  t,
		Label: label,
		Color: color,
	}
}

// Cursor is the single movable time cursor of a trace.
type Cursor struct {
	Time     int64
	Visible  bool
	Dragging bool
}

// sortMarkers orders markers ascending by time. The sort is stable so markers
// sharing a timestamp keep their relative order.
func sortMarkers(ms []*Marker) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Time < ms[j].Time })
}
