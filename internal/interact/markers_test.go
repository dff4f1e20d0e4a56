package interact

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/vcdscope/internal/timeview"
	"github.com/papapumpkin/vcdscope/internal/trace"
)

func TestDeltas(t *testing.T) {
	t.Parallel()

	c, tr := newTestController(t)
	tr.Cursor.Time = 70
	a := trace.NewMarker(20, "A", "")
	b := trace.NewMarker(90, "B", "")
	tr.AddMarker(a)
	tr.AddMarker(b)

	if _, ok := c.CursorDelta(); ok {
		t.Error("CursorDelta with nothing selected should not be ok")
	}

	a.Selected = true
	if d, ok := c.CursorDelta(); !ok || d != 50 {
		t.Errorf("CursorDelta = %d, %v, want 50, true", d, ok)
	}
	if _, ok := c.MarkerPairDelta(); ok {
		t.Error("MarkerPairDelta with one selected should not be ok")
	}

	b.Selected = true
	if _, ok := c.CursorDelta(); ok {
		t.Error("CursorDelta with two selected should not be ok")
	}
	if d, ok := c.MarkerPairDelta(); !ok || d != 70 {
		t.Errorf("MarkerPairDelta = %d, %v, want 70, true", d, ok)
	}
}

func TestDeleteSelectedMarkers(t *testing.T) {
	t.Parallel()

	c, tr := newTestController(t)
	events := recordEvents(c)
	keep := trace.NewMarker(20, "keep", "")
	drop := trace.NewMarker(40, "drop", "")
	drop.Selected = true
	tr.AddMarker(keep)
	tr.AddMarker(drop)

	if n := c.DeleteSelectedMarkers(); n != 1 {
		t.Fatalf("removed %d, want 1", n)
	}
	if len(tr.Markers()) != 1 || tr.Markers()[0] != keep {
		t.Errorf("remaining markers = %v", tr.Markers())
	}
	if len(*events) != 1 || (*events)[0].Kind != MarkerRemoved {
		t.Errorf("events = %+v", *events)
	}
}

func TestAddMarkerAtCursor(t *testing.T) {
	t.Parallel()

	c, tr := newTestController(t)
	tr.Cursor.Time = 42
	m := c.AddMarkerAtCursor()
	if m.Time != 42 || m.Label != "M1" {
		t.Errorf("marker = %+v", m)
	}
}

func TestJumpToEdge(t *testing.T) {
	t.Parallel()

	c, tr := newTestController(t)
	var got []int64
	for c.JumpToEdge(true) {
		got = append(got, tr.Cursor.Time)
	}
	for c.JumpToEdge(false) {
		got = append(got, tr.Cursor.Time)
	}
	if diff := cmp.Diff([]int64{10, 50, 100, 50, 10}, got); diff != "" {
		t.Errorf("jump sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestJumpRevealsCursor(t *testing.T) {
	t.Parallel()

	tr := trace.New()
	s := trace.NewSignal("!", "clk", "", 1)
	s.AddChange(0, "0")
	s.AddChange(900, "1")
	tr.AddSignal(s)
	tr.UpdateMaxTimestamp(1000)
	c := New(tr, timeview.New(0, 0))
	c.SetViewport(100, 10)

	c.JumpToEdge(true)
	ox, _ := c.Offset()
	if px := 900; px < ox || px >= ox+100 {
		t.Errorf("cursor at pixel %d outside viewport [%d,%d)", px, ox, ox+100)
	}
}
