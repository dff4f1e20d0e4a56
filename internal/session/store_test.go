package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/vcdscope/internal/trace"
)

// testStore creates a temporary session store and registers cleanup.
func testStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "session.db")
	s, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open(%q): %v", dbPath, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestTrace() *trace.Trace {
	tr := trace.New()
	for _, s := range []*trace.Signal{
		trace.NewSignal("!", "clk", "top", 1),
		trace.NewSignal("\"", "data", "top", 8),
		trace.NewSignal("#", "rst", "", 1),
	} {
		s.AddChange(0, "0")
		tr.AddSignal(s)
	}
	tr.UpdateMaxTimestamp(100)
	return tr
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("WAL and tables", func(t *testing.T) {
		t.Parallel()
		s := testStore(t)

		var mode string
		if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("query journal_mode: %v", err)
		}
		if mode != "wal" {
			t.Errorf("journal_mode = %q, want %q", mode, "wal")
		}

		tables := map[string]bool{"traces": false, "markers": false, "signal_prefs": false}
		rows, err := s.db.Query("SELECT name FROM sqlite_master WHERE type='table'")
		if err != nil {
			t.Fatalf("query sqlite_master: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatalf("scan table name: %v", err)
			}
			tables[name] = true
		}
		for name, found := range tables {
			if !found {
				t.Errorf("table %q not created", name)
			}
		}
	})

	t.Run("idempotent schema", func(t *testing.T) {
		t.Parallel()
		dbPath := filepath.Join(t.TempDir(), "twice.db")
		for i := 0; i < 2; i++ {
			s, err := Open(context.Background(), dbPath)
			if err != nil {
				t.Fatalf("open %d: %v", i, err)
			}
			s.Close()
		}
	})
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	s := testStore(t)

	if _, err := s.Load(context.Background(), "/nope.vcd"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load error = %v, want ErrNotFound", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	want := State{
		TimeBase: "ps",
		Cursor:   42,
		Markers: []MarkerRecord{
			{ID: "a", Time: 10, Label: "M1", Color: "#FF5252"},
			{ID: "b", Time: 70, Label: "edge", Color: "#FFFFFF", Selected: true},
		},
		Signals: []SignalPref{
			{Name: "top.data", Visible: true, Color: "#00E676"},
			{Name: "top.clk", Visible: false, Color: "#FFAA00"},
		},
	}
	if err := s.Save(ctx, "/w/a.vcd", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx, "/w/a.vcd")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	// A second save replaces, not appends.
	want.Markers = want.Markers[:1]
	want.Signals = nil
	if err := s.Save(ctx, "/w/a.vcd", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = s.Load(ctx, "/w/a.vcd")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state after resave mismatch (-want +got):\n%s", diff)
	}
}

func TestStatesAreKeyedByPath(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "/a.vcd", State{TimeBase: "ns", Markers: []MarkerRecord{{ID: "x", Time: 1, Label: "A"}}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "/b.vcd", State{TimeBase: "us"}); err != nil {
		t.Fatal(err)
	}
	b, err := s.Load(ctx, "/b.vcd")
	if err != nil {
		t.Fatal(err)
	}
	if b.TimeBase != "us" || len(b.Markers) != 0 {
		t.Errorf("b state = %+v", b)
	}

	if err := s.Forget(ctx, "/a.vcd"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, "/a.vcd"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Forget error = %v", err)
	}
	ms, err := s.Markers(ctx, "/a.vcd")
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 0 {
		t.Errorf("markers survived Forget: %+v", ms)
	}
}

func TestReplaceMarkers(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "/a.vcd", State{TimeBase: "ps", Cursor: 9}); err != nil {
		t.Fatal(err)
	}
	ms := []MarkerRecord{{ID: "m2", Time: 50, Label: "late"}, {ID: "m1", Time: 5, Label: "early"}}
	if err := s.ReplaceMarkers(ctx, "/a.vcd", ms); err != nil {
		t.Fatalf("ReplaceMarkers: %v", err)
	}
	// A marker ID moving to another trace is reassigned, not duplicated.
	if err := s.ReplaceMarkers(ctx, "/new.vcd", ms[:1]); err != nil {
		t.Fatalf("ReplaceMarkers new trace: %v", err)
	}

	st, err := s.Load(ctx, "/a.vcd")
	if err != nil {
		t.Fatal(err)
	}
	if st.TimeBase != "ps" || st.Cursor != 9 {
		t.Errorf("ReplaceMarkers touched other state: %+v", st)
	}
	var labels []string
	for _, m := range st.Markers {
		labels = append(labels, m.Label)
	}
	if diff := cmp.Diff([]string{"early"}, labels); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}

	moved, err := s.Markers(ctx, "/new.vcd")
	if err != nil {
		t.Fatal(err)
	}
	if len(moved) != 1 || moved[0].ID != "m2" {
		t.Errorf("moved markers = %+v", moved)
	}
}

func TestCaptureRestore(t *testing.T) {
	t.Parallel()

	src := newTestTrace()
	src.TimeBase = "us"
	src.Cursor.Time = 60
	src.SignalByName("top.clk").Visible = false
	src.SignalByName("rst").Color = "#123456"
	src.MoveSignal("rst", 2)
	m := trace.NewMarker(80, "M1", "")
	m.Selected = true
	src.AddMarker(m)

	st := Capture(src)

	dst := newTestTrace()
	Restore(dst, st)

	if dst.TimeBase != "us" || dst.Cursor.Time != 60 {
		t.Errorf("time base %q cursor %d", dst.TimeBase, dst.Cursor.Time)
	}
	if dst.SignalByName("top.clk").Visible {
		t.Error("clk should be hidden")
	}
	if dst.SignalByName("rst").Color != "#123456" {
		t.Error("rst color not restored")
	}
	if diff := cmp.Diff(src.DisplayOrder(), dst.DisplayOrder()); diff != "" {
		t.Errorf("display order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(src.Markers(), dst.Markers()); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}
}

func TestRestoreClampsAndIgnoresUnknown(t *testing.T) {
	t.Parallel()

	tr := newTestTrace()
	Restore(tr, State{
		Cursor: 500,
		Markers: []MarkerRecord{
			{ID: "far", Time: 1000, Label: "far"},
			{Time: 20, Label: "near"},
		},
		Signals: []SignalPref{
			{Name: "gone.sig", Visible: false},
			{Name: "top.data", Visible: false},
		},
	})

	if tr.TimeBase != trace.TimeBaseAuto {
		t.Errorf("empty saved time base should keep the default, got %q", tr.TimeBase)
	}
	if tr.Cursor.Time != 100 {
		t.Errorf("cursor = %d, want clamped 100", tr.Cursor.Time)
	}
	ms := tr.Markers()
	if len(ms) != 2 || ms[0].Label != "near" || ms[1].Time != 100 || ms[1].ID != "far" {
		t.Errorf("markers = %+v", ms)
	}
	if ms[0].ID == "" {
		t.Error("marker without saved ID should get a fresh one")
	}
	if tr.SignalByName("top.data").Visible {
		t.Error("data should be hidden")
	}
	if tr.DisplayOrder()[0] != "top.data" {
		t.Errorf("display order = %v", tr.DisplayOrder())
	}
}
