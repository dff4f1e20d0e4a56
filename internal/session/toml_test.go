package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestExportImportMarkers(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out", "markers.toml")

	want := MarkerFile{
		Trace:      "/w/counter.vcd",
		Timescale:  "1ns",
		ExportedAt: time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC),
		Markers: []MarkerRecord{
			{ID: "a", Time: 5, Label: "rise", Color: "#FF5252"},
			{ID: "b", Time: 25, Label: "M2", Selected: true},
		},
	}
	if err := ExportMarkers(path, want); err != nil {
		t.Fatalf("ExportMarkers: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[[marker]]") {
		t.Errorf("expected array-of-tables markers, got:\n%s", data)
	}

	got, err := ImportMarkers(path)
	if err != nil {
		t.Fatalf("ImportMarkers: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("marker file mismatch (-want +got):\n%s", diff)
	}
}

func TestImportMarkersFillsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hand.toml")
	doc := `trace = "x.vcd"

[[marker]]
time = 10

[[marker]]
time = 20
label = "named"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	mf, err := ImportMarkers(path)
	if err != nil {
		t.Fatalf("ImportMarkers: %v", err)
	}
	if len(mf.Markers) != 2 {
		t.Fatalf("markers = %d, want 2", len(mf.Markers))
	}
	if mf.Markers[0].ID == "" || mf.Markers[0].ID == mf.Markers[1].ID {
		t.Errorf("IDs not generated: %+v", mf.Markers)
	}
	if mf.Markers[0].Label != "M1" || mf.Markers[1].Label != "named" {
		t.Errorf("labels = %q, %q", mf.Markers[0].Label, mf.Markers[1].Label)
	}
}

func TestImportMarkersErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name, doc, wantErr string
	}{
		{"malformed", "trace = [", "parsing"},
		{"negative time", "[[marker]]\ntime = -4\n", "negative time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(dir, tt.name+".toml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := ImportMarkers(path); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ImportMarkers error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	if _, err := ImportMarkers(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
