package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
)

// MarkerFile is the TOML document written by ExportMarkers.
type MarkerFile struct {
	Trace      string         `toml:"trace"`
	Timescale  string         `toml:"timescale,omitempty"`
	ExportedAt time.Time      `toml:"exported_at"`
	Markers    []MarkerRecord `toml:"marker"`
}

// ExportMarkers writes mf to path, creating parent directories as needed.
func ExportMarkers(path string, mf MarkerFile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(mf)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ImportMarkers reads a marker file. Markers without an ID get a fresh one
// and markers without a label are numbered "M<n>" in file order.
func ImportMarkers(path string) (MarkerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MarkerFile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var mf MarkerFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return MarkerFile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i := range mf.Markers {
		m := &mf.Markers[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.Label == "" {
			m.Label = fmt.Sprintf("M%d", i+1)
		}
		if m.Time < 0 {
			return MarkerFile{}, fmt.Errorf("parsing %s: marker %q has negative time %d", path, m.Label, m.Time)
		}
	}
	return mf, nil
}
