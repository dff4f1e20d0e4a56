// Package telemetry appends viewer events to a JSONL journal: trace loads
// and failures, marker edits and zoom changes. The journal is optional; a
// nil *Emitter accepts and drops everything.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of journal record.
const (
	KindTraceLoaded   = "trace_loaded"
	KindLoadFailed    = "load_failed"
	KindMarkerAdded   = "marker_added"
	KindMarkerMoved   = "marker_moved"
	KindMarkerRemoved = "marker_removed"
	KindZoomChanged   = "zoom_changed"
)

// Event is a single journal record. File is the trace the event concerns.
// Marker is the label of the affected marker when there is one; marker
// events carry the marker's ID and time in Data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	File      string    `json:"file,omitempty"`
	Marker    string    `json:"marker,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes events to a JSONL file. It is safe for concurrent use.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
	now  func() time.Time
}

// NewEmitter opens path for appending, creating it if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// Emit writes evt as one line. A zero Timestamp is filled in.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now()
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record is shorthand for emitting a freshly stamped event.
func (e *Emitter) Record(kind, file string, data any) error {
	return e.Emit(Event{Kind: kind, File: file, Data: data})
}

// Close closes the journal file.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
