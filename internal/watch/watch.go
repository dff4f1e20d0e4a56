// Package watch reports when a trace file changes on disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long a file must stay quiet before a change is
// reported. Simulators often write a dump in many small chunks.
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // written, created or replaced
	ChangeRemoved                    // gone from disk
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is a debounced notification for the watched file.
type Change struct {
	Kind ChangeKind
	Path string
}

// Watcher monitors a single file. It watches the file's directory so that
// editors and simulators that replace the file by rename are still seen.
type Watcher struct {
	Path    string
	Changes <-chan Change // Read-only external channel

	// Debounce is read by Start; zero means DefaultDebounce.
	Debounce time.Duration

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
	logger  zerolog.Logger
}

// New creates a watcher for the file at path.
func New(path string, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	// One slot: a pending notification already covers any later change.
	ch := make(chan Change, 1)
	return &Watcher{
		Path:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
		logger:  logger,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(w.Path), err)
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	go w.loop(debounce)
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop(debounce time.Duration) {
	defer close(w.done)

	var last time.Time // zero when nothing is pending
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				last = time.Now()
			}

		case <-ticker.C:
			if !last.IsZero() && time.Since(last) >= debounce {
				last = time.Time{}
				w.emit()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event may still arrive.
			w.logger.Warn().Err(err).Str("path", w.Path).Msg("watch: fsnotify error")
		}
	}
}

func (w *Watcher) emit() {
	kind := ChangeModified
	if _, err := os.Stat(w.Path); os.IsNotExist(err) {
		kind = ChangeRemoved
	}
	select {
	case w.changes <- Change{Kind: kind, Path: w.Path}:
		w.logger.Debug().Str("path", w.Path).Stringer("kind", kind).Msg("watch: change")
	default:
		// A notification is already pending.
	}
}
