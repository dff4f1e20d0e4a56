package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/vcdscope/internal/config"
	"github.com/papapumpkin/vcdscope/internal/telemetry"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "View the viewer's JSONL event journal",
	Long: `Reads and formats the JSONL event journal written by the viewer when
events_file is set: trace loads and failures, marker edits and zoom changes.

With --follow (-f), watches the file for new events (like tail -f).`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().String("file", "", "journal to read (default: events_file from config)")
	journalCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	follow, _ := cmd.Flags().GetBool("follow")

	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path = cfg.EventsFile
	}
	if path == "" {
		return errors.New("journal: no journal configured (set events_file or pass --file)")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("journal: open %s: %w", path, err)
	}
	defer f.Close()

	w := cmd.OutOrStdout()
	emit := func(line string) { printEvent(w, line) }
	lines := &lineSplitter{r: f}
	if err := lines.drain(emit); err != nil {
		return fmt.Errorf("journal: read %s: %w", path, err)
	}
	if !follow {
		// Nothing more is coming, so an unterminated last line is complete.
		if rest := lines.rest(); rest != "" {
			emit(rest)
		}
		return nil
	}
	return followJournal(cmd.Context(), path, lines, emit)
}

// followJournal prints events appended to path until ctx is done.
func followJournal(ctx context.Context, path string, lines *lineSplitter, emit func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("journal: create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("journal: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) {
				continue
			}
			if err := lines.drain(emit); err != nil {
				return fmt.Errorf("journal: read %s: %w", path, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("journal: watch %s: %w", path, err)
		}
	}
}

// lineSplitter cuts a growing file into lines. A line the writer has not
// finished yet is held back until its newline arrives.
type lineSplitter struct {
	r       io.Reader
	partial []byte
}

// drain reads up to the current end of input and calls fn for every
// complete, non-blank line.
func (s *lineSplitter) drain(fn func(string)) error {
	buf := make([]byte, 32<<10)
	for {
		n, err := s.r.Read(buf)
		s.partial = append(s.partial, buf[:n]...)
		for {
			i := bytes.IndexByte(s.partial, '\n')
			if i < 0 {
				break
			}
			if line := strings.TrimSpace(string(s.partial[:i])); line != "" {
				fn(line)
			}
			s.partial = s.partial[i+1:]
		}
		switch {
		case errors.Is(err, io.EOF):
			s.partial = bytes.Clone(s.partial)
			return nil
		case err != nil:
			return err
		}
	}
}

// rest returns the held back text of an unfinished line.
func (s *lineSplitter) rest() string {
	return strings.TrimSpace(string(s.partial))
}

// printEvent decodes a JSONL line and prints a human-readable representation.
func printEvent(w io.Writer, line string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}

	ts := evt.Timestamp.Format(time.TimeOnly)
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", ts))
	parts = append(parts, evt.Kind)

	if evt.File != "" {
		parts = append(parts, fmt.Sprintf("file=%s", filepath.Base(evt.File)))
	}
	if evt.Marker != "" {
		parts = append(parts, fmt.Sprintf("marker=%s", evt.Marker))
	}
	if evt.Data != nil {
		if m, ok := evt.Data.(map[string]any); ok {
			parts = append(parts, formatDataMap(m))
		} else {
			data, _ := json.Marshal(evt.Data)
			parts = append(parts, string(data))
		}
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
}

// formatDataMap formats a data map as key=value pairs sorted by key.
func formatDataMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, m[k])
	}
	return b.String()
}
