package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/vcdscope/internal/config"
	"github.com/papapumpkin/vcdscope/internal/session"
	"github.com/papapumpkin/vcdscope/internal/trace"
	"github.com/papapumpkin/vcdscope/internal/ui"
)

// errNoStore is returned by commands that need the session store when it is
// disabled.
var errNoStore = errors.New("session store is disabled (session_db is empty)")

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Manage the saved markers of a trace",
}

var markersListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List the saved markers of a trace",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkersList,
}

var markersExportCmd = &cobra.Command{
	Use:   "export <file> <out.toml>",
	Short: "Write the saved markers of a trace to a TOML file",
	Args:  cobra.ExactArgs(2),
	RunE:  runMarkersExport,
}

var markersImportCmd = &cobra.Command{
	Use:   "import <file> <in.toml>",
	Short: "Replace the saved markers of a trace with those in a TOML file",
	Long: `Replace the saved markers of a trace with those in a TOML file. Markers
beyond the end of the trace are moved to its last timestamp.`,
	Args: cobra.ExactArgs(2),
	RunE: runMarkersImport,
}

var forgetCmd = &cobra.Command{
	Use:   "forget <file>",
	Short: "Delete everything saved for a trace",
	Args:  cobra.ExactArgs(1),
	RunE:  runForget,
}

func init() {
	markersCmd.AddCommand(markersListCmd, markersExportCmd, markersImportCmd)
	rootCmd.AddCommand(markersCmd, forgetCmd)
}

// withStore loads config, parses the trace at path and opens the session
// store, then calls fn. The store is closed afterwards.
func withStore(cmd *cobra.Command, path string, fn func(ctx context.Context, store *session.Store, lt *loadedTrace) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lt, err := loadTrace(path, cfg, cliLogger(cfg))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return errNoStore
	}
	defer store.Close()
	return fn(ctx, store, lt)
}

// storedMarkers returns the saved markers of lt as trace markers, clamped to
// the trace.
func storedMarkers(ctx context.Context, store *session.Store, lt *loadedTrace) ([]*trace.Marker, error) {
	records, err := store.Markers(ctx, lt.Path)
	if err != nil {
		return nil, err
	}
	out := make([]*trace.Marker, 0, len(records))
	for _, r := range records {
		out = append(out, session.RestoreMarker(r, lt.Trace.MaxTimestamp))
	}
	return out, nil
}

func runMarkersList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, args[0], func(ctx context.Context, store *session.Store, lt *loadedTrace) error {
		markers, err := storedMarkers(ctx, store, lt)
		if err != nil {
			return err
		}
		ui.NewWriter(cmd.OutOrStdout()).Markers(markers, lt.View)
		return nil
	})
}

func runMarkersExport(cmd *cobra.Command, args []string) error {
	return withStore(cmd, args[0], func(ctx context.Context, store *session.Store, lt *loadedTrace) error {
		markers, err := storedMarkers(ctx, store, lt)
		if err != nil {
			return err
		}
		mf := session.MarkerFile{
			Trace:      lt.Path,
			Timescale:  lt.Trace.Timescale,
			ExportedAt: time.Now().UTC().Truncate(time.Second),
			Markers:    session.MarkerRecords(markers),
		}
		if err := session.ExportMarkers(args[1], mf); err != nil {
			return err
		}
		ui.New().Success(fmt.Sprintf("exported %d marker(s) to %s", len(markers), args[1]))
		return nil
	})
}

func runMarkersImport(cmd *cobra.Command, args []string) error {
	return withStore(cmd, args[0], func(ctx context.Context, store *session.Store, lt *loadedTrace) error {
		mf, err := session.ImportMarkers(args[1])
		if err != nil {
			return err
		}
		printer := ui.New()
		if mf.Timescale != "" && mf.Timescale != lt.Trace.Timescale {
			printer.Info(fmt.Sprintf("note: %s was exported from a %s trace, this one is %s",
				args[1], mf.Timescale, lt.Trace.Timescale))
		}

		markers := make([]*trace.Marker, 0, len(mf.Markers))
		for _, r := range mf.Markers {
			markers = append(markers, session.RestoreMarker(r, lt.Trace.MaxTimestamp))
		}
		records := session.MarkerRecords(markers)
		if err := store.ReplaceMarkers(ctx, lt.Path, records); err != nil {
			return err
		}
		printer.Success(fmt.Sprintf("imported %d marker(s) into %s", len(records), lt.Path))
		return nil
	})
}

func runForget(cmd *cobra.Command, args []string) error {
	return withStore(cmd, args[0], func(ctx context.Context, store *session.Store, lt *loadedTrace) error {
		if err := store.Forget(ctx, lt.Path); err != nil {
			return err
		}
		ui.New().Success("forgot saved session for " + lt.Path)
		return nil
	})
}
