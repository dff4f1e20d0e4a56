package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/vcdscope/internal/config"
	"github.com/papapumpkin/vcdscope/internal/logging"
	"github.com/papapumpkin/vcdscope/internal/telemetry"
	"github.com/papapumpkin/vcdscope/internal/tui"
	"github.com/papapumpkin/vcdscope/internal/ui"
	"github.com/papapumpkin/vcdscope/internal/watch"
)

// viewCmd opens the interactive waveform viewer.
var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open a VCD file in the waveform viewer",
	Long: `Open a VCD file in the interactive viewer. Markers, signal order,
visibility and the cursor position are restored from the session store and
saved again as they change. The file is reloaded when it changes on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().Int("margin", 24, "width of the signal name column")
	viewCmd.Flags().String("time-base", "", "display time base (auto, fs, ps, ns, us, ms, s)")
	viewCmd.Flags().Bool("no-watch", false, "do not reload the file when it changes")
	_ = viper.BindPFlag("margin", viewCmd.Flags().Lookup("margin"))
	_ = viper.BindPFlag("time_base", viewCmd.Flags().Lookup("time-base"))
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	printer := ui.New()

	if !isStderrTTY() {
		return fmt.Errorf("vcdscope view requires a TTY (terminal)")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch = false
	}

	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := cmd.Context()
	opts := tui.Options{
		Path:     args[0],
		Margin:   cfg.Margin,
		RightPad: cfg.RightPad,
		TimeBase: cfg.TimeBase,
		Logger:   logger,

		DumpValues: cfg.DumpValues,
	}

	// A broken session store should not keep the file from opening.
	store, err := openStore(ctx, cfg)
	if err != nil {
		printer.Error(fmt.Sprintf("%v (continuing without saved sessions)", err))
		logger.Warn().Err(err).Msg("session store unavailable")
	}
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	if cfg.EventsFile != "" {
		journal, err := telemetry.NewEmitter(cfg.EventsFile)
		if err != nil {
			return err
		}
		defer journal.Close()
		opts.Journal = journal
	}

	if cfg.Watch {
		w, err := startWatcher(args[0], logger)
		if err != nil {
			printer.Error(fmt.Sprintf("%v (reload on change disabled)", err))
		} else {
			defer w.Stop()
			opts.Watcher = w
		}
	}

	return tui.Run(ctx, opts)
}

func startWatcher(path string, logger zerolog.Logger) (*watch.Watcher, error) {
	w, err := watch.New(path, logger)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}
