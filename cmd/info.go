package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/vcdscope/internal/config"
	"github.com/papapumpkin/vcdscope/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarize a VCD file",
	Long: `Print the timescale, end time and signal, change and scope counts of a
VCD file followed by its scope tree. With --diagnostics every line the parser
skipped is listed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Bool("diagnostics", false, "list skipped lines")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lt, err := loadTrace(args[0], cfg, cliLogger(cfg))
	if err != nil {
		return err
	}
	fi, err := os.Stat(lt.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", lt.Path, err)
	}

	printer := ui.NewWriter(cmd.OutOrStdout())
	printer.TraceInfo(ui.TraceInfoData{
		Path:        lt.Path,
		Size:        fi.Size(),
		ModTime:     fi.ModTime(),
		Trace:       lt.Trace,
		View:        lt.View,
		Diagnostics: len(lt.Diagnostics),
	})
	if showDiags, _ := cmd.Flags().GetBool("diagnostics"); showDiags {
		printer.Diagnostics(lt.Diagnostics)
	}
	return nil
}
