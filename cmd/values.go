package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/vcdscope/internal/config"
	"github.com/papapumpkin/vcdscope/internal/timeview"
	"github.com/papapumpkin/vcdscope/internal/trace"
	"github.com/papapumpkin/vcdscope/internal/ui"
)

var valuesCmd = &cobra.Command{
	Use:   "values <file>",
	Short: "Print every signal's value at one time",
	Long: `Print the value every signal holds at the given time. The time is a tick
count in the file's timescale, or a number with a unit such as 2.5us. Buses
are shown in hex where their bits allow it.`,
	Args: cobra.ExactArgs(1),
	RunE: runValues,
}

func init() {
	valuesCmd.Flags().String("at", "0", "time to sample (ticks, or a number with a unit)")
	rootCmd.AddCommand(valuesCmd)
}

func runValues(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lt, err := loadTrace(args[0], cfg, cliLogger(cfg))
	if err != nil {
		return err
	}

	at, _ := cmd.Flags().GetString("at")
	t, err := lt.View.ParseTime(at)
	if err != nil {
		return err
	}
	if t < 0 {
		return fmt.Errorf("time %q is before the start of the trace", at)
	}

	printer := ui.NewWriter(cmd.OutOrStdout())
	printer.Values(lt.View.FormatPreciseLabel(float64(t)), sampleValues(lt.Trace, lt.View, t))
	return nil
}

// sampleValues reads every signal at time t in canonical order.
func sampleValues(tr *trace.Trace, v *timeview.View, t int64) []ui.ValueRow {
	signals := tr.AllSignals()
	rows := make([]ui.ValueRow, 0, len(signals))
	for _, s := range signals {
		row := ui.ValueRow{Name: s.FullName()}
		if c, ok := tr.ValueAt(s, t); ok {
			row.Value = c.Value
			if !s.IsScalar() {
				row.Value = timeview.FormatBusValue(c.Value)
			}
			row.Since = v.FormatPreciseLabel(float64(c.Time))
		}
		rows = append(rows, row)
	}
	return rows
}
