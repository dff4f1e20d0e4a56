package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "vcdscope [file]",
	Short: "Terminal waveform viewer for VCD traces",
	Long: `vcdscope renders the value-change dumps written by hardware simulators
as waveforms in the terminal, with a draggable time cursor, named markers
and per-signal display settings that persist between sessions.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRootDefault,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .vcdscope.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("session-db", "", "session database (default ~/.vcdscope/session.db, \"none\" disables)")
	pf.String("log-file", "", "write logs to this file")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.String("events-file", "", "append viewer events to this JSONL file")

	for key, flag := range map[string]string{
		"verbose":     "verbose",
		"session_db":  "session-db",
		"log_file":    "log-file",
		"log_level":   "log-level",
		"events_file": "events-file",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".vcdscope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("VCDSCOPE")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// runRootDefault opens the viewer on the given file, or shows help when
// there is none.
func runRootDefault(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	// cobra only hands a context to the command it executes.
	viewCmd.SetContext(cmd.Context())
	return runView(viewCmd, args)
}
