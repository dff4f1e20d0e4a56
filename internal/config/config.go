package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/papapumpkin/vcdscope/internal/timeview"
)

// ErrInvalid is wrapped by every validation failure from Load.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all runtime configuration for a vcdscope session.
// Values are populated from .vcdscope.yaml, VCDSCOPE_* env vars, and CLI flags.
type Config struct {
	Margin     int    `mapstructure:"margin"`
	RightPad   int    `mapstructure:"right_pad"`
	TimeBase   string `mapstructure:"time_base"`
	SessionDB  string `mapstructure:"session_db"`
	Watch      bool   `mapstructure:"watch"`
	LogFile    string `mapstructure:"log_file"`
	LogLevel   string `mapstructure:"log_level"`
	EventsFile string `mapstructure:"events_file"`
	Verbose    bool   `mapstructure:"verbose"`
	DumpValues bool   `mapstructure:"dump_values"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("margin", 24)
	viper.SetDefault("right_pad", 4)
	viper.SetDefault("time_base", timeview.TimeBaseAuto)
	viper.SetDefault("session_db", "~/.vcdscope/session.db")
	viper.SetDefault("watch", true)
	viper.SetDefault("log_file", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("events_file", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("dump_values", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Margin < 0 {
		return fmt.Errorf("%w: margin must be >= 0, got %d", ErrInvalid, c.Margin)
	}
	if c.RightPad < 0 {
		return fmt.Errorf("%w: right_pad must be >= 0, got %d", ErrInvalid, c.RightPad)
	}
	if _, _, err := timeview.ParseTimeBase(c.TimeBase); err != nil {
		return fmt.Errorf("%w: time_base: %v", ErrInvalid, err)
	}
	return nil
}

// SessionPath returns the session database path with a leading ~ expanded.
// An empty result means persistence is disabled, which "none" also asks for.
func (c Config) SessionPath() (string, error) {
	if strings.EqualFold(c.SessionDB, "none") {
		return "", nil
	}
	return expandHome(c.SessionDB)
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
