// ABOUTME: viper-backed configuration: defaults, an optional YAML file and YOROOL_* environment overrides.
// ABOUTME: Defaults and Save back `yorool config init`, which writes a starter config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/2389-research/yorool/router"
)

// EnvPrefix prefixes every environment override, e.g. YOROOL_ROUTER_MAX_TICKS.
const EnvPrefix = "YOROOL"

// Config holds application configuration.
type Config struct {
	Router RouterConfig `mapstructure:"router"`
	Trace  TraceConfig  `mapstructure:"trace"`
	TUI    TUIConfig    `mapstructure:"tui"`
}

// RouterConfig holds the budgets and contract policy of every router the
// application creates.
type RouterConfig struct {
	MaxTicks        int  `mapstructure:"max_ticks"`
	MaxStall        int  `mapstructure:"max_stall"`
	StrictContracts bool `mapstructure:"strict_contracts"`
}

// TraceConfig selects the trace sinks. An empty Dir means the data directory.
type TraceConfig struct {
	Dir    string `mapstructure:"dir"`
	JSONL  bool   `mapstructure:"jsonl"`
	SQLite bool   `mapstructure:"sqlite"`
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	LogLines int `mapstructure:"log_lines"`
}

// DefaultPath returns $XDG_CONFIG_HOME/yorool/config.yaml or its platform
// equivalent, or "" when no config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "yorool", "config.yaml")
}

// Defaults returns the built-in configuration, ignoring files and environment.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(fmt.Sprintf("config: unmarshal defaults: %v", err))
	}
	return c
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("router.max_ticks", router.DefaultMaxTicks)
	v.SetDefault("router.max_stall", router.DefaultMaxStall)
	v.SetDefault("router.strict_contracts", false)
	v.SetDefault("trace.dir", "")
	v.SetDefault("trace.jsonl", true)
	v.SetDefault("trace.sqlite", false)
	v.SetDefault("tui.log_lines", 200)
}

// Load reads configuration. An explicit path must exist; otherwise
// YOROOL_CONFIG and then DefaultPath are tried and a missing file is fine.
func Load(path string) (Config, error) {
	v := newViper()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPrefix + "_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects budgets the router cannot honour.
func (c Config) Validate() error {
	if c.Router.MaxTicks <= 0 {
		return fmt.Errorf("router.max_ticks must be positive, got %d", c.Router.MaxTicks)
	}
	if c.Router.MaxStall <= 0 {
		return fmt.Errorf("router.max_stall must be positive, got %d", c.Router.MaxStall)
	}
	if c.TUI.LogLines < 0 {
		return fmt.Errorf("tui.log_lines must not be negative, got %d", c.TUI.LogLines)
	}
	return nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("router.max_ticks", cfg.Router.MaxTicks)
	v.Set("router.max_stall", cfg.Router.MaxStall)
	v.Set("router.strict_contracts", cfg.Router.StrictContracts)
	v.Set("trace.dir", cfg.Trace.Dir)
	v.Set("trace.jsonl", cfg.Trace.JSONL)
	v.Set("trace.sqlite", cfg.Trace.SQLite)
	v.Set("tui.log_lines", cfg.TUI.LogLines)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
