// Package config loads Jubiland settings from defaults, an optional .env
// file, JUBILAND_* environment variables and bound command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/unowned-ai/jubiland/pkg/db"
)

const EnvPrefix = "JUBILAND"

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	DataDir string    `mapstructure:"data_dir"`
	Backend string    `mapstructure:"backend"`
	DBPath  string    `mapstructure:"db_path"`
	WAL     bool      `mapstructure:"wal"`
	Sync    string    `mapstructure:"sync"`
	Log     LogConfig `mapstructure:"log"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration through v. Flags bound to v before the call take
// precedence over the environment, which takes precedence over defaults.
func Load(v *viper.Viper) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Backend = strings.ToLower(cfg.Backend)
	cfg.Sync = strings.ToUpper(cfg.Sync)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("backend", BackendJSON)
	v.SetDefault("db_path", "")
	v.SetDefault("wal", false)
	v.SetDefault("sync", "FULL")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}

	if !db.ValidSyncMode(c.Sync) {
		return fmt.Errorf("invalid sync mode %q (want OFF, NORMAL, FULL or EXTRA)", c.Sync)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (want console or json)", c.Log.Format)
	}

	return nil
}
