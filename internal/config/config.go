// Package config loads application configuration from
// ~/.insight-engine/config.yaml with INSIGHT_ENGINE_* environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Flags override env, env
// overrides file, file overrides defaults.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
	// Journal is the default journal name when none is given.
	Journal string `mapstructure:"journal" yaml:"journal"`
	// Timezone aligns calendar windows; IANA name, default UTC.
	Timezone string        `mapstructure:"timezone" yaml:"timezone"`
	Logging  LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
	// Format is "console" or "json".
	Format string `mapstructure:"format" yaml:"format"`
}

// Dir returns the configuration directory (~/.insight-engine).
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".insight-engine")
}

// DefaultDBPath is where the database lives unless configured otherwise.
func DefaultDBPath() string {
	return filepath.Join(Dir(), "insights.db")
}

// Load reads configuration. A missing config file is not an error; defaults
// and environment variables still apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())

	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("journal", "default")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("INSIGHT_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Save writes the config file, creating the directory if needed.
func Save(c *Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(Dir(), "config.yaml"), b, 0o644)
}
