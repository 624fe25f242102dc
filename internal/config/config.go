// Package config loads the application configuration from a YAML file and
// environment variables via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appDirName = "nowplaying"

	// minPollIntervalMs is the floor for the watch-mode poll interval.
	// Polling faster than this hammers the platform media services for no
	// visible benefit.
	minPollIntervalMs = 250

	defaultPollIntervalMs = 2000
)

// Config holds all application configuration.
type Config struct {
	PollIntervalMs int    `mapstructure:"poll_interval_ms"`
	Format         string `mapstructure:"format"`
	HelperPath     string `mapstructure:"helper_path"`
}

// PollInterval returns the configured watch-mode poll interval, clamped to
// the minimum.
func (c Config) PollInterval() time.Duration {
	ms := c.PollIntervalMs
	if ms < minPollIntervalMs {
		ms = minPollIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

// Load reads configuration from dir/config.yaml plus NOWPLAYING_* environment
// variables. An empty dir means the per-user config directory. A missing
// config file is not an error; a malformed one is.
func Load(dir string) (Config, error) {
	v := viper.New()

	v.SetDefault("poll_interval_ms", defaultPollIntervalMs)
	v.SetDefault("format", "text")
	v.SetDefault("helper_path", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err == nil {
			dir = filepath.Join(configDir, appDirName)
		}
	}
	if dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("NOWPLAYING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
