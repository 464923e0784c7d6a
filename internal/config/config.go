package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/forgeworks/agent-hooks/internal/logging"
)

// Config is the application-level configuration, read from
// ~/.config/agent-hooks/config.yaml. Missing files or fields fall back
// to defaults; Load never fails.
type Config struct {
	Ntfy    NtfyConfig    `yaml:"ntfy"`
	History HistoryConfig `yaml:"history"`
}

// NtfyConfig configures the external notification bus.
type NtfyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Topic   string `yaml:"topic"`
	URL     string `yaml:"url"`
}

// HistoryConfig configures the chain-run history store.
type HistoryConfig struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}

func defaultConfig() *Config {
	return &Config{
		Ntfy: NtfyConfig{
			Enabled: false,
			Topic:   "",
			URL:     "https://ntfy.sh",
		},
		History: HistoryConfig{
			Enabled:       true,
			RetentionDays: 30,
		},
	}
}

// Load reads the application config, merging the file over defaults.
func Load() *Config {
	cfg := defaultConfig()

	configPath := filepath.Join(os.Getenv("HOME"), ".config", "agent-hooks", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		logging.NewLogger("config").WithField("error", err.Error()).
			Warn("Failed to parse config file, using defaults")
		return defaultConfig()
	}

	if cfg.Ntfy.URL == "" {
		cfg.Ntfy.URL = "https://ntfy.sh"
	}

	return cfg
}
