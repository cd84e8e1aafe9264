package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/funil/internal/config/colors"
)

const (
	DefaultServerURL    = "http://127.0.0.1:5000"
	DefaultListenAddr   = "127.0.0.1:5000"
	DefaultPollInterval = 30 * time.Second
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig       `yaml:"server"`
	Sync        SyncConfig         `yaml:"sync"`
	Log         LogConfig          `yaml:"log"`
	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// ServerConfig locates the pipeline server and its storage
type ServerConfig struct {
	URL      string `yaml:"url"`      // used by the board and card commands
	Listen   string `yaml:"listen"`   // used by serve
	Database string `yaml:"database"` // empty means ~/.funil/funil.db
	Socket   string `yaml:"socket"`   // empty means ~/.funil/funil.sock
}

// SyncConfig controls board refreshes and banner lifetimes
type SyncConfig struct {
	PollEnabled     bool          `yaml:"poll_enabled"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	LiveUpdates     *bool         `yaml:"live_updates"`
	SuccessDuration time.Duration `yaml:"success_duration"`
	ErrorDuration   time.Duration `yaml:"error_duration"`
	InfoDuration    time.Duration `yaml:"info_duration"`
}

// LiveUpdatesEnabled reports whether the board should connect to the push hub
func (s SyncConfig) LiveUpdatesEnabled() bool {
	return s.LiveUpdates == nil || *s.LiveUpdates
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile merges the theme from FUNIL_THEME_FILE, if set
func loadThemeFile(config *Config) error {
	themeFile := os.Getenv("FUNIL_THEME_FILE")
	if themeFile == "" {
		return nil
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return fmt.Errorf("failed to read theme file: %w", err)
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}
	if err := yaml.Unmarshal(themeData, &themeConfig); err != nil {
		return fmt.Errorf("failed to parse theme file %s: %w", themeFile, err)
	}

	config.ColorScheme.MergeFrom(themeConfig.Theme)
	return nil
}

// applyEnv applies environment overrides. NO_COLOR replaces the whole
// theme with the monochrome preset.
func (c *Config) applyEnv() {
	if url := os.Getenv("FUNIL_SERVER_URL"); url != "" {
		c.Server.URL = url
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.ColorScheme = *colors.Monochrome()
	}
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	var config Config

	configPath, err := getConfigPath()
	if err == nil {
		data, readErr := os.ReadFile(configPath)
		switch {
		case errors.Is(readErr, os.ErrNotExist):
		case readErr != nil:
			return nil, fmt.Errorf("failed to read config: %w", readErr)
		default:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
			}
		}
	}

	if err := loadThemeFile(&config); err != nil {
		return nil, err
	}
	config.applyEnv()
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "funil", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "funil", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = DefaultServerURL
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListenAddr
	}

	if c.Sync.PollInterval <= 0 {
		c.Sync.PollInterval = DefaultPollInterval
	}
	if c.Sync.SuccessDuration <= 0 {
		c.Sync.SuccessDuration = 3 * time.Second
	}
	if c.Sync.ErrorDuration <= 0 {
		c.Sync.ErrorDuration = 5 * time.Second
	}
	if c.Sync.InfoDuration <= 0 {
		c.Sync.InfoDuration = 5 * time.Second
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
