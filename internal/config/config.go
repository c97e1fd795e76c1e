// Package config loads and saves spendwise settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/spendwise/internal/insight"
)

// Config holds all spendwise configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
	TUI        TUIConfig        `toml:"tui"`
	Badges     BadgeConfig      `toml:"badges"`
}

// GeneralConfig identifies the local user and where data lives.
type GeneralConfig struct {
	UserID string `toml:"user_id"`
	Name   string `toml:"name,omitempty"`
	DBPath string `toml:"db_path,omitempty"`
}

// BudgetConfig holds budget settings. A nil Monthly leaves the stored
// profile budget untouched.
type BudgetConfig struct {
	Monthly *float64 `toml:"monthly,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds background daemon settings.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	Schedule     string `toml:"schedule"`
	EventsBuffer int    `toml:"events_buffer"`
}

// TUIConfig holds dashboard refresh settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// BadgeConfig allows renaming badges or rewording their descriptions.
type BadgeConfig struct {
	Overrides insight.Catalog `toml:"overrides,omitempty"`
}

// Environment variables that override the config file.
const (
	EnvUser       = "SPENDWISE_USER"
	EnvDB         = "SPENDWISE_DB"
	EnvBudget     = "SPENDWISE_BUDGET"
	EnvDaemonAddr = "SPENDWISE_DAEMON_ADDR"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			UserID: "local",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8797",
			Schedule:     "0 * * * *",
			EventsBuffer: 200,
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 60,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendwise")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendwise")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database
// and daemon files.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendwise")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "spendwise")
}

// DBPath returns the configured database path or the default one.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "spendwise.db")
}

// Catalog returns the built-in badge catalog with overrides applied.
func (c Config) Catalog() insight.Catalog {
	return insight.DefaultCatalog().Merge(c.Badges.Overrides)
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadEffective loads .env files, the config file and then applies
// environment overrides. The result is for running, not for Save.
func LoadEffective() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return DefaultConfig(), err
	}
	cfg, err := Load()
	if err != nil {
		return cfg, err
	}
	return cfg, ApplyEnv(&cfg)
}

// LoadDotEnv loads .env from the config dir and then the working directory.
// Variables already set are never overridden. Missing files are ignored.
func LoadDotEnv() error {
	for _, path := range []string{filepath.Join(ConfigDir(), ".env"), ".env"} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any SPENDWISE_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvUser); v != "" {
		cfg.General.UserID = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv(EnvDaemonAddr); v != "" {
		cfg.Daemon.Addr = v
	}
	if v := os.Getenv(EnvBudget); v != "" {
		budget, err := strconv.ParseFloat(v, 64)
		if err != nil || budget < 0 {
			return fmt.Errorf("parsing %s: invalid budget %q", EnvBudget, v)
		}
		cfg.Budget.Monthly = &budget
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
