// Package config loads and saves tally preferences.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/expense"
)

// Config holds all tally configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
	Metrics    MetricsConfig    `toml:"metrics"`
}

// GeneralConfig holds budgeting preferences.
type GeneralConfig struct {
	DefaultBudget  *float64 `toml:"default_budget,omitempty"`
	Strategy       string   `toml:"strategy"`
	AdvancedMarkup float64  `toml:"advanced_markup"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Strategy:       "simple",
			AdvancedMarkup: expense.DefaultMarkup.InexactFloat64(),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tally")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a config file at path. Environment overrides are applied
// last.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if lvl := os.Getenv("TALLY_LOG_LEVEL"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if addr := os.Getenv("TALLY_METRICS_ADDR"); addr != "" {
		cfg.Metrics.Addr = addr
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DefaultBudget returns the configured starting budget, if any.
func (c Config) DefaultBudget() (decimal.Decimal, bool) {
	if c.General.DefaultBudget == nil || *c.General.DefaultBudget <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(*c.General.DefaultBudget).Round(2), true
}

// Markup returns the advanced strategy markup as a decimal.
func (c Config) Markup() decimal.Decimal {
	if c.General.AdvancedMarkup <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(c.General.AdvancedMarkup)
}
