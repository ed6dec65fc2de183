package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingReturnsDefaults(t *testing.T) {
	t.Setenv("TALLY_LOG_LEVEL", "")
	t.Setenv("TALLY_METRICS_ADDR", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}
	if cfg.General.Strategy != "simple" {
		t.Fatalf("Strategy = %q, want simple", cfg.General.Strategy)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if _, ok := cfg.DefaultBudget(); ok {
		t.Fatal("DefaultBudget reported set on defaults")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("TALLY_LOG_LEVEL", "")
	t.Setenv("TALLY_METRICS_ADDR", "")

	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	budget := 250.0

	cfg := DefaultConfig()
	cfg.General.DefaultBudget = &budget
	cfg.General.Strategy = "advanced"
	cfg.General.AdvancedMarkup = 0.2
	cfg.Appearance.Theme = "tokyo-night"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	b, ok := got.DefaultBudget()
	if !ok || b.String() != "250" {
		t.Fatalf("DefaultBudget = %s, %v; want 250, true", b, ok)
	}
	if got.General.Strategy != "advanced" {
		t.Fatalf("Strategy = %q, want advanced", got.General.Strategy)
	}
	if got.Markup().String() != "0.2" {
		t.Fatalf("Markup = %s, want 0.2", got.Markup())
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Fatalf("Theme = %q, want tokyo-night", got.Appearance.Theme)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TALLY_LOG_LEVEL", "debug")
	t.Setenv("TALLY_METRICS_ADDR", "127.0.0.1:9109")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Metrics.Addr != "127.0.0.1:9109" {
		t.Fatalf("Metrics.Addr = %q, want 127.0.0.1:9109", cfg.Metrics.Addr)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\nstrategy ="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom accepted malformed TOML")
	}
}

func TestMarkupZeroVersusAbsent(t *testing.T) {
	t.Setenv("TALLY_LOG_LEVEL", "")
	t.Setenv("TALLY_METRICS_ADDR", "")
	dir := t.TempDir()

	zero := filepath.Join(dir, "zero.toml")
	if err := os.WriteFile(zero, []byte("[general]\nstrategy = \"advanced\"\nadvanced_markup = 0.0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(zero)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.Markup().IsZero() {
		t.Fatalf("Markup = %s, want 0 when configured as 0", cfg.Markup())
	}

	absent := filepath.Join(dir, "absent.toml")
	if err := os.WriteFile(absent, []byte("[general]\nstrategy = \"advanced\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFrom(absent)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Markup().String() != "0.1" {
		t.Fatalf("Markup = %s, want the 0.1 default when the key is absent", cfg.Markup())
	}
}
