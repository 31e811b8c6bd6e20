package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should be valid: %v", err)
	}
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded YAML and Default() differ:\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	writeFile(t, path, `
board:
  cell_size: 10
  width: 300
  height: 200
loop:
  tick_interval: 150ms
rules:
  variant: custom
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.CellSize != 10 || cfg.BoardGeometry().Cols() != 30 || cfg.BoardGeometry().Rows() != 20 {
		t.Errorf("unexpected board: %+v", cfg.Board)
	}
	if cfg.Loop.TickInterval != 150*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 150ms", cfg.Loop.TickInterval)
	}
	if cfg.Rules.Variant != "custom" {
		t.Errorf("Variant = %q, expected custom", cfg.Rules.Variant)
	}

	// Keys not in the file keep their defaults
	if cfg.Web.Address != ":8080" || cfg.SSH.IdleTimeout != 30*time.Minute {
		t.Errorf("defaults lost: web=%q idle=%v", cfg.Web.Address, cfg.SSH.IdleTimeout)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "board: [not, a, map")
	if _, err := Load(broken); err == nil {
		t.Error("unparseable custom file should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "board:\n  cell_size: 7\n  width: 400\n  height: 400\n")
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	// Local configs directory
	writeFile(t, filepath.Join(work, "configs", FileName), "rules:\n  variant: local\n")
	cfg, _ = Load("")
	if cfg.Rules.Variant != "local" {
		t.Errorf("Variant = %q, expected local", cfg.Rules.Variant)
	}

	// User config wins over local
	writeFile(t, filepath.Join(home, ".gridsnake", "config.yaml"), "rules:\n  variant: user\n")
	cfg, _ = Load("")
	if cfg.Rules.Variant != "user" {
		t.Errorf("Variant = %q, expected user", cfg.Rules.Variant)
	}

	// A broken user config is skipped
	writeFile(t, filepath.Join(home, ".gridsnake", "config.yaml"), "loop:\n  tick_interval: -1s\n")
	cfg, _ = Load("")
	if cfg.Rules.Variant != "local" {
		t.Errorf("Variant = %q, expected fallback to local", cfg.Rules.Variant)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cell size", func(c *Config) { c.Board.CellSize = 0 }},
		{"negative width", func(c *Config) { c.Board.Width = -20 }},
		{"not a multiple", func(c *Config) { c.Board.Height = 410 }},
		{"zero interval", func(c *Config) { c.Loop.TickInterval = 0 }},
		{"empty variant", func(c *Config) { c.Rules.Variant = "" }},
		{"zero sample rate", func(c *Config) { c.Audio.SampleRate = 0 }},
		{"negative buffer", func(c *Config) { c.Web.EventBuffer = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRuntime(t *testing.T) {
	cfg := Default()
	cfg.Loop.Seed = 9

	rt := cfg.Runtime()
	if rt.Board.Cols() != 20 || rt.TickInterval != 100*time.Millisecond || rt.Seed != 9 {
		t.Errorf("unexpected runtime config %+v", rt)
	}
}
