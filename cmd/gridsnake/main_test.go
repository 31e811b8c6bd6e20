package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

func TestApplyOverrides(t *testing.T) {
	base := config.Default()

	tests := []struct {
		name   string
		db     string
		seed   int64
		level  string
		expect func(config.Config) bool
	}{
		{"no flags keep config", "", 0, "", func(c config.Config) bool {
			return c.Storage.Path == base.Storage.Path && c.Loop.Seed == 0 && c.Log.Level == base.Log.Level
		}},
		{"db flag", "/tmp/s.db", 0, "", func(c config.Config) bool { return c.Storage.Path == "/tmp/s.db" }},
		{"seed flag", "", 42, "", func(c config.Config) bool { return c.Loop.Seed == 42 }},
		{"log level flag", "", 0, "debug", func(c config.Config) bool { return c.Log.Level == "debug" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := applyOverrides(base, tc.db, tc.seed, tc.level)
			if !tc.expect(got) {
				t.Errorf("unexpected config: %+v", got)
			}
		})
	}
}

func TestSkinFromConfig(t *testing.T) {
	logger := log.New(io.Discard)

	tests := []struct {
		name  string
		cfg   config.SkinConfig
		isNil bool
		color string
	}{
		{"empty", config.SkinConfig{}, true, ""},
		{"palette color", config.SkinConfig{Color: "#FF0000"}, false, "#FF0000"},
		{"color and icon", config.SkinConfig{Color: "#0000FF", Icon: "⚫"}, false, "#0000FF"},
		{"off palette", config.SkinConfig{Color: "#123456"}, true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := skinFromConfig(tc.cfg, logger)
			if (got == nil) != tc.isNil {
				t.Fatalf("skinFromConfig() = %v, nil expected %v", got, tc.isNil)
			}
			if got != nil && got.BodyColor != tc.color {
				t.Errorf("BodyColor = %q, expected %q", got.BodyColor, tc.color)
			}
		})
	}
}

func TestResolveVariant(t *testing.T) {
	cfg := config.Default()

	v, err := resolveVariant("", cfg)
	if err != nil || v.ID != snake.VariantClassic {
		t.Errorf("resolveVariant(\"\") = %q, %v; expected config default", v.ID, err)
	}
	v, err = resolveVariant(snake.VariantCustom, cfg)
	if err != nil || v.ID != snake.VariantCustom {
		t.Errorf("resolveVariant(custom) = %q, %v", v.ID, err)
	}
	if _, err := resolveVariant("nope", cfg); err == nil {
		t.Error("unknown ruleset should fail")
	}
}

func TestPrintVariants(t *testing.T) {
	var buf bytes.Buffer
	printVariants(&buf)

	out := buf.String()
	for _, want := range []string{"classic", "custom", "Classic", "--variant"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintScores(t *testing.T) {
	var empty bytes.Buffer
	printScores(&empty, nil)
	if !strings.Contains(empty.String(), "No scores recorded yet.") {
		t.Errorf("empty output = %q", empty.String())
	}

	var buf bytes.Buffer
	printScores(&buf, []storage.HighScoreEntry{
		{Variant: "classic", Value: 12, UpdatedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
		{Variant: "custom", Value: 3},
	})
	out := buf.String()
	for _, want := range []string{"classic", "12", "2025-03-01 09:30", "custom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
