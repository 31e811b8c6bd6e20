// Package config provides YAML-based configuration loading for gridsnake.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("config: invalid")

// Config contains all gridsnake settings.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Loop    LoopConfig    `yaml:"loop"`
	Rules   RulesConfig   `yaml:"rules"`
	Skin    SkinConfig    `yaml:"skin"`
	Audio   AudioConfig   `yaml:"audio"`
	Storage StorageConfig `yaml:"storage"`
	Web     WebConfig     `yaml:"web"`
	SSH     SSHConfig     `yaml:"ssh"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig defines the play field in board units.
type BoardConfig struct {
	CellSize int `yaml:"cell_size"`
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
}

// LoopConfig defines the tick schedule.
type LoopConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Seed         int64         `yaml:"seed"` // 0 = time based
}

// RulesConfig selects the ruleset.
type RulesConfig struct {
	Variant string `yaml:"variant"`
}

// SkinConfig is the initial player skin for variants that allow choosing.
type SkinConfig struct {
	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
}

// AudioConfig controls local sound playback and the served sound files.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // beep volume exponent, 0 = unchanged
	SampleRate int     `yaml:"sample_rate"`
}

// StorageConfig locates the high score database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// WebConfig controls the browser server.
type WebConfig struct {
	Address     string `yaml:"address"`
	EventBuffer int    `yaml:"event_buffer"` // per-connection outgoing queue
}

// SSHConfig controls the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			CellSize: 20,
			Width:    400,
			Height:   400,
		},
		Loop: LoopConfig{
			TickInterval: core.DefaultTickInterval,
		},
		Rules: RulesConfig{
			Variant: "classic",
		},
		Skin: SkinConfig{
			Color: "#00FF00",
			Icon:  "⚪",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Storage: StorageConfig{
			Path: "~/.gridsnake/scores.db",
		},
		Web: WebConfig{
			Address:     ":8080",
			EventBuffer: 64,
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.gridsnake/gridsnake.log",
		},
	}
}

// Validate checks the settings the game cannot run without.
func (c Config) Validate() error {
	if err := c.BoardGeometry().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Loop.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive, got %s", ErrInvalid, c.Loop.TickInterval)
	}
	if c.Rules.Variant == "" {
		return fmt.Errorf("%w: rules.variant is empty", ErrInvalid)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive, got %d", ErrInvalid, c.Audio.SampleRate)
	}
	if c.Web.EventBuffer < 0 {
		return fmt.Errorf("%w: web.event_buffer must not be negative", ErrInvalid)
	}
	return nil
}

// BoardGeometry converts the board section to core.Board.
func (c Config) BoardGeometry() core.Board {
	return core.Board{
		CellSize: c.Board.CellSize,
		Width:    c.Board.Width,
		Height:   c.Board.Height,
	}
}

// Runtime returns the runtime settings for a session.
func (c Config) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		Board:        c.BoardGeometry(),
		TickInterval: c.Loop.TickInterval,
		Seed:         c.Loop.Seed,
	}
}
