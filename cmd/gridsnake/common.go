package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// loadConfig reads the config and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	return applyOverrides(cfg, flagDBPath, flagSeed, flagLogLevel), nil
}

// applyOverrides lets non-empty flags win over the config file.
func applyOverrides(cfg config.Config, dbPath string, seed int64, level string) config.Config {
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if seed != 0 {
		cfg.Loop.Seed = seed
	}
	if level != "" {
		cfg.Log.Level = level
	}
	return cfg
}

// newLogger builds a logger in the style of the servers' defaults.
func newLogger(w io.Writer, prefix, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// openLogFile opens path for appending, creating parent directories.
func openLogFile(path string) (*os.File, error) {
	expanded, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(expanded, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// openScores opens the score database. A database that cannot be opened
// leaves scores in memory for this run.
func openScores(path string, logger *log.Logger) (*storage.Book, func()) {
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", path, "error", err)
		return storage.NewBook(nil), func() {}
	}
	return storage.NewBook(store), func() { _ = store.Close() }
}

// skinFromConfig returns the configured skin, or nil if it is not a
// valid palette choice.
func skinFromConfig(cfg config.SkinConfig, logger *log.Logger) *snake.Skin {
	if cfg.Color == "" && cfg.Icon == "" {
		return nil
	}
	skin := snake.DefaultSkin()
	if cfg.Color != "" {
		skin.BodyColor = cfg.Color
	}
	if cfg.Icon != "" {
		skin.HeadIcon = cfg.Icon
	}
	if err := skin.Validate(); err != nil {
		logger.Warn("ignoring configured skin", "error", err)
		return nil
	}
	return &skin
}

// resolveVariant picks the --variant flag, falling back to the config.
func resolveVariant(flag string, cfg config.Config) (registry.Variant, error) {
	id := flag
	if id == "" {
		id = cfg.Rules.Variant
	}
	return registry.Get(id)
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
