package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gridsnake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with the ruleset menu.
Scores are stored per-server (all users share the same high scores).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gridsnake/host_key

Examples:
  gridsnake serve                           # Listen on :23234 with auto-generated key
  gridsnake serve --ssh :2222               # Listen on port 2222
  gridsnake serve --host-key ./my_host_key  # Use specific host key
  gridsnake serve --idle-timeout 10m

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	logger := newLogger(os.Stderr, "gridsnake-ssh", cfg.Log.Level)

	scores, closeScores := openScores(cfg.Storage.Path, logger)
	defer closeScores()

	scfg := tui.DefaultSSHServerConfig()
	scfg.Address = pick(flagSSHAddr, cfg.SSH.Address)
	scfg.HostKeyPath = pick(flagHostKey, cfg.SSH.HostKeyPath)
	scfg.IdleTimeout = cfg.SSH.IdleTimeout
	if flagIdleTimeout > 0 {
		scfg.IdleTimeout = flagIdleTimeout
	}
	scfg.Runtime = cfg.Runtime()
	scfg.Skin = skinFromConfig(cfg.Skin, logger)
	scfg.Scores = scores
	scfg.Logger = logger

	server, err := tui.NewSSHServer(scfg)
	if err != nil {
		exitf("creating server: %v", err)
	}

	fmt.Printf("Starting gridsnake SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		closeScores()
		exitf("server: %v", err)
	}
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
