package main

import (
	"os"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/audio"
	"github.com/vovakirdan/gridsnake/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser client",
	Long: `Start an HTTP server with the browser client.

Every browser tab plays its own game over a WebSocket. High scores are
shared by everyone playing on this server.

Examples:
  gridsnake web                 # Listen on the configured address (:8080)
  gridsnake web --addr :9000
  gridsnake web --db ./scores.db

Then open http://localhost:8080/?variant=custom`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (default from config)")
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	logger := newLogger(os.Stderr, "gridsnake-web", cfg.Log.Level)

	scores, closeScores := openScores(cfg.Storage.Path, logger)
	defer closeScores()

	wcfg := web.DefaultConfig()
	wcfg.Address = cfg.Web.Address
	if flagWebAddr != "" {
		wcfg.Address = flagWebAddr
	}
	wcfg.Runtime = cfg.Runtime()
	wcfg.Skin = skinFromConfig(cfg.Skin, logger)
	wcfg.Scores = scores
	wcfg.Synth = audio.NewSynth(beep.SampleRate(cfg.Audio.SampleRate), cfg.Audio.Volume, 0)
	wcfg.EventBuffer = cfg.Web.EventBuffer
	wcfg.Logger = logger

	server, err := web.NewServer(wcfg)
	if err != nil {
		exitf("creating server: %v", err)
	}
	if err := server.ListenAndServe(); err != nil {
		closeScores()
		exitf("server: %v", err)
	}
}
