package main

import (
	"io"
	"os"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/audio"
	"github.com/vovakirdan/gridsnake/internal/audio/speaker"
	"github.com/vovakirdan/gridsnake/internal/loop"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

var (
	flagVariant string
	flagMute    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Play snake in this terminal.

Without --variant a menu lets you pick the ruleset. Press Enter to start.

Controls:
  Arrows/WASD  - Steer
  Enter        - Start
  R            - Restart
  C/E          - Next body color / head icon (custom ruleset)
  Esc/B        - Back to menu (when stopped)
  Q/Ctrl+C     - Quit

Examples:
  gridsnake play
  gridsnake play --variant classic
  gridsnake play --variant custom --mute
  gridsnake play --seed 42 --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagVariant, "variant", "", "Ruleset to play (skips the menu)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	variant, err := resolveVariant(flagVariant, cfg)
	if err != nil {
		exitf("%v\nRun 'gridsnake list' to see available rulesets.", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		exitf("play needs an interactive terminal")
	}

	// The alt screen owns the terminal, so logs go to a file.
	var logOut io.Writer = io.Discard
	if f, ferr := openLogFile(cfg.Log.File); ferr == nil {
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "gridsnake", cfg.Log.Level)

	rt := cfg.Runtime()
	if w, h, serr := term.GetSize(int(os.Stdout.Fd())); serr == nil {
		needW, needH := snake.ScreenSize(rt.Board)
		if w < needW || h < needH {
			logger.Warn("terminal smaller than the board", "have", [2]int{w, h}, "need", [2]int{needW, needH})
		}
	}

	scores, closeScores := openScores(cfg.Storage.Path, logger)
	defer closeScores()

	var sound loop.SoundPlayer = audio.Silent{}
	if cfg.Audio.Enabled && !flagMute {
		synth := audio.NewSynth(beep.SampleRate(cfg.Audio.SampleRate), cfg.Audio.Volume, 0)
		if sp, serr := speaker.New(synth); serr != nil {
			logger.Warn("no audio device, playing silently", "error", serr)
		} else {
			defer sp.Close()
			sound = sp
		}
	}

	opts := tui.RunOptions{
		Game: tui.GameOptions{
			Variant: variant,
			Runtime: rt,
			Skin:    skinFromConfig(cfg.Skin, logger),
			Sound:   sound,
			Logger:  logger,
		},
		Scores: scores,
		Menu:   flagVariant == "",
	}
	if err := tui.Run(opts); err != nil {
		// Close the store before exiting.
		closeScores()
		exitf("running game: %v", err)
	}
}
