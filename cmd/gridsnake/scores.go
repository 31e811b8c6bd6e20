package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagScoresVariant string
	flagInteractive   bool
	flagReset         bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best score of every ruleset.

Examples:
  gridsnake scores
  gridsnake scores --variant classic
  gridsnake scores --variant custom --reset
  gridsnake scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresVariant, "variant", "", "Only show this ruleset")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the high score of --variant")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	if flagScoresVariant != "" && !registry.Exists(flagScoresVariant) {
		exitf("unknown ruleset %q\nRun 'gridsnake list' to see available rulesets.", flagScoresVariant)
	}
	if flagReset && flagScoresVariant == "" {
		exitf("--reset needs --variant")
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()
	book := storage.NewBook(store)

	out := cmd.OutOrStdout()
	switch {
	case flagReset:
		if err := book.Clear(flagScoresVariant); err != nil {
			exitf("clearing high score: %v", err)
		}
		fmt.Fprintf(out, "High score for %s cleared.\n", flagScoresVariant)

	case flagInteractive:
		if err := tui.RunScoreboard(book); err != nil {
			exitf("%v", err)
		}

	case flagScoresVariant != "":
		v, _ := registry.Get(flagScoresVariant)
		fmt.Fprintf(out, "Best - %s: %d\n", v.Title, book.Get(v.ID))

	default:
		entries, err := book.HighScores()
		if err != nil {
			exitf("retrieving scores: %v", err)
		}
		printScores(out, entries)
	}
}

func printScores(w io.Writer, entries []storage.HighScoreEntry) {
	fmt.Fprintln(w, "High Scores")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'gridsnake play' to set the first high score!")
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-10s  %-8s  %s\n", "Ruleset", "Best", "Set")
	fmt.Fprintf(w, "  %-10s  %-8s  %s\n", "-------", "----", "---")

	for _, e := range entries {
		set := "-"
		if !e.UpdatedAt.IsZero() {
			set = e.UpdatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-10s  %-8d  %s\n", e.Variant, e.Value, set)
	}
}
