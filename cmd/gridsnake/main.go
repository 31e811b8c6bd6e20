// gridsnake is a snake game for the terminal, the browser and SSH.
//
// Usage:
//
//	gridsnake list               - List available rulesets
//	gridsnake play               - Play in this terminal
//	gridsnake web                - Serve the browser client
//	gridsnake serve              - Start SSH server for remote play
//	gridsnake scores             - Show or reset high scores
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.gridsnake, ./configs)
//	--db <path>         - Score database (overrides storage.path)
//	--seed <value>      - RNG seed for reproducible games
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import snake to register its rulesets
	_ "github.com/vovakirdan/gridsnake/internal/snake"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridsnake",
	Short: "gridsnake - Snake on a grid, in the terminal, browser or over SSH",
	Long: `gridsnake is the classic snake game. Eat food to grow, and do not
hit the walls or yourself.

Available commands:
  list     - Show all rulesets
  play     - Play in this terminal
  web      - Serve the browser client
  serve    - Start SSH server for remote play
  scores   - View or reset high scores

Examples:
  gridsnake list
  gridsnake play --variant custom
  gridsnake web --addr :8080
  gridsnake serve --ssh :2222
  gridsnake scores --interactive`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
