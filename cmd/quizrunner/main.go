// quizrunner is an educational endless-runner for the terminal: dodge the
// hurdles while quiz questions interrupt the run.
//
// Usage:
//
//	quizrunner play              - Play with the built-in deck
//	quizrunner play --deck <id>  - Play a specific question deck
//	quizrunner menu              - Interactive deck picker
//	quizrunner decks             - List available question decks
//	quizrunner validate <file>   - Check a deck file for errors
//	quizrunner scores            - Show best runs
//	quizrunner serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.quizrunner/scores.db)
//	--decks <dir>   - Directory scanned for deck files (default: ./decks)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillrun/quizrunner/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagDecksDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quizrunner",
	Short: "Quiz Runner - An educational endless runner in your terminal",
	Long: `Quiz Runner is a terminal game that mixes an endless runner with quiz
questions. Jump hurdles to survive; every few seconds a question interrupts
the run. Correct answers boost your speed and score, wrong answers cost a
life and slow you down.

Available commands:
  play      - Play directly with a deck
  menu      - Interactive deck picker
  decks     - List available question decks
  validate  - Check a deck file for errors
  scores    - View best runs
  serve     - Start SSH server for remote play

Examples:
  quizrunner play
  quizrunner play --deck capitals --difficulty hard
  quizrunner menu
  quizrunner validate ./decks/capitals.yaml
  quizrunner serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultDBPath, "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagDecksDir, "decks", "decks", "Directory scanned for deck files")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
