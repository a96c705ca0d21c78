package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/skillrun/quizrunner/internal/config"
	"github.com/skillrun/quizrunner/internal/content"
	"github.com/skillrun/quizrunner/internal/core"
	"github.com/skillrun/quizrunner/internal/games/runner"
	"github.com/skillrun/quizrunner/internal/platform/tui"
	"github.com/skillrun/quizrunner/internal/storage"
)

var (
	flagDeck       string
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the quiz runner",
	Long: `Start a run with the given question deck (the built-in arithmetic deck
by default).

Controls:
  Space/Up   - Jump
  Down/S     - Duck
  P/Esc      - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

During a question:
  Up/Down    - Move between options
  Enter      - Submit the answer
  letters    - Type an answer (fill-in questions)

Difficulty options:
  easy   - Slow start, relaxed question pacing
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty, questions come faster
  fixed  - No progression, stays at config's initial level

Examples:
  quizrunner play
  quizrunner play --deck capitals
  quizrunner play --difficulty hard
  quizrunner play --config ./my-runner.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDeck, "deck", "", "Deck ID to play (empty = built-in deck)")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
	runnerCfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	deck, err := resolveDeck(flagDeck)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'quizrunner decks' to see available decks.")
		os.Exit(1)
	}

	cfg := terminalRuntimeConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	game := runner.New(runnerCfg, deck, nil)
	_, runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadRunnerConfig loads the gameplay config and applies the difficulty flag.
func loadRunnerConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		config.ApplyRunnerPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	}
	return cfg, nil
}

// resolveDeck finds the deck named by ID under the decks directory, or the
// built-in deck when the ID is empty or "default".
func resolveDeck(id string) (content.Deck, error) {
	if id == "" || id == "default" {
		return content.DefaultDeck(), nil
	}
	return content.NewLoader(flagDecksDir).LoadByID(id)
}

// terminalRuntimeConfig builds a runtime config from the terminal size and
// global flags.
func terminalRuntimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
