package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skillrun/quizrunner/internal/content"
	"github.com/skillrun/quizrunner/internal/games/runner"
	"github.com/skillrun/quizrunner/internal/platform/tui"
	"github.com/skillrun/quizrunner/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an interactive deck picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a run with the selected
deck. After a run ends you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select deck
  Tab          - Scoreboard
  Q            - Quit

Examples:
  quizrunner menu
  quizrunner menu --fps 30
  quizrunner menu --decks ./my-decks`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	runnerCfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	decks, err := content.NewLoader(flagDecksDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not scan decks directory: %v\n", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	cfg := terminalRuntimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(decks, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(decks, store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.Deck == nil {
			break
		}

		// Fresh seed for each run
		cfg.Seed = time.Now().UnixNano()

		game := runner.New(runnerCfg, *menuResult.Deck, nil)
		backToMenu, err := tui.Run(game, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			break
		}
		if !backToMenu {
			break // Quit from inside the game ends the session
		}

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
