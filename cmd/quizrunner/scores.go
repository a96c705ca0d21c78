package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillrun/quizrunner/internal/storage"
)

var flagScoresAll bool

var scoresCmd = &cobra.Command{
	Use:   "scores [deck]",
	Short: "Show best runs",
	Long: `Display the top 10 runs, optionally filtered to a single deck.

Examples:
  quizrunner scores
  quizrunner scores capitals
  quizrunner scores --all`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show per-deck aggregate statistics instead of a top list")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresAll {
		printDeckStats(store)
		return
	}

	deck := ""
	if len(args) > 0 {
		deck = args[0]
	}

	runs, err := store.TopRuns(deck, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if deck == "" {
		fmt.Println("Best Runs - all decks")
	} else {
		fmt.Printf("Best Runs - %s\n", deck)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'quizrunner play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-10s  %-8s  %-5s  %s\n", "Rank", "Deck", "Score", "Answers", "Acc", "Date")
	fmt.Printf("  %-4s  %-10s  %-10s  %-8s  %-5s  %s\n", "----", "----", "-----", "-------", "---", "----")

	for i, r := range runs {
		answers := fmt.Sprintf("%d/%d", r.Correct, r.Answered)
		fmt.Printf("  %-4d  %-10s  %-10d  %-8s  %3d%%  %s\n",
			i+1, r.Deck, r.Score, answers, r.AccuracyPct, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	high, err := store.HighScore(deck)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", high)
	}
}

// printDeckStats prints aggregate statistics for every played deck.
func printDeckStats(store *storage.Store) {
	stats, err := store.GetAllDeckStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Println("Deck statistics:")
	fmt.Println()
	fmt.Printf("  %-12s  %-5s  %-10s  %-10s  %-7s  %s\n", "Deck", "Runs", "Best", "Avg Score", "Avg Acc", "Last Played")
	for _, d := range stats {
		fmt.Printf("  %-12s  %-5d  %-10d  %-10.0f  %5.0f%%  %s\n",
			d.Deck, d.RunsCount, d.HighScore, d.AvgScore, d.AvgAccuracy, d.LastPlayed.Format("2006-01-02 15:04"))
	}
}
