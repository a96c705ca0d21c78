package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillrun/quizrunner/internal/content"
	"github.com/skillrun/quizrunner/internal/quiz"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List available question decks",
	Long: `Shows the built-in deck and every valid deck file found under the decks
directory (see --decks).`,
	Run: runDecks,
}

func runDecks(cmd *cobra.Command, args []string) {
	decks, err := content.NewLoader(flagDecksDir).LoadAll()
	if err != nil {
		fmt.Printf("Warning: could not scan decks directory: %v\n", err)
	}
	all := append([]content.Deck{content.DefaultDeck()}, decks...)

	fmt.Println("Available decks:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, d := range all {
		if len(d.ID()) > maxIDLen {
			maxIDLen = len(d.ID())
		}
	}

	fmt.Printf("  %-*s  %-10s  %-7s  %s\n", maxIDLen, "ID", "Questions", "Types", "Title")
	fmt.Printf("  %-*s  %-10s  %-7s  %s\n", maxIDLen, "--", "---------", "-----", "-----")

	for _, d := range all {
		title := d.Meta.Title
		if title == "" {
			title = "-"
		}
		fmt.Printf("  %-*s  %-10d  %-7s  %s\n", maxIDLen, d.ID(), len(d.Questions), deckTypes(d), title)
	}

	fmt.Println()
	fmt.Println("Run 'quizrunner play --deck <id>' to play a deck.")
}

// deckTypes summarizes the question types in a deck as short codes.
func deckTypes(d content.Deck) string {
	seen := make(map[quiz.QuestionType]bool)
	for _, q := range d.Questions {
		seen[q.Type] = true
	}

	var codes []string
	for _, t := range []quiz.QuestionType{quiz.TypeMultipleChoice, quiz.TypeTrueFalse, quiz.TypeFillBlank, quiz.TypeMatching} {
		if seen[t] {
			codes = append(codes, typeCode(t))
		}
	}
	return strings.Join(codes, ",")
}

func typeCode(t quiz.QuestionType) string {
	switch t {
	case quiz.TypeMultipleChoice:
		return "mc"
	case quiz.TypeTrueFalse:
		return "tf"
	case quiz.TypeFillBlank:
		return "fb"
	case quiz.TypeMatching:
		return "m"
	}
	return "?"
}
