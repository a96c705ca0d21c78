package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillrun/quizrunner/internal/content"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check deck files for errors",
	Long: `Parse and validate the given deck files, reporting the first error in
each. A deck is rejected as a whole when any question in it is invalid, so
this is the quickest way to find out why a file does not show up in the menu.

Examples:
  quizrunner validate ./decks/capitals.yaml
  quizrunner validate decks/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		deck, err := content.LoadFile(path)
		if err != nil {
			fmt.Printf("FAIL  %s\n      %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ok    %s (%d questions)\n", path, len(deck.Questions))
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d files failed validation\n", failed, len(args))
		os.Exit(1)
	}
}
