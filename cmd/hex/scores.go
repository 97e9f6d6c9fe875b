package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hex/internal/registry"
	"github.com/vovakirdan/tui-hex/internal/storage"
)

var flagScoresClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the top 10 scores for the specified variant. A win scores more
the fewer cells it needs and the stronger the computer was.

Examples:
  hex scores hex
  hex scores hex_diamond
  hex scores hex --clear   # Forget the variant's scores and games`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and games of the variant")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if the variant exists
	if !registry.Exists(gameID) {
		fail("unknown variant %q\nRun 'hex list' to see available variants.", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearVariant(gameID); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Printf("Cleared scores and games for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'hex play %s' and win to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}
