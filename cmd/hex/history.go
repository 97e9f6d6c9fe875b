package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hex/internal/platform/tui"
	"github.com/vovakirdan/tui-hex/internal/storage"
)

var (
	flagHistoryLimit  int
	flagHistoryTUI    bool
	flagHistoryOnline bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished games and your record",
	Long: `List the most recent finished games and your win/loss record against
each computer strength.

Examples:
  hex history
  hex history --limit 50
  hex history --online     # Also list online matches played on this server
  hex history --tui        # Browse the history in a table`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of recent games to list")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the history interactively")
	historyCmd.Flags().BoolVar(&flagHistoryOnline, "online", false, "Also list recent online matches")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if flagHistoryTUI {
		cfg := runtimeConfig()
		if _, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	if err := printRecentGames(store); err != nil {
		fail("%v", err)
	}
	fmt.Println()
	if err := printRecord(store); err != nil {
		fail("%v", err)
	}
	if flagHistoryOnline {
		fmt.Println()
		if err := printOnlineMatches(store); err != nil {
			fail("%v", err)
		}
	}
}

func printRecentGames(store *storage.Store) error {
	games, err := store.RecentGames(flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent games")
	fmt.Println()
	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'hex play' to record your first game!")
		return nil
	}

	fmt.Printf("  %-16s  %-18s  %-5s  %-9s  %-6s  %5s\n", "Date", "Variant", "Size", "Computer", "Result", "Moves")
	fmt.Printf("  %-16s  %-18s  %-5s  %-9s  %-6s  %5s\n", "----", "-------", "----", "--------", "------", "-----")
	for _, g := range games {
		result := g.HumanResult()
		if result == "" {
			result = "cpu " + g.Winner
		}
		fmt.Printf("  %-16s  %-18s  %-5s  %-9s  %-6s  %5d\n",
			g.CreatedAt.Format("2006-01-02 15:04"),
			g.Variant,
			fmt.Sprintf("%dx%d", g.Size, g.Size),
			g.Strength,
			result,
			g.MoveCount,
		)
	}
	return nil
}

func printRecord(store *storage.Store) error {
	records, err := store.StrengthRecords()
	if err != nil {
		return err
	}

	fmt.Println("Record against the computer")
	fmt.Println()
	if len(records) == 0 {
		fmt.Println("No games against the computer yet.")
		return nil
	}

	fmt.Printf("  %-10s  %6s  %6s  %6s  %6s\n", "Strength", "Played", "Wins", "Losses", "Draws")
	fmt.Printf("  %-10s  %6s  %6s  %6s  %6s\n", "--------", "------", "----", "------", "-----")
	for _, r := range records {
		fmt.Printf("  %-10s  %6d  %6d  %6d  %6d\n", r.Strength, r.Played(), r.Wins, r.Losses, r.Draws)
	}
	return nil
}

func printOnlineMatches(store *storage.Store) error {
	matches, err := store.RecentOnlineMatches(flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent online matches")
	fmt.Println()
	if len(matches) == 0 {
		fmt.Println("No online matches recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-18s  %-22s  %5s  %8s\n", "Date", "Variant", "Ended", "Moves", "Duration")
	fmt.Printf("  %-16s  %-18s  %-22s  %5s  %8s\n", "----", "-------", "-----", "-----", "--------")
	for _, m := range matches {
		fmt.Printf("  %-16s  %-18s  %-22s  %5d  %7ds\n",
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.GameID,
			m.EndReason,
			m.MoveCount,
			m.Duration,
		)
	}
	return nil
}
