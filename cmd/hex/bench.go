package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/hex"
)

var (
	flagBenchGames   int
	flagBenchA       string
	flagBenchB       string
	flagBenchSize    int
	flagBenchShape   string
	flagBenchWorkers int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Pit two computer strengths against each other",
	Long: `Play a batch of computer-vs-computer games in parallel and print
how often each side won. The first move alternates between the sides,
so neither strength keeps the first-move advantage.

Examples:
  hex bench
  hex bench --games 100 --a search --b heuristic --size 7
  hex bench --shape diamond --size 9 --workers 8
  hex --log-level debug bench --games 4`,
	Args: cobra.NoArgs,
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchGames, "games", 20, "Number of games to play")
	benchCmd.Flags().StringVar(&flagBenchA, "a", "search", "Strength playing side A (top-bottom)")
	benchCmd.Flags().StringVar(&flagBenchB, "b", "heuristic", "Strength playing side B (left-right)")
	benchCmd.Flags().IntVar(&flagBenchSize, "size", 7, "Board size (1-19)")
	benchCmd.Flags().StringVar(&flagBenchShape, "shape", "hexagon", "Board shape: hexagon, parallelogram, diamond, triangle")
	benchCmd.Flags().IntVar(&flagBenchWorkers, "workers", runtime.NumCPU(), "Games played at once")
}

func runBench(_ *cobra.Command, _ []string) {
	a, err := hex.ParseStrength(flagBenchA)
	if err != nil {
		fail("%v", err)
	}
	b, err := hex.ParseStrength(flagBenchB)
	if err != nil {
		fail("%v", err)
	}
	shape, err := hex.ParseShape(flagBenchShape)
	if err != nil {
		fail("%v", err)
	}
	if flagBenchSize < 1 || flagBenchSize > 19 {
		fail("board size must be 1-19, got %d", flagBenchSize)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("bench started",
		"games", flagBenchGames,
		"a", a,
		"b", b,
		"size", flagBenchSize,
		"shape", shape,
		"workers", flagBenchWorkers,
	)
	res, err := hexgame.Bench(ctx, hexgame.BenchConfig{
		Games:   flagBenchGames,
		Size:    flagBenchSize,
		Shape:   shape,
		A:       a,
		B:       b,
		Workers: flagBenchWorkers,
		Seed:    flagSeed,
		Logger:  logger,
	})
	if err != nil {
		stop()
		fail("%v", err)
	}
	logger.Info("bench finished", "elapsed", res.Elapsed.Round(time.Millisecond), "avg_moves", fmt.Sprintf("%.1f", res.AvgMoves()))

	fmt.Printf("%d games on a %dx%d %s board\n", res.Games, flagBenchSize, flagBenchSize, shape)
	fmt.Println()
	fmt.Printf("  %-22s  %5s  %6s\n", "Player", "Wins", "Share")
	fmt.Printf("  %-22s  %5s  %6s\n", "------", "----", "-----")
	printShare := func(label string, n int) {
		fmt.Printf("  %-22s  %5d  %5.1f%%\n", label, n, 100*float64(n)/float64(res.Games))
	}
	printShare(fmt.Sprintf("A (%s)", a), res.WinsA)
	printShare(fmt.Sprintf("B (%s)", b), res.WinsB)
	if res.Draws > 0 {
		printShare("Draws", res.Draws)
	}
	fmt.Println()
	printShare("Side moving first", res.FirstWins)
	fmt.Printf("\nAverage game length: %.1f moves\n", res.AvgMoves())
}
