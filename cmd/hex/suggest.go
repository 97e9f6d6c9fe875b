package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/hex"
	"github.com/vovakirdan/tui-hex/internal/notation"
)

var (
	flagSuggestSize     int
	flagSuggestShape    string
	flagSuggestMoves    string
	flagSuggestSide     string
	flagSuggestFirst    string
	flagSuggestStrength string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the computer for a move",
	Long: `Replay a list of moves and print the move the computer would play next,
together with a diagram of the position.

Moves are cell names (column letter, row number) separated by spaces or
commas, played alternately starting with --first. The computer plays the
side to move unless --side says otherwise.

Examples:
  hex suggest --size 7
  hex suggest --size 7 --moves "d4 c5 e3"
  hex suggest --size 9 --shape diamond --moves "e5" --strength heuristic
  hex --log-level debug suggest --size 5 --moves "a1 b2" --side b`,
	Args: cobra.NoArgs,
	Run:  runSuggest,
}

func init() {
	suggestCmd.Flags().IntVar(&flagSuggestSize, "size", 11, "Board size (1-19)")
	suggestCmd.Flags().StringVar(&flagSuggestShape, "shape", "hexagon", "Board shape: hexagon, parallelogram, diamond, triangle")
	suggestCmd.Flags().StringVar(&flagSuggestMoves, "moves", "", "Moves played so far, e.g. \"d4 c5\"")
	suggestCmd.Flags().StringVar(&flagSuggestSide, "side", "", "Side to suggest for: a or b (default: side to move)")
	suggestCmd.Flags().StringVar(&flagSuggestFirst, "first", "a", "Side that moved first: a or b")
	suggestCmd.Flags().StringVar(&flagSuggestStrength, "strength", "search", "Computer strength: sampling, heuristic, search")
}

func runSuggest(_ *cobra.Command, _ []string) {
	shape, err := hex.ParseShape(flagSuggestShape)
	if err != nil {
		fail("%v", err)
	}
	strength, err := hex.ParseStrength(flagSuggestStrength)
	if err != nil {
		fail("%v", err)
	}
	first, err := notation.ParseSide(flagSuggestFirst)
	if err != nil || !first.Valid() {
		fail("invalid --first %q", flagSuggestFirst)
	}
	moves, err := notation.ParseMoves(flagSuggestMoves, flagSuggestSize)
	if err != nil {
		fail("%v", err)
	}

	match, err := hexgame.Replay(flagSuggestSize, shape, first, moves)
	if err != nil {
		fail("%v", err)
	}
	board := match.Board()
	fmt.Print(notation.Diagram(board))
	fmt.Println()

	if match.Over() {
		if match.Draw() {
			fmt.Println("The game is over: the board is full with no winner.")
		} else {
			fmt.Printf("The game is over: %s has won.\n", sideLabel(match.Winner()))
		}
		return
	}

	side := match.ToMove()
	if flagSuggestSide != "" {
		side, err = notation.ParseSide(flagSuggestSide)
		if err != nil || !side.Valid() {
			fail("invalid --side %q", flagSuggestSide)
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cpu := hex.NewComputer(strength, rand.New(rand.NewSource(seed)))

	start := time.Now()
	c, ok := cpu.NextMove(board, side)
	elapsed := time.Since(start)
	if !ok {
		fail("no empty cell left for %s", side)
	}

	if strength == hex.StrengthSearch {
		stats := cpu.LastSearch()
		logger.Debug("search finished",
			"depth", stats.Depth,
			"nodes", stats.Nodes,
			"cutoffs", stats.Cutoffs,
			"score", stats.Score,
			"elapsed", elapsed,
		)
	}
	fmt.Printf("Suggested move for %s: %s\n", sideLabel(side), notation.Format(c))
}

// sideLabel names a side for terminal output.
func sideLabel(s hex.Side) string {
	switch s {
	case hex.SideA:
		return "A (X, top-bottom)"
	case hex.SideB:
		return "B (O, left-right)"
	default:
		return "nobody"
	}
}
