package hex

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Strength selects how a computer player chooses its moves.
type Strength int

const (
	StrengthSampling  Strength = iota // Uniformly random empty cell
	StrengthHeuristic                 // Win now, block now, else best local score
	StrengthSearch                    // Depth-limited alpha-beta
)

// Strengths lists every strength from weakest to strongest.
func Strengths() []Strength {
	return []Strength{StrengthSampling, StrengthHeuristic, StrengthSearch}
}

// String returns the configuration name of the strength.
func (s Strength) String() string {
	switch s {
	case StrengthSampling:
		return "sampling"
	case StrengthHeuristic:
		return "heuristic"
	case StrengthSearch:
		return "search"
	default:
		return "unknown"
	}
}

// ParseStrength converts a strength or difficulty name into a Strength.
func ParseStrength(name string) (Strength, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sampling", "random", "easy":
		return StrengthSampling, nil
	case "heuristic", "greedy", "normal", "medium":
		return StrengthHeuristic, nil
	case "search", "minimax", "hard":
		return StrengthSearch, nil
	default:
		return StrengthSampling, fmt.Errorf("hex: unknown strength %q", name)
	}
}

// MoveSource is anything that can produce the next move for a side: a
// computer player, a human at a keyboard, a remote session.
type MoveSource interface {
	NextMove(b *Board, side Side) (Coord, bool)
}

// Computer is a MoveSource backed by the move policies.
type Computer struct {
	strength Strength
	rng      *rand.Rand
	searcher *Searcher
}

// NewComputer creates a computer player. A nil rng gets a time-seeded source.
func NewComputer(strength Strength, rng *rand.Rand) *Computer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Computer{
		strength: strength,
		rng:      rng,
		searcher: NewSearcher(rng),
	}
}

// Strength returns the configured strength.
func (c *Computer) Strength() Strength {
	return c.strength
}

// LastSearch returns statistics for the last search-strength move.
func (c *Computer) LastSearch() SearchStats {
	return c.searcher.Stats()
}

// NextMove implements MoveSource.
func (c *Computer) NextMove(b *Board, side Side) (Coord, bool) {
	switch c.strength {
	case StrengthSearch:
		return c.searcher.BestMove(b, side)
	case StrengthHeuristic:
		return HeuristicMove(b, side, c.rng)
	default:
		return RandomMove(b, c.rng)
	}
}

// ChooseMove asks for a move at the given strength. It reports false when
// no move is available, which callers treat as the end of the game.
func ChooseMove(b *Board, side Side, strength Strength, rng *rand.Rand) (Coord, bool) {
	return NewComputer(strength, rng).NextMove(b, side)
}

// RandomMove picks an empty cell uniformly at random.
func RandomMove(b *Board, rng *rand.Rand) (Coord, bool) {
	if b.EmptyCount() == 0 {
		return Coord{}, false
	}
	k := rng.Intn(b.EmptyCount())
	for c := range b.Empties() {
		if k == 0 {
			return c, true
		}
		k--
	}
	return Coord{}, false
}

// HeuristicMove takes an immediate win, otherwise blocks the opponent's
// immediate win, otherwise plays the cell with the best local score.
func HeuristicMove(b *Board, side Side, rng *rand.Rand) (Coord, bool) {
	if !side.Valid() || b.EmptyCount() == 0 {
		return Coord{}, false
	}

	if i, ok := b.firstWinningCell(side); ok {
		return b.coord(i), true
	}
	if i, ok := b.firstWinningCell(side.Opponent()); ok {
		return b.coord(i), true
	}

	best, bestScore := -1, 0
	b.eachEmpty(func(i int) bool {
		if score := b.localScore(i, side); score > bestScore {
			best, bestScore = i, score
		}
		return true
	})
	if best < 0 {
		return RandomMove(b, rng)
	}
	return b.coord(best), true
}

// firstWinningCell returns the first empty cell, in raster order, where a
// mark for side completes its connection.
func (b *Board) firstWinningCell(side Side) (int, bool) {
	found := -1
	b.eachEmpty(func(i int) bool {
		if speculate(b, i, side, func() bool { return b.HasWon(side) }) {
			found = i
			return false
		}
		return true
	})
	return found, found >= 0
}

// localScore rewards friendly neighbours and closeness to the middle line
// across the side's direction of travel.
func (b *Board) localScore(i int, side Side) int {
	score := 0
	for _, j := range b.adj[i] {
		if b.cells[j] == side {
			score += 10
		}
	}

	mid := b.size / 2
	across := i % b.size // side A travels down rows, so it spreads over columns
	if side == SideB {
		across = i / b.size
	}
	return score + b.size - abs(across-mid)
}
