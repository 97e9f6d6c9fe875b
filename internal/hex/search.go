package hex

import (
	"math"
	"math/rand"
	"time"
)

// Terminal scores, from the searching side's point of view.
const (
	WinScore  = 10000
	LossScore = -10000
	DrawScore = 0
)

// DepthFor picks the search depth from the number of empty cells: fewer
// cells left means a deeper search.
func DepthFor(empty int) int {
	switch {
	case empty > 20:
		return 3
	case empty > 10:
		return 4
	default:
		return 5
	}
}

// SearchStats describes the work done by the last search.
type SearchStats struct {
	Depth   int // Plies searched, root placement included
	Nodes   int // Positions visited below the root
	Cutoffs int // Sibling loops stopped by beta <= alpha
	Score   int // Score of the chosen move
}

// Searcher runs depth-limited alpha-beta directly on the caller's board.
// Every speculative placement is undone before the searcher returns, so the
// board is left exactly as it was given. A Searcher is not safe for
// concurrent use.
type Searcher struct {
	rng   *rand.Rand
	side  Side
	stats SearchStats
}

// NewSearcher creates a searcher. rng is only used for the fallback move;
// a nil rng gets a time-seeded source.
func NewSearcher(rng *rand.Rand) *Searcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Searcher{rng: rng}
}

// Stats returns statistics for the most recent search.
func (s *Searcher) Stats() SearchStats {
	return s.stats
}

// BestMove searches at the depth chosen by DepthFor. It reports false when
// the board has no empty cell or side is not a player.
func (s *Searcher) BestMove(b *Board, side Side) (Coord, bool) {
	return s.BestMoveAtDepth(b, side, DepthFor(b.EmptyCount()))
}

// BestMoveAtDepth searches depth plies, counting the root placement. Root
// moves are tried in raster order and the first strictly best score wins.
func (s *Searcher) BestMoveAtDepth(b *Board, side Side, depth int) (Coord, bool) {
	if !side.Valid() || b.EmptyCount() == 0 {
		return Coord{}, false
	}
	if depth < 1 {
		depth = 1
	}

	s.side = side
	s.stats = SearchStats{Depth: depth}

	best := -1
	bestScore := math.MinInt
	b.eachEmpty(func(i int) bool {
		score := speculate(b, i, side, func() int {
			return s.alphaBeta(b, depth-1, false, math.MinInt, math.MaxInt)
		})
		if score > bestScore {
			bestScore = score
			best = i
		}
		return true
	})

	if best < 0 {
		empties := b.EmptyCoords()
		return empties[s.rng.Intn(len(empties))], true
	}

	s.stats.Score = bestScore
	return b.coord(best), true
}

// alphaBeta returns the value of the current position for the searching
// side. maximizing is true when the searching side is to move.
func (s *Searcher) alphaBeta(b *Board, depth int, maximizing bool, alpha, beta int) int {
	s.stats.Nodes++

	switch {
	case b.HasWon(s.side):
		return WinScore
	case b.HasWon(s.side.Opponent()):
		return LossScore
	case b.empty == 0:
		return DrawScore
	case depth == 0:
		return Evaluate(b, s.side)
	}

	if maximizing {
		value := math.MinInt
		b.eachEmpty(func(i int) bool {
			score := speculate(b, i, s.side, func() int {
				return s.alphaBeta(b, depth-1, false, alpha, beta)
			})
			value = max(value, score)
			alpha = max(alpha, value)
			if beta <= alpha {
				s.stats.Cutoffs++
				return false
			}
			return true
		})
		return value
	}

	value := math.MaxInt
	b.eachEmpty(func(i int) bool {
		score := speculate(b, i, s.side.Opponent(), func() int {
			return s.alphaBeta(b, depth-1, true, alpha, beta)
		})
		value = min(value, score)
		beta = min(beta, value)
		if beta <= alpha {
			s.stats.Cutoffs++
			return false
		}
		return true
	})
	return value
}

// eachEmpty calls fn with the index of every empty playable cell in raster
// order until fn returns false. fn may mark and unmark the cell it is given.
func (b *Board) eachEmpty(fn func(i int) bool) {
	for i := range b.cells {
		if !b.playable[i] || b.cells[i] != None {
			continue
		}
		if !fn(i) {
			return
		}
	}
}
