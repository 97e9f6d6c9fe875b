package hex

import (
	"math"
	"math/rand"
	"testing"
)

func TestDepthFor(t *testing.T) {
	tests := []struct {
		empty int
		want  int
	}{
		{121, 3},
		{21, 3},
		{20, 4},
		{15, 4},
		{11, 4},
		{10, 5},
		{8, 5},
		{1, 5},
	}
	for _, tt := range tests {
		if got := DepthFor(tt.empty); got != tt.want {
			t.Errorf("DepthFor(%d) = %d, want %d", tt.empty, got, tt.want)
		}
	}
}

func TestBestMoveUsesBoardDepth(t *testing.T) {
	tests := []struct {
		filled int
		want   int
	}{
		{4, 3},  // 21 empty
		{10, 4}, // 15 empty
		{17, 5}, // 8 empty
	}
	for _, tt := range tests {
		// Filling from the top in raster order never reaches row 4.
		b := NewBoard(5, ShapeHexagon)
		for i := 0; i < tt.filled; i++ {
			b.Place(Coord{i / 5, i % 5}, SideA)
		}

		s := NewSearcher(rand.New(rand.NewSource(5)))
		if _, ok := s.BestMove(b, SideB); !ok {
			t.Fatalf("BestMove() found no move with %d empty", b.EmptyCount())
		}
		if got := s.Stats().Depth; got != tt.want {
			t.Errorf("with %d empty, search depth = %d, want %d", b.EmptyCount(), got, tt.want)
		}
	}
}

func TestBestMoveTakesWin(t *testing.T) {
	b := NewBoard(5, ShapeHexagon)
	for r := 0; r < 4; r++ {
		b.Place(Coord{r, 2}, SideA)
	}
	// Close every other route to row 4 so (4,2) is the only winning cell
	// now and no move creates a second threat.
	b.Place(Coord{4, 1}, SideB)
	b.Place(Coord{3, 1}, SideB)
	b.Place(Coord{3, 3}, SideB)

	s := NewSearcher(rand.New(rand.NewSource(1)))
	got, ok := s.BestMove(b, SideA)
	if !ok {
		t.Fatal("BestMove() found no move")
	}
	if got != (Coord{4, 2}) {
		t.Errorf("BestMove() = %v, want (4,2)", got)
	}
	if s.Stats().Score != WinScore {
		t.Errorf("Stats().Score = %d, want %d", s.Stats().Score, WinScore)
	}
}

func TestBestMoveBlocksLoss(t *testing.T) {
	// B needs only (2,4) to connect; A has no win of its own.
	b := NewBoard(5, ShapeHexagon)
	for c := 0; c < 4; c++ {
		b.Place(Coord{2, c}, SideB)
	}
	b.Place(Coord{1, 4}, SideA)
	b.Place(Coord{3, 3}, SideA)
	b.Place(Coord{0, 0}, SideA)

	s := NewSearcher(rand.New(rand.NewSource(1)))
	got, _ := s.BestMoveAtDepth(b, SideA, 2)
	if got != (Coord{2, 4}) {
		t.Errorf("BestMoveAtDepth(2) = %v, want the block at (2,4)\n%s", got, b)
	}
}

func TestBestMoveLeavesBoardUnchanged(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for _, shape := range Shapes() {
		b := randomPosition(NewBoard(5, shape), rng, 8)
		orig := b.Clone()
		s := NewSearcher(rng)
		s.BestMove(b, SideA)
		if !b.Equal(orig) {
			t.Errorf("%s: board changed by search:\n%s\nwant:\n%s", shape, b, orig)
		}
	}
}

func TestBestMoveNoMove(t *testing.T) {
	b := NewBoard(2, ShapeHexagon)
	b.Place(Coord{0, 0}, SideA)
	b.Place(Coord{0, 1}, SideB)
	b.Place(Coord{1, 0}, SideA)
	b.Place(Coord{1, 1}, SideB)

	s := NewSearcher(nil)
	if _, ok := s.BestMove(b, SideA); ok {
		t.Error("BestMove() on a full board reported a move")
	}
	if _, ok := s.BestMove(NewBoard(3, ShapeHexagon), None); ok {
		t.Error("BestMove() for None reported a move")
	}
}

// Pruning must never change the chosen move: compare against a plain
// minimax with the same leaf rules and the same root tie-break.
func TestAlphaBetaMatchesMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	for trial := 0; trial < 40; trial++ {
		size := 3 + rng.Intn(2)
		b := randomPosition(NewBoard(size, ShapeHexagon), rng, size*size-8)
		side := SideA
		if trial%2 == 1 {
			side = SideB
		}

		for depth := 1; depth <= 4; depth++ {
			want, wantScore := referenceBest(b, side, depth)

			s := NewSearcher(rng)
			got, ok := s.BestMoveAtDepth(b, side, depth)
			if !ok {
				t.Fatalf("BestMoveAtDepth() found no move on\n%s", b)
			}
			if got != want || s.Stats().Score != wantScore {
				t.Fatalf("depth %d, side %v: alpha-beta chose %v (%d), minimax chose %v (%d)\n%s",
					depth, side, got, s.Stats().Score, want, wantScore, b)
			}
		}
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	b := NewBoard(4, ShapeHexagon)
	b.Place(Coord{1, 1}, SideA)
	b.Place(Coord{2, 2}, SideB)

	s := NewSearcher(rand.New(rand.NewSource(1)))
	s.BestMoveAtDepth(b, SideA, 3)
	if s.Stats().Cutoffs == 0 {
		t.Error("search made no cutoffs")
	}
	// 14 root moves, each a node with 13 replies and 12 leaves below those.
	if full := 14 * (1 + 13 + 13*12); s.Stats().Nodes >= full {
		t.Errorf("Nodes = %d, want fewer than the %d of an unpruned search", s.Stats().Nodes, full)
	}
}

func referenceBest(b *Board, side Side, depth int) (Coord, int) {
	best, bestScore := Coord{}, math.MinInt
	for _, c := range b.EmptyCoords() {
		b.Place(c, side)
		score := referenceMinimax(b, side, depth-1, false)
		b.SetOwner(c, None)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore
}

func referenceMinimax(b *Board, side Side, depth int, maximizing bool) int {
	switch {
	case b.HasWon(side):
		return WinScore
	case b.HasWon(side.Opponent()):
		return LossScore
	case b.Full():
		return DrawScore
	case depth == 0:
		return Evaluate(b, side)
	}

	mover := side
	value := math.MinInt
	if !maximizing {
		mover = side.Opponent()
		value = math.MaxInt
	}
	for _, c := range b.EmptyCoords() {
		b.Place(c, mover)
		score := referenceMinimax(b, side, depth-1, !maximizing)
		b.SetOwner(c, None)
		if maximizing {
			value = max(value, score)
		} else {
			value = min(value, score)
		}
	}
	return value
}
