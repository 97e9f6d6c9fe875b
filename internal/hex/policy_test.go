package hex

import (
	"math/rand"
	"testing"
)

func TestHeuristicBlocksOnlyGap(t *testing.T) {
	// Every cell but (2,2) belongs to A; B must play the last cell.
	b := NewBoard(5, ShapeHexagon)
	for c := range b.Empties() {
		if c != (Coord{2, 2}) {
			b.SetOwner(c, SideA)
		}
	}

	got, ok := HeuristicMove(b, SideB, rand.New(rand.NewSource(1)))
	if !ok || got != (Coord{2, 2}) {
		t.Errorf("HeuristicMove() = %v, %v; want (2,2), true", got, ok)
	}
}

func TestHeuristicTakesWin(t *testing.T) {
	b := NewBoard(5, ShapeHexagon)
	for r := 0; r < 4; r++ {
		b.Place(Coord{r, 2}, SideA)
	}
	b.Place(Coord{4, 1}, SideB)
	b.Place(Coord{0, 0}, SideB)
	b.Place(Coord{2, 0}, SideB)

	got, ok := HeuristicMove(b, SideA, rand.New(rand.NewSource(1)))
	if !ok {
		t.Fatal("HeuristicMove() found no move")
	}
	if got != (Coord{4, 2}) {
		t.Errorf("HeuristicMove() = %v, want the winning (4,2)\n%s", got, b)
	}
	b.Place(got, SideA)
	if !b.HasWon(SideA) {
		t.Error("chosen move does not win")
	}
}

func TestHeuristicBlocks(t *testing.T) {
	b := NewBoard(5, ShapeHexagon)
	for c := 0; c < 4; c++ {
		b.Place(Coord{2, c}, SideB)
	}
	b.Place(Coord{1, 4}, SideA)

	got, _ := HeuristicMove(b, SideA, rand.New(rand.NewSource(1)))
	if got != (Coord{2, 4}) {
		t.Errorf("HeuristicMove() = %v, want the block at (2,4)", got)
	}
}

func TestHeuristicPrefersCentreLine(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBoard(5, ShapeHexagon)

	if got, _ := HeuristicMove(b, SideA, rng); got != (Coord{0, 2}) {
		t.Errorf("A on empty board = %v, want (0,2)", got)
	}
	if got, _ := HeuristicMove(b, SideB, rng); got != (Coord{2, 0}) {
		t.Errorf("B on empty board = %v, want (2,0)", got)
	}

	// A friendly neighbour outweighs centrality; among the neighbours of
	// (3,0) the one closest to the centre column wins.
	b.Place(Coord{3, 0}, SideA)
	if got, _ := HeuristicMove(b, SideA, rng); got != (Coord{2, 1}) {
		t.Errorf("A next to its stone = %v, want (2,1)", got)
	}
}

func TestRandomMove(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBoard(4, ShapeDiamond)
	seen := make(map[Coord]bool)
	for i := 0; i < 500; i++ {
		c, ok := RandomMove(b, rng)
		if !ok {
			t.Fatal("RandomMove() found no move on an empty board")
		}
		if !b.IsEmpty(c) {
			t.Fatalf("RandomMove() = %v, not an empty playable cell", c)
		}
		seen[c] = true
	}
	if len(seen) != b.PlayableCount() {
		t.Errorf("RandomMove() reached %d cells, want all %d", len(seen), b.PlayableCount())
	}
}

func TestChooseMoveFullBoard(t *testing.T) {
	b := NewBoard(1, ShapeHexagon)
	b.Place(Coord{0, 0}, SideA)
	rng := rand.New(rand.NewSource(1))
	for _, s := range Strengths() {
		if _, ok := ChooseMove(b, SideB, s, rng); ok {
			t.Errorf("ChooseMove(%s) on a full board reported a move", s)
		}
	}
}

func TestChooseMoveReturnsEmptyCell(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, shape := range Shapes() {
		for _, s := range Strengths() {
			b := randomPosition(NewBoard(5, shape), rng, 6)
			c, ok := ChooseMove(b, SideB, s, rng)
			if !ok || !b.IsEmpty(c) {
				t.Errorf("%s/%s: ChooseMove() = %v, %v; want an empty cell", shape, s, c, ok)
			}
		}
	}
}

func TestComputerRecordsSearch(t *testing.T) {
	b := NewBoard(3, ShapeHexagon)
	var src MoveSource = NewComputer(StrengthSearch, rand.New(rand.NewSource(1)))
	if _, ok := src.NextMove(b, SideA); !ok {
		t.Fatal("NextMove() found no move")
	}
	stats := src.(*Computer).LastSearch()
	if stats.Depth != 5 || stats.Nodes == 0 {
		t.Errorf("LastSearch() = %+v, want depth 5 and some nodes", stats)
	}
}

func TestParseStrength(t *testing.T) {
	tests := []struct {
		in      string
		want    Strength
		wantErr bool
	}{
		{"sampling", StrengthSampling, false},
		{"easy", StrengthSampling, false},
		{"Heuristic", StrengthHeuristic, false},
		{"normal", StrengthHeuristic, false},
		{"search", StrengthSearch, false},
		{" hard ", StrengthSearch, false},
		{"impossible", StrengthSampling, true},
	}
	for _, tt := range tests {
		got, err := ParseStrength(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrength(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrength(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, s := range Strengths() {
		if got, err := ParseStrength(s.String()); err != nil || got != s {
			t.Errorf("ParseStrength(%q) = %v, %v", s.String(), got, err)
		}
	}
}
