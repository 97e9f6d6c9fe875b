package hex

import (
	"math/rand"
	"testing"
)

func TestComponentScore(t *testing.T) {
	tests := []struct {
		name  string
		side  Side
		cells []Coord
		want  int
	}{
		{"lone interior cell", SideA, []Coord{{2, 2}}, 10},
		{"lone start cell for A", SideA, []Coord{{0, 3}}, 110},
		{"lone start cell for B", SideB, []Coord{{3, 0}}, 110},
		{"row 0 is not a B start cell", SideB, []Coord{{0, 3}}, 10},
		{"two cells across A's axis", SideA, []Coord{{2, 2}, {3, 2}}, 20 + 50},
		{"two cells along a row for A", SideA, []Coord{{2, 2}, {2, 3}}, 20},
		{"full column for A", SideA, []Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, 50 + 200 + 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(5, ShapeHexagon)
			for _, c := range tt.cells {
				b.Place(c, tt.side)
			}
			comps := b.Components(tt.side)
			if len(comps) != 1 {
				t.Fatalf("Components() returned %d groups, want 1", len(comps))
			}
			if got := comps[0].Score(); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
			if got := b.Connectivity(tt.side); got != tt.want {
				t.Errorf("Connectivity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComponentsSplitsGroups(t *testing.T) {
	b := NewBoard(5, ShapeHexagon)
	b.Place(Coord{0, 0}, SideA)
	b.Place(Coord{1, 0}, SideA)
	b.Place(Coord{4, 4}, SideA)
	b.Place(Coord{2, 2}, SideB)

	comps := b.Components(SideA)
	if len(comps) != 2 {
		t.Fatalf("Components(A) returned %d groups, want 2", len(comps))
	}
	if len(comps[0].Cells) != 2 || comps[0].Cells[0] != (Coord{0, 0}) {
		t.Errorf("first component = %v, want the two cells starting at (0,0)", comps[0].Cells)
	}
	if !comps[1].TouchesGoal || comps[1].TouchesStart {
		t.Errorf("second component start=%v goal=%v, want goal only",
			comps[1].TouchesStart, comps[1].TouchesGoal)
	}

	// (0,0)-(1,0): 20 + 50 + 100; (4,4): 10 + 100
	if got := b.Connectivity(SideA); got != 280 {
		t.Errorf("Connectivity(A) = %d, want 280", got)
	}
	if got := Evaluate(b, SideA); got != 270 {
		t.Errorf("Evaluate(A) = %d, want 270", got)
	}
}

func TestEvaluateIsAntisymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		b := randomPosition(NewBoard(7, ShapeHexagon), rng, rng.Intn(30))
		a, o := Evaluate(b, SideA), Evaluate(b, SideB)
		if a != -o {
			t.Fatalf("Evaluate(A) = %d, Evaluate(B) = %d, want negatives\n%s", a, o, b)
		}
	}
}

func TestEvaluateEmptyAndInvalid(t *testing.T) {
	b := NewBoard(5, ShapeHexagon)
	if got := Evaluate(b, SideA); got != 0 {
		t.Errorf("Evaluate(empty, A) = %d, want 0", got)
	}
	b.Place(Coord{2, 2}, SideA)
	if got := Evaluate(b, None); got != 0 {
		t.Errorf("Evaluate(None) = %d, want 0", got)
	}
	if got := b.Components(None); got != nil {
		t.Errorf("Components(None) = %v, want nil", got)
	}
}
