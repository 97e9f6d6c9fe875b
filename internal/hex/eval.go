package hex

// Evaluation weights.
const (
	cellWeight = 10
	spanWeight = 50
	edgeBonus  = 100
)

// Component is a maximal group of same-side cells joined by adjacency.
type Component struct {
	Side         Side
	Cells        []Coord
	MinAxis      int  // Lowest row (side A) or column (side B) covered
	MaxAxis      int  // Highest row (side A) or column (side B) covered
	TouchesStart bool // Contains a start-boundary cell
	TouchesGoal  bool // Contains a goal-boundary cell
}

// Span is the extent of the component along its side's connection axis.
func (c Component) Span() int {
	return c.MaxAxis - c.MinAxis
}

// Score weighs size, directional progress and boundary contact.
func (c Component) Score() int {
	score := len(c.Cells)*cellWeight + c.Span()*spanWeight
	if c.TouchesStart {
		score += edgeBonus
	}
	if c.TouchesGoal {
		score += edgeBonus
	}
	return score
}

// Components partitions side's cells into connected components, in raster
// order of each component's first cell.
func (b *Board) Components(side Side) []Component {
	if !side.Valid() {
		return nil
	}
	var out []Component
	b.eachComponent(side, func(cells []int) {
		comp := Component{Side: side, MinAxis: b.size, MaxAxis: -1}
		comp.Cells = make([]Coord, len(cells))
		for k, i := range cells {
			comp.Cells[k] = b.coord(i)
			b.fold(&comp.MinAxis, &comp.MaxAxis, &comp.TouchesStart, &comp.TouchesGoal, i, side)
		}
		out = append(out, comp)
	})
	return out
}

// Connectivity sums the component scores of side's cells.
func (b *Board) Connectivity(side Side) int {
	if !side.Valid() {
		return 0
	}
	total := 0
	b.eachComponent(side, func(cells []int) {
		lo, hi := b.size, -1
		var start, goal bool
		for _, i := range cells {
			b.fold(&lo, &hi, &start, &goal, i, side)
		}
		score := len(cells)*cellWeight + (hi-lo)*spanWeight
		if start {
			score += edgeBonus
		}
		if goal {
			score += edgeBonus
		}
		total += score
	})
	return total
}

// Evaluate scores the position for side: its connectivity minus the
// opponent's. It is a search heuristic, not a win test.
func Evaluate(b *Board, side Side) int {
	if !side.Valid() {
		return 0
	}
	return b.Connectivity(side) - b.Connectivity(side.Opponent())
}

// eachComponent flood-fills side's cells with the same adjacency HasWon
// uses. The slice passed to fn is reused between calls.
func (b *Board) eachComponent(side Side, fn func(cells []int)) {
	seen := make([]bool, len(b.cells))
	var group []int

	for i, s := range b.cells {
		if s != side || seen[i] {
			continue
		}
		group = group[:0]
		group = append(group, i)
		seen[i] = true
		for head := 0; head < len(group); head++ {
			for _, j := range b.adj[group[head]] {
				n := int(j)
				if !seen[n] && b.cells[n] == side {
					seen[n] = true
					group = append(group, n)
				}
			}
		}
		fn(group)
	}
}

func (b *Board) fold(lo, hi *int, start, goal *bool, i int, side Side) {
	a := b.axis(i, side)
	if a < *lo {
		*lo = a
	}
	if a > *hi {
		*hi = a
	}
	if b.onStart(i, side) {
		*start = true
	}
	if b.onGoal(i, side) {
		*goal = true
	}
}
