package hex

// HasWon reports whether side owns an unbroken chain of cells joining its
// start boundary to its goal boundary. Unknown sides never win.
func (b *Board) HasWon(side Side) bool {
	if !side.Valid() {
		return false
	}
	return b.traverse(side, nil)
}

// Winner returns the side that has connected its boundaries, or None.
func (b *Board) Winner() Side {
	switch {
	case b.HasWon(SideA):
		return SideA
	case b.HasWon(SideB):
		return SideB
	default:
		return None
	}
}

// WinningPath returns a shortest chain of side's cells from its start
// boundary to its goal boundary, start first. It returns nil when side has
// not won.
func (b *Board) WinningPath(side Side) []Coord {
	if !side.Valid() {
		return nil
	}
	parent := make([]int32, len(b.cells))
	for i := range parent {
		parent[i] = -1
	}
	end := -1
	b.traverse(side, func(from, to int) bool {
		parent[to] = int32(from)
		if b.onGoal(to, side) {
			end = to
			return true
		}
		return false
	})
	if end < 0 {
		return nil
	}

	var path []Coord
	for i := end; i >= 0; i = int(parent[i]) {
		path = append(path, b.coord(i))
	}
	// Reverse so the chain reads start to goal
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// traverse runs a breadth-first search over side's cells seeded from every
// owned cell on its start boundary. The visited set is shared by all seeds
// so each cell is expanded at most once.
//
// Without a visit callback it stops as soon as a goal-boundary cell is
// reached. With one, visit is called for every newly reached cell (from is
// -1 for seeds) and the search stops when visit returns true.
func (b *Board) traverse(side Side, visit func(from, to int) bool) bool {
	seen := make([]bool, len(b.cells))
	queue := make([]int, 0, b.size*2)

	reach := func(from, to int) bool {
		seen[to] = true
		queue = append(queue, to)
		if visit != nil {
			return visit(from, to)
		}
		return b.onGoal(to, side)
	}

	for i, s := range b.cells {
		if s != side || !b.onStart(i, side) {
			continue
		}
		if reach(-1, i) {
			return true
		}
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, j := range b.adj[cur] {
			n := int(j)
			if seen[n] || b.cells[n] != side {
				continue
			}
			if reach(cur, n) {
				return true
			}
		}
	}
	return false
}

// onStart reports whether cell i lies on side's start boundary.
func (b *Board) onStart(i int, side Side) bool {
	if side == SideA {
		return i/b.size == 0
	}
	return i%b.size == 0
}

// onGoal reports whether cell i lies on side's goal boundary.
func (b *Board) onGoal(i int, side Side) bool {
	if side == SideA {
		return i/b.size == b.size-1
	}
	return i%b.size == b.size-1
}

// axis returns the coordinate of cell i along side's connection axis.
func (b *Board) axis(i int, side Side) int {
	if side == SideA {
		return i / b.size
	}
	return i % b.size
}
