// Package hex implements the Hex engine: the board model, win detection,
// position evaluation and computer move selection.
// It has no dependencies outside the standard library so the engine stays
// pure and testable; the platform and game packages build on top of it.
package hex

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Size limits accepted by NewBoard.
const (
	MinSize = 1
	MaxSize = 19
)

// Side identifies a player, or the absence of one when used as a cell owner.
type Side int8

const (
	None  Side = iota // Empty cell / no side
	SideA             // Connects row 0 to row N-1
	SideB             // Connects column 0 to column N-1
)

// Opponent returns the other side. None has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return None
	}
}

// Valid reports whether s is one of the two playing sides.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// String returns a short name for the side.
func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "-"
	}
}

// Coord is a cell position in axial coordinates.
type Coord struct {
	Row, Col int
}

// String formats the coordinate as (row,col).
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// directions are the six neighbour offsets. The order is fixed and
// determines neighbour enumeration order.
var directions = [6]Coord{
	{-1, 0}, {-1, 1}, {0, 1},
	{1, 0}, {1, -1}, {0, -1},
}

// Placement errors returned by Board.Play.
var (
	ErrOutOfBounds = errors.New("hex: coordinate out of bounds")
	ErrNotPlayable = errors.New("hex: coordinate not playable")
	ErrOccupied    = errors.New("hex: cell already owned")
	ErrInvalidSide = errors.New("hex: invalid side")
)

// Board is an N×N grid restricted to the cells accepted by its shape.
// Cells are stored row-major. A Board is not safe for concurrent use;
// concurrent searches need their own Board (see Clone).
type Board struct {
	size     int
	shape    Shape
	playable []bool
	cells    []Side
	adj      [][]int32 // precomputed playable neighbours per cell index
	empty    int
	total    int
}

// NewBoard creates an empty board of the given size and shape.
// The size is clamped to [MinSize, MaxSize].
func NewBoard(size int, shape Shape) *Board {
	return newBoard(size, shape, shape.Predicate(clampSize(size)))
}

// NewBoardFunc creates an empty board whose playable cells are selected by
// an arbitrary predicate. The board reports ShapeCustom.
func NewBoardFunc(size int, playable Predicate) *Board {
	if playable == nil {
		playable = allPlayable
	}
	return newBoard(size, ShapeCustom, playable)
}

func newBoard(size int, shape Shape, pred Predicate) *Board {
	size = clampSize(size)
	n := size * size
	b := &Board{
		size:     size,
		shape:    shape,
		playable: make([]bool, n),
		cells:    make([]Side, n),
		adj:      make([][]int32, n),
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if pred(r, c) {
				b.playable[r*size+c] = true
				b.total++
			}
		}
	}
	b.empty = b.total

	// Adjacency never changes for the lifetime of the board
	for i := range b.cells {
		if !b.playable[i] {
			continue
		}
		r, c := i/size, i%size
		for _, d := range directions {
			nr, nc := r+d.Row, c+d.Col
			if nr < 0 || nr >= size || nc < 0 || nc >= size {
				continue
			}
			j := nr*size + nc
			if b.playable[j] {
				b.adj[i] = append(b.adj[i], int32(j))
			}
		}
	}

	return b
}

func clampSize(size int) int {
	if size < MinSize {
		return MinSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}

// Size returns the board edge length N.
func (b *Board) Size() int {
	return b.size
}

// Shape returns the shape the board was created with.
func (b *Board) Shape() Shape {
	return b.shape
}

// InBounds reports whether c lies inside the N×N grid.
func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

// Playable reports whether c is in bounds and part of the board's shape.
func (b *Board) Playable(c Coord) bool {
	return b.InBounds(c) && b.playable[b.index(c)]
}

// IsEmpty reports whether c is a playable cell with no owner.
func (b *Board) IsEmpty(c Coord) bool {
	return b.Playable(c) && b.cells[b.index(c)] == None
}

// Owner returns the owner of c. Out-of-bounds and non-playable
// coordinates report None.
func (b *Board) Owner(c Coord) Side {
	if !b.Playable(c) {
		return None
	}
	return b.cells[b.index(c)]
}

// SetOwner writes the owner of a playable cell, including clearing it with
// None. It reports false, without mutation, for non-playable coordinates or
// an unknown side value.
func (b *Board) SetOwner(c Coord, s Side) bool {
	if !b.Playable(c) || (s != None && !s.Valid()) {
		return false
	}
	i := b.index(c)
	b.write(i, s)
	return true
}

// Place puts side's mark on c. It fails, leaving the board untouched, when
// c is out of bounds, not playable, already owned, or side is not a player.
func (b *Board) Place(c Coord, side Side) bool {
	return b.Play(c, side) == nil
}

// Play is Place with the reason for a failure.
func (b *Board) Play(c Coord, side Side) error {
	if !side.Valid() {
		return ErrInvalidSide
	}
	if !b.InBounds(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	i := b.index(c)
	if !b.playable[i] {
		return fmt.Errorf("%w: %v", ErrNotPlayable, c)
	}
	if b.cells[i] != None {
		return fmt.Errorf("%w: %v", ErrOccupied, c)
	}
	b.write(i, side)
	return nil
}

// write sets a cell by index and keeps the empty counter in step.
func (b *Board) write(i int, s Side) {
	prev := b.cells[i]
	if prev == None && s != None {
		b.empty--
	} else if prev != None && s == None {
		b.empty++
	}
	b.cells[i] = s
}

// Neighbors returns the playable neighbours of c in the fixed direction
// order. Non-playable coordinates have no neighbours.
func (b *Board) Neighbors(c Coord) []Coord {
	if !b.Playable(c) {
		return nil
	}
	adj := b.adj[b.index(c)]
	out := make([]Coord, len(adj))
	for k, j := range adj {
		out[k] = b.coord(int(j))
	}
	return out
}

// Empties returns a lazy sequence of every empty playable coordinate in
// raster order. Each range over the sequence starts again from (0,0) and
// observes the board as it is at that moment.
func (b *Board) Empties() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i, s := range b.cells {
			if !b.playable[i] || s != None {
				continue
			}
			if !yield(b.coord(i)) {
				return
			}
		}
	}
}

// EmptyCoords collects Empties into a slice.
func (b *Board) EmptyCoords() []Coord {
	out := make([]Coord, 0, b.empty)
	for c := range b.Empties() {
		out = append(out, c)
	}
	return out
}

// EmptyCount returns the number of empty playable cells.
func (b *Board) EmptyCount() int {
	return b.empty
}

// PlayableCount returns the number of cells in the board's shape.
func (b *Board) PlayableCount() int {
	return b.total
}

// Count returns how many cells side owns.
func (b *Board) Count(side Side) int {
	if !side.Valid() {
		return 0
	}
	n := 0
	for _, s := range b.cells {
		if s == side {
			n++
		}
	}
	return n
}

// Full reports whether no empty cell remains.
func (b *Board) Full() bool {
	return b.empty == 0
}

// Reset clears every cell, keeping size and shape.
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = None
	}
	b.empty = b.total
}

// Clone returns an independent copy of the board. Adjacency is shared
// because it is immutable.
func (b *Board) Clone() *Board {
	nb := *b
	nb.cells = make([]Side, len(b.cells))
	copy(nb.cells, b.cells)
	return &nb
}

// Equal reports whether two boards have the same size, playable cells and
// owners, cell by cell.
func (b *Board) Equal(o *Board) bool {
	if o == nil || b.size != o.size || b.empty != o.empty {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] || b.playable[i] != o.playable[i] {
			return false
		}
	}
	return true
}

// String renders the raw grid, one row per line, for debugging and test
// failure output.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		sb.WriteString(strings.Repeat(" ", r))
		for c := 0; c < b.size; c++ {
			i := r*b.size + c
			switch {
			case !b.playable[i]:
				sb.WriteString("  ")
			case b.cells[i] == SideA:
				sb.WriteString("X ")
			case b.cells[i] == SideB:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) index(c Coord) int {
	return c.Row*b.size + c.Col
}

func (b *Board) coord(i int) Coord {
	return Coord{Row: i / b.size, Col: i % b.size}
}

// mark and unmark are the speculative make/undo pair used by search.
// Callers guarantee the cell is empty and playable.
func (b *Board) mark(i int, s Side) {
	b.cells[i] = s
	b.empty--
}

func (b *Board) unmark(i int) {
	b.cells[i] = None
	b.empty++
}

// speculate places s on cell i for the duration of fn and restores the
// cell on every return path, including panics.
func speculate[T any](b *Board, i int, s Side, fn func() T) T {
	b.mark(i, s)
	defer b.unmark(i)
	return fn()
}
