package hexgame

import (
	"fmt"

	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/hex"
	"github.com/vovakirdan/tui-hex/internal/notation"
)

// Layout places a board of a given size on the screen. Each row is shifted
// one column right of the one above, and cells sit two columns apart, so
// the six neighbours of a cell touch it on screen:
//
//	     a b c
//	 1 \ . . . \
//	  2 \ . . . \
//	   3 \ . . . \
//	        a b c
type Layout struct {
	Area core.Rect
	size int
}

// Space around the cells: row label and edge marker on the left, edge
// marker on the right, then title, column letters and two footer lines.
const (
	marginLeft  = 5
	marginRight = 3
	linesAbove  = 2
	linesBelow  = 3
)

// NewLayout centres a size×size board on a w×h screen. It reports false
// when the screen is too small.
func NewLayout(size, w, h int) (Layout, bool) {
	bw, bh := LayoutSize(size)
	area := core.NewRect(0, 0, w, h).CenterIn(bw, bh)
	return Layout{Area: area, size: size}, w >= bw && h >= bh
}

// LayoutSize returns the screen area a board of the given size needs.
func LayoutSize(size int) (w, h int) {
	return marginLeft + 3*(size-1) + marginRight, linesAbove + size + linesBelow
}

// Cell returns the screen position of a board cell.
func (l Layout) Cell(c hex.Coord) (x, y int) {
	return l.Area.X + marginLeft + c.Row + 2*c.Col, l.Area.Y + linesAbove + c.Row
}

// BoardView holds what to draw around the board.
type BoardView struct {
	Title      string
	Status     string
	Help       string
	Cursor     hex.Coord
	ShowCursor bool
}

// DrawBoard renders a match into dst.
func DrawBoard(dst *core.Screen, m *Match, v BoardView) {
	b := m.Board()
	size := b.Size()

	l, ok := NewLayout(size, dst.Width(), dst.Height())
	if !ok {
		w, h := LayoutSize(size)
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", w, h))
		return
	}

	top := l.Area.Y
	dst.DrawTextCenteredColor(top, v.Title, core.ColorBrightWhite)

	// Side A owns the top and bottom edges, shown by red column letters
	for c := range size {
		letter := string(rune('a' + c))
		x, _ := l.Cell(hex.Coord{Row: 0, Col: c})
		dst.DrawTextColor(x, top+1, letter, core.ColorSideA)
		x, y := l.Cell(hex.Coord{Row: size - 1, Col: c})
		dst.DrawTextColor(x+1, y+1, letter, core.ColorSideA)
	}

	highlight := make(map[hex.Coord]bool)
	for _, c := range m.WinningPath() {
		highlight[c] = true
	}
	if last, ok := m.LastMove(); ok {
		highlight[last] = true
	}

	for r := range size {
		x0, y := l.Cell(hex.Coord{Row: r})
		dst.DrawTextColor(x0-marginLeft, y, fmt.Sprintf("%2d", r+1), core.ColorGray)
		dst.SetColor(x0-2, y, '\\', core.ColorSideB)
		xn, _ := l.Cell(hex.Coord{Row: r, Col: size - 1})
		dst.SetColor(xn+2, y, '\\', core.ColorSideB)

		for c := range size {
			coord := hex.Coord{Row: r, Col: c}
			x, _ := l.Cell(coord)
			glyph := []rune(notation.Glyph(b, coord))[0]
			dst.SetColor(x, y, glyph, cellColor(b.Owner(coord), highlight[coord]))
		}
	}

	if v.ShowCursor && b.Playable(v.Cursor) {
		x, y := l.Cell(v.Cursor)
		dst.SetColor(x-1, y, '(', core.ColorCursor)
		dst.SetColor(x+1, y, ')', core.ColorCursor)
	}

	bottom := l.Area.Bottom()
	dst.DrawTextCenteredColor(bottom-2, v.Status, statusColor(m))
	dst.DrawTextCenteredColor(bottom-1, v.Help, core.ColorGray)
}

func cellColor(owner hex.Side, bright bool) core.Color {
	switch {
	case owner == hex.SideA && bright:
		return core.ColorSideAHigh
	case owner == hex.SideA:
		return core.ColorSideA
	case owner == hex.SideB && bright:
		return core.ColorSideBHigh
	case owner == hex.SideB:
		return core.ColorSideB
	default:
		return core.ColorEmpty
	}
}

func statusColor(m *Match) core.Color {
	side := m.ToMove()
	if m.Over() {
		side = m.Winner()
	}
	switch side {
	case hex.SideA:
		return core.ColorSideAHigh
	case hex.SideB:
		return core.ColorSideBHigh
	default:
		return core.ColorWhite
	}
}

const localHelp = "arrows move  enter place  u undo  p pause  r restart  q quit"

// Render draws the game into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	b := g.match.Board()
	title := fmt.Sprintf("%s  %dx%d  computer: %s", g.variant.title, b.Size(), b.Size(), g.strength)
	if g.streak > 0 {
		title += fmt.Sprintf("  streak: %d", g.streak)
	}
	if s := g.lastStats; s.Depth > 0 {
		title += fmt.Sprintf("  depth %d, %d nodes", s.Depth, s.Nodes)
	}
	DrawBoard(dst, g.match, BoardView{
		Title:      title,
		Status:     g.status(),
		Help:       localHelp,
		Cursor:     g.cursor,
		ShowCursor: g.humanToMove() && !g.paused,
	})
}
