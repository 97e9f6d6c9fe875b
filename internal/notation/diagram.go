package notation

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-hex/internal/hex"
)

// Diagram draws the board as text, each row shifted one space further
// right so the rhombus reads the way the cells actually touch:
//
//	  a b c
//	1 . X .
//	2  . O .
//	3   . . .
//
// Side A (X) connects top to bottom, side B (O) left to right.
// Non-playable cells are blank.
func Diagram(b *hex.Board) string {
	size := b.Size()
	label := len(fmt.Sprint(size))

	var sb strings.Builder
	var line strings.Builder

	line.WriteString(strings.Repeat(" ", label+1))
	for c := 0; c < size; c++ {
		line.WriteByte(byte('a' + c))
		line.WriteByte(' ')
	}
	sb.WriteString(strings.TrimRight(line.String(), " "))
	sb.WriteByte('\n')

	for r := 0; r < size; r++ {
		line.Reset()
		fmt.Fprintf(&line, "%*d ", label, r+1)
		line.WriteString(strings.Repeat(" ", r))
		for c := 0; c < size; c++ {
			line.WriteString(Glyph(b, hex.Coord{Row: r, Col: c}))
			line.WriteByte(' ')
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Glyph is the one-character cell marker used by Diagram.
func Glyph(b *hex.Board, c hex.Coord) string {
	if !b.Playable(c) {
		return " "
	}
	switch b.Owner(c) {
	case hex.SideA:
		return "X"
	case hex.SideB:
		return "O"
	default:
		return "."
	}
}
