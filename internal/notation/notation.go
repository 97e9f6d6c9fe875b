// Package notation converts between board coordinates and the short text
// form used on the command line and in stored games: a column letter
// followed by a 1-based row number, so "a1" is row 0, column 0.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/vovakirdan/tui-hex/internal/hex"
)

// ErrSyntax is returned for text that is not a coordinate at all.
var ErrSyntax = errors.New("notation: malformed coordinate")

// ErrRange is returned for a well-formed coordinate outside the board.
var ErrRange = errors.New("notation: coordinate out of range")

// Format returns the notation for c, e.g. "c5".
func Format(c hex.Coord) string {
	if c.Col < 0 || c.Col >= 26 || c.Row < 0 {
		return c.String()
	}
	return string(rune('a'+c.Col)) + strconv.Itoa(c.Row+1)
}

// Parse reads a single coordinate for a board of the given size.
// Letters are case-insensitive.
func Parse(s string, size int) (hex.Coord, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return hex.Coord{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	letter := rune(s[0])
	if letter < 'a' || letter > 'z' {
		return hex.Coord{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	for _, r := range s[1:] {
		if !unicode.IsDigit(r) {
			return hex.Coord{}, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return hex.Coord{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}

	c := hex.Coord{Row: row - 1, Col: int(letter - 'a')}
	if c.Row < 0 || c.Row >= size || c.Col >= size {
		return hex.Coord{}, fmt.Errorf("%w: %q on a %dx%d board", ErrRange, s, size, size)
	}
	return c, nil
}

// ParseMoves reads a list of coordinates separated by whitespace or commas.
// An empty string is an empty list.
func ParseMoves(s string, size int) ([]hex.Coord, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	moves := make([]hex.Coord, 0, len(fields))
	for i, f := range fields {
		c, err := Parse(f, size)
		if err != nil {
			return nil, fmt.Errorf("notation: move %d: %w", i+1, err)
		}
		moves = append(moves, c)
	}
	return moves, nil
}

// FormatMoves joins moves with single spaces.
func FormatMoves(moves []hex.Coord) string {
	parts := make([]string, len(moves))
	for i, c := range moves {
		parts[i] = Format(c)
	}
	return strings.Join(parts, " ")
}

// ParseSide reads a side name. "none" and "cpu" select no side, which
// callers use for computer-only games.
func ParseSide(s string) (hex.Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "x", "red", "1":
		return hex.SideA, nil
	case "b", "o", "blue", "2":
		return hex.SideB, nil
	case "none", "cpu", "":
		return hex.None, nil
	default:
		return hex.None, fmt.Errorf("notation: unknown side %q", s)
	}
}

// FormatSide is the inverse of ParseSide.
func FormatSide(s hex.Side) string {
	switch s {
	case hex.SideA:
		return "a"
	case hex.SideB:
		return "b"
	default:
		return "none"
	}
}
