package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightWhite
	ColorGray
)

// Side colors. Side A is red (top to bottom), side B blue (left to right).
const (
	ColorSideA     = ColorRed
	ColorSideB     = ColorBlue
	ColorSideAHigh = ColorBrightRed
	ColorSideBHigh = ColorBrightBlue
	ColorCursor    = ColorBrightYellow
	ColorEmpty     = ColorGray
)
