package hex

import (
	"fmt"
	"strings"
)

// Predicate reports whether (row, col) is part of a board.
type Predicate func(row, col int) bool

// Shape is the closed set of board outlines. Each shape is only a
// predicate over the N×N grid; the board type is the same for all of them.
type Shape int

const (
	ShapeHexagon       Shape = iota // Full rhombus, the standard Hex board
	ShapeParallelogram              // Same cells as hexagon
	ShapeDiamond                    // Cells within a taxicab radius of the centre
	ShapeTriangle                   // Cells on or above the anti-diagonal
	ShapeCustom                     // Board built from an injected predicate
)

// Shapes lists the named shapes in menu order.
func Shapes() []Shape {
	return []Shape{ShapeHexagon, ShapeParallelogram, ShapeDiamond, ShapeTriangle}
}

// String returns the configuration name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeHexagon:
		return "hexagon"
	case ShapeParallelogram:
		return "parallelogram"
	case ShapeDiamond:
		return "diamond"
	case ShapeTriangle:
		return "triangle"
	case ShapeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseShape converts a configuration name into a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hexagon", "hex", "standard":
		return ShapeHexagon, nil
	case "parallelogram", "rhombus":
		return ShapeParallelogram, nil
	case "diamond":
		return ShapeDiamond, nil
	case "triangle":
		return ShapeTriangle, nil
	default:
		return ShapeHexagon, fmt.Errorf("hex: unknown shape %q", name)
	}
}

// Predicate returns the playable-cell test for a board of the given size.
func (s Shape) Predicate(size int) Predicate {
	switch s {
	case ShapeDiamond:
		// Doubled coordinates keep the outline symmetric for even sizes.
		bound := 2 * (size / 2)
		return func(r, c int) bool {
			return abs(2*r-(size-1))+abs(2*c-(size-1)) <= bound
		}
	case ShapeTriangle:
		// The anti-diagonal is a straight hex line, so this is a true
		// hex triangle with edges along row 0, column 0 and r+c = N-1.
		return func(r, c int) bool {
			return r+c <= size-1
		}
	default:
		return allPlayable
	}
}

func allPlayable(int, int) bool {
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
