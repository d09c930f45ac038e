package board

import (
	"fmt"
	"math"
	"strings"
)

// Side is the mounting face of the board.
type Side int8

const (
	// Top is the component side; its solids extend towards +Z.
	Top Side = 1
	// Bottom is the solder side; its solids extend towards -Z.
	Bottom Side = -1
)

// Direction returns +1 for Top and -1 for Bottom.
func (s Side) Direction() float64 {
	return float64(s)
}

// Valid reports whether s is Top or Bottom.
func (s Side) Valid() bool {
	return s == Top || s == Bottom
}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("side(%d)", int8(s))
	}
}

// ParseSide converts "top" or "bottom" (case-insensitive) into a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "+1", "1":
		return Top, nil
	case "bottom", "-1":
		return Bottom, nil
	default:
		return 0, fmt.Errorf("%w: unknown side %q", ErrInvalidParameter, s)
	}
}

// Rotation is an in-plane orientation. The value is the signed angle in degrees,
// counter-clockwise positive when looking down onto the top side.
type Rotation int

const (
	NoRotation         Rotation = 0
	CounterClockwise90 Rotation = 90
	Clockwise90        Rotation = -90
	Rotate180          Rotation = 180
)

// Rotations lists every valid rotation in a fixed order.
var Rotations = []Rotation{NoRotation, CounterClockwise90, Clockwise90, Rotate180}

// Valid reports whether r is one of the four supported orientations.
func (r Rotation) Valid() bool {
	switch r {
	case NoRotation, CounterClockwise90, Clockwise90, Rotate180:
		return true
	}
	return false
}

// Angle returns the rotation in radians.
func (r Rotation) Angle() float64 {
	return float64(r) * math.Pi / 180
}

// IsHorizontal reports whether the rotation keeps the footprint's X extent along X.
func (r Rotation) IsHorizontal() bool {
	return r == NoRotation || r == Rotate180
}

// IsVertical reports whether the rotation swaps the footprint's X and Y extents.
func (r Rotation) IsVertical() bool {
	return r == CounterClockwise90 || r == Clockwise90
}

func (r Rotation) String() string {
	switch r {
	case NoRotation:
		return "0"
	case CounterClockwise90:
		return "ccw90"
	case Clockwise90:
		return "cw90"
	case Rotate180:
		return "180"
	default:
		return fmt.Sprintf("rotation(%d)", int(r))
	}
}

// ParseRotation accepts degrees ("0", "90", "-90", "180", "270") or the names
// "none", "ccw90", "cw90", "rotate180".
func ParseRotation(s string) (Rotation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "none":
		return NoRotation, nil
	case "90", "+90", "ccw90", "ccw":
		return CounterClockwise90, nil
	case "-90", "270", "cw90", "cw":
		return Clockwise90, nil
	case "180", "-180", "rotate180":
		return Rotate180, nil
	default:
		return 0, fmt.Errorf("%w: unknown rotation %q", ErrInvalidParameter, s)
	}
}

// Cell is an integer address on the placement grid.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
