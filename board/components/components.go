// Package components implements the builders for the parts of a prototyping
// board: the board itself, through-hole parts, tracks and wires.
//
// Every builder is a plain value. Build returns a fresh solid in the builder's
// canonical frame, CacheKey identifies every parameter that shapes that solid,
// and Offset moves the solid from its anchored bounding box onto its contact
// cell. Parameters are validated both when a factory creates the builder and
// again in Build, so a hand-written literal cannot produce a broken solid.
package components

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// Kind names, also the first segment of every cache key.
const (
	KindBoard     = "Board"
	KindResistor  = "Resistor"
	KindLED       = "LED"
	KindChip      = "Chip"
	KindSocket    = "Socket"
	KindTrack     = "Track"
	KindJumper    = "Jumper"
	KindWire      = "Wire"
	KindEnclosure = "Enclosure"
)

// Axis is the direction a resistor body lies along before rotation.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis accepts "x" or "y" in any case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "":
		return AxisX, nil
	case "y":
		return AxisY, nil
	}
	return 0, board.Invalidf("unknown axis %q", s)
}

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// checkPositive returns an ErrInvalidParameter error for the first value that
// is not a positive finite number. Pairs are name, value.
func checkPositive(kind string, pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		name := pairs[i].(string)
		v := pairs[i+1].(float64)
		if !(v > 0) || math.IsInf(v, 1) {
			return board.Invalidf("%s: %s must be positive, got %g", kind, name, v)
		}
	}
	return nil
}

// SectionsMultiple is what every ring subdivision of a part must divide by.
// Offsets assume a round solid reaches its radius on X, Y and Z, and a ring
// only has samples on both axes when its sections are a multiple of four.
const SectionsMultiple = 4

func checkSections(kind string, n int) error {
	if n < mesh.MinSections || n%SectionsMultiple != 0 {
		return board.Invalidf("%s: sections must be a positive multiple of %d, got %d", kind, SectionsMultiple, n)
	}
	return nil
}

// rod returns a cylinder of the given radius between two points.
func rod(radius float64, from, to r3.Vec, sections int) (*mesh.Mesh, error) {
	d := r3.Sub(to, from)
	length := r3.Norm(d)
	m, err := mesh.Cylinder(radius, length, sections)
	if err != nil {
		return nil, err
	}
	// the cylinder lies along Z; tilt it onto d
	if axis := r3.Cross(axisZ, d); r3.Norm(axis) > 1e-12 {
		m.Rotate(math.Acos(d.Z/length), axis)
	} else if d.Z < 0 {
		m.Rotate(math.Pi, axisX)
	}
	return m.Translate(r3.Scale(0.5, r3.Add(from, to))), nil
}

// orientationFor rejects anything but the four supported rotations on either side.
func orientationFor(key string, side board.Side, rot board.Rotation) error {
	if !side.Valid() {
		return board.NewOrientationError(key, side, rot, "invalid side")
	}
	if !rot.Valid() {
		return board.NewOrientationError(key, side, rot, "invalid rotation")
	}
	return nil
}
