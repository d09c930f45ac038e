package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// Chip is a dual in-line package. XCount pins run along each long side of a
// body YCount cells wide; the pin rows sit half a step outside the body, so
// the rows are YCount+1 cells apart.
type Chip struct {
	XCount, YCount  int
	Step            float64
	Thickness       float64 // body height
	PinThickness    float64
	PinTopLength    float64 // wide part of the pin below the shoulder
	PinBottomLength float64 // narrow part that goes through the board
	PinTopWidth     float64
	PinBottomWidth  float64
	OffsetZ         float64
	Label           string // part marking; identity only
	Color           Color
	ContactColor    Color
}

var _ board.Builder = Chip{}

func (c Chip) Validate() error {
	if c.XCount < 1 || c.YCount < 1 {
		return board.Invalidf("%s: needs at least one pin per row and one cell of width, got %dx%d", KindChip, c.XCount, c.YCount)
	}
	if err := checkPositive(KindChip,
		"step", c.Step,
		"thickness", c.Thickness,
		"pin_thickness", c.PinThickness,
		"pin_top_length", c.PinTopLength,
		"pin_bottom_length", c.PinBottomLength,
		"pin_top_width", c.PinTopWidth,
		"pin_bottom_width", c.PinBottomWidth,
	); err != nil {
		return err
	}
	if c.PinTopWidth >= c.Step {
		return board.Invalidf("%s: pin width %g must be below step %g", KindChip, c.PinTopWidth, c.Step)
	}
	if c.PinBottomWidth > c.PinTopWidth {
		return board.Invalidf("%s: pin bottom width %g exceeds top width %g", KindChip, c.PinBottomWidth, c.PinTopWidth)
	}
	if c.PinThickness >= c.Step/2 {
		return board.Invalidf("%s: pin thickness %g must be below half a step", KindChip, c.PinThickness)
	}
	if math.IsNaN(c.OffsetZ) {
		return board.Invalidf("%s: offset_z is NaN", KindChip)
	}
	return nil
}

// Build puts the body's minimum corner at the origin.
func (c Chip) Build() (*mesh.Mesh, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	width := float64(c.YCount) * c.Step
	body, err := mesh.Box(r3.Vec{X: float64(c.XCount) * c.Step, Y: width, Z: c.Thickness})
	if err != nil {
		return nil, err
	}
	body.MoveToBound(mesh.BoundPositive, mesh.BoundPositive, mesh.BoundPositive).Paint(c.Color.NRGBA())

	pin, err := c.pin()
	if err != nil {
		return nil, err
	}
	parts := []*mesh.Mesh{body}
	for i := 0; i < c.XCount; i++ {
		x := c.Step/2 + float64(i)*c.Step
		near := pin.Clone().Translate(r3.Vec{X: x, Y: -c.Step / 2})
		// the far row is the near row mirrored across the body's center line
		far := pin.Clone().Rotate(math.Pi, axisZ).Translate(r3.Vec{X: x, Y: width + c.Step/2})
		parts = append(parts, near, far)
	}
	return mesh.Concat(parts...), nil
}

// pin returns one pin of the near row with its legs centered on the XY origin
// and the shoulder reaching +Y to the body edge.
func (c Chip) pin() (*mesh.Mesh, error) {
	mid := c.Thickness / 2
	reach := c.Step/2 + c.PinThickness/2
	shoulder, err := mesh.Box(r3.Vec{X: c.PinTopWidth, Y: reach, Z: c.PinThickness})
	if err != nil {
		return nil, err
	}
	shoulder.Translate(r3.Vec{Y: c.Step/2 - reach/2, Z: mid})
	top, err := mesh.Box(r3.Vec{X: c.PinTopWidth, Y: c.PinThickness, Z: c.PinTopLength})
	if err != nil {
		return nil, err
	}
	top.Translate(r3.Vec{Z: mid - c.PinTopLength/2})
	bottom, err := mesh.Box(r3.Vec{X: c.PinBottomWidth, Y: c.PinThickness, Z: c.PinBottomLength})
	if err != nil {
		return nil, err
	}
	bottom.Translate(r3.Vec{Z: mid - c.PinTopLength - c.PinBottomLength/2})
	return mesh.Concat(shoulder, top, bottom).Paint(c.ContactColor.NRGBA()), nil
}

func (c Chip) CacheKey() string {
	return board.NewKey(KindChip).
		Int("x", c.XCount).
		Int("y", c.YCount).
		Float("step", c.Step).
		Float("t", c.Thickness).
		Float("pt", c.PinThickness).
		Float("ptl", c.PinTopLength).
		Float("pbl", c.PinBottomLength).
		Float("ptw", c.PinTopWidth).
		Float("pbw", c.PinBottomWidth).
		Float("z", c.OffsetZ).
		String("label", c.Label).
		Color("c", c.Color.NRGBA()).
		Color("pc", c.ContactColor.NRGBA()).
		Key()
}

// Offset puts the first pin of the near row on the anchor cell.
func (c Chip) Offset(side board.Side, rot board.Rotation) (r3.Vec, error) {
	if err := orientationFor(c.CacheKey(), side, rot); err != nil {
		return r3.Vec{}, err
	}
	along, across := -c.Step/2, -c.PinThickness/2
	if rot.IsVertical() {
		return r3.Vec{X: across, Y: along, Z: c.OffsetZ}, nil
	}
	return r3.Vec{X: along, Y: across, Z: c.OffsetZ}, nil
}
