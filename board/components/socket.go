package components

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// SocketPin is one pin of a Socket, in cells from the socket's first cell.
type SocketPin struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"` // rotation of the flat pin about Z, radians
}

// Socket is a connector block: a box covering XCount × YCount cells (the
// counts may be fractional) with flat pins going down through the board.
type Socket struct {
	XCount, YCount float64
	Step           float64
	Thickness      float64
	Pins           []SocketPin
	PinWidth       float64
	PinThickness   float64
	PinHeight      float64
	OffsetZ        float64
	Color          Color
	ContactColor   Color
}

var _ board.Builder = Socket{}

func (s Socket) Validate() error {
	if err := checkPositive(KindSocket,
		"x_count", s.XCount,
		"y_count", s.YCount,
		"step", s.Step,
		"thickness", s.Thickness,
		"pin_width", s.PinWidth,
		"pin_thickness", s.PinThickness,
		"pin_height", s.PinHeight,
	); err != nil {
		return err
	}
	if len(s.Pins) == 0 {
		return board.Invalidf("%s: needs at least one pin", KindSocket)
	}
	for i, p := range s.Pins {
		if p.X < 0 || p.Y < 0 || p.X+1 > s.XCount || p.Y+1 > s.YCount || math.IsNaN(p.Angle) {
			return board.Invalidf("%s: pin %d at (%g,%g) lies outside a %gx%g body", KindSocket, i, p.X, p.Y, s.XCount, s.YCount)
		}
	}
	if math.Hypot(s.PinWidth, s.PinThickness) >= s.Step {
		return board.Invalidf("%s: pin %gx%g does not fit in a cell", KindSocket, s.PinWidth, s.PinThickness)
	}
	if math.IsNaN(s.OffsetZ) {
		return board.Invalidf("%s: offset_z is NaN", KindSocket)
	}
	return nil
}

// Build puts the body's minimum corner at the origin with the pins below z = 0.
func (s Socket) Build() (*mesh.Mesh, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	body, err := mesh.Box(r3.Vec{X: s.XCount * s.Step, Y: s.YCount * s.Step, Z: s.Thickness})
	if err != nil {
		return nil, err
	}
	body.MoveToBound(mesh.BoundPositive, mesh.BoundPositive, mesh.BoundPositive).Paint(s.Color.NRGBA())

	parts := []*mesh.Mesh{body}
	for _, p := range s.Pins {
		pin, err := mesh.Box(r3.Vec{X: s.PinWidth, Y: s.PinThickness, Z: s.PinHeight})
		if err != nil {
			return nil, err
		}
		pin.Rotate(p.Angle, axisZ).Translate(r3.Vec{
			X: s.Step/2 + p.X*s.Step,
			Y: s.Step/2 + p.Y*s.Step,
			Z: -s.PinHeight / 2,
		})
		parts = append(parts, pin.Paint(s.ContactColor.NRGBA()))
	}
	return mesh.Concat(parts...), nil
}

func (s Socket) CacheKey() string {
	k := board.NewKey(KindSocket).
		Float("x", s.XCount).
		Float("y", s.YCount).
		Float("step", s.Step).
		Float("t", s.Thickness).
		Int("pins", len(s.Pins))
	for i, p := range s.Pins {
		k.Float(fmt.Sprintf("p%dx", i), p.X).
			Float(fmt.Sprintf("p%dy", i), p.Y).
			Float(fmt.Sprintf("p%da", i), p.Angle)
	}
	return k.
		Float("pw", s.PinWidth).
		Float("pt", s.PinThickness).
		Float("ph", s.PinHeight).
		Float("z", s.OffsetZ).
		Color("c", s.Color.NRGBA()).
		Color("pc", s.ContactColor.NRGBA()).
		Key()
}

// Offset puts the socket's first cell on the anchor cell. A fractional count
// leaves part of a cell past the last pin column; when the placement mirrors
// that axis the part ends up before the first cell, and the offset pulls the
// body back by it so every pin stays on the hole lattice.
func (s Socket) Offset(side board.Side, rot board.Rotation) (r3.Vec, error) {
	if err := orientationFor(s.CacheKey(), side, rot); err != nil {
		return r3.Vec{}, err
	}
	fx := s.XCount - math.Floor(s.XCount)
	fy := s.YCount - math.Floor(s.YCount)

	// which local count lies along the placed X and Y, and whether it is reversed
	var srcX, srcY float64
	var flipX, flipY bool
	switch rot {
	case board.NoRotation:
		srcX, srcY = fx, fy
	case board.Rotate180:
		srcX, srcY, flipX, flipY = fx, fy, true, true
	case board.CounterClockwise90:
		srcX, srcY, flipX = fy, fx, true
	case board.Clockwise90:
		srcX, srcY, flipY = fy, fx, true
	}
	if side == board.Bottom {
		flipY = !flipY
	}

	off := r3.Vec{X: -s.Step / 2, Y: -s.Step / 2, Z: s.OffsetZ}
	if flipX {
		off.X -= srcX * s.Step
	}
	if flipY {
		off.Y -= srcY * s.Step
	}
	return off, nil
}
