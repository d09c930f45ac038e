package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// Wire is a standing insulated wire with a bare contact at each end.
type Wire struct {
	Length        float64
	ContactLength float64 // bare length at each end
	Radius        float64 // insulation radius
	ContactRadius float64
	OffsetZ       float64
	Sections      int
	Color         Color
	ContactColor  Color
}

var _ board.Builder = Wire{}

func (w Wire) Validate() error {
	if err := checkPositive(KindWire,
		"length", w.Length,
		"contact_length", w.ContactLength,
		"radius", w.Radius,
		"contact_radius", w.ContactRadius,
	); err != nil {
		return err
	}
	if w.Length <= 2*w.ContactLength {
		return board.Invalidf("%s: length %g leaves no insulation between %g contacts", KindWire, w.Length, w.ContactLength)
	}
	if w.Radius <= w.ContactRadius {
		return board.Invalidf("%s: insulation radius %g must exceed contact radius %g", KindWire, w.Radius, w.ContactRadius)
	}
	if math.IsNaN(w.OffsetZ) {
		return board.Invalidf("%s: offset_z is NaN", KindWire)
	}
	return checkSections(KindWire, w.Sections)
}

// Build stands the wire on the Z axis, centered on the origin.
func (w Wire) Build() (*mesh.Mesh, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	contact, err := mesh.Cylinder(w.ContactRadius, w.Length, w.Sections)
	if err != nil {
		return nil, err
	}
	insulation, err := mesh.Cylinder(w.Radius, w.Length-2*w.ContactLength, w.Sections)
	if err != nil {
		return nil, err
	}
	return mesh.Concat(
		contact.Paint(w.ContactColor.NRGBA()),
		insulation.Paint(w.Color.NRGBA()),
	), nil
}

func (w Wire) CacheKey() string {
	return board.NewKey(KindWire).
		Float("l", w.Length).
		Float("cl", w.ContactLength).
		Float("r", w.Radius).
		Float("cr", w.ContactRadius).
		Float("z", w.OffsetZ).
		Int("n", w.Sections).
		Color("c", w.Color.NRGBA()).
		Color("cc", w.ContactColor.NRGBA()).
		Key()
}

// Offset puts the wire's axis on the anchor cell.
func (w Wire) Offset(side board.Side, rot board.Rotation) (r3.Vec, error) {
	if err := orientationFor(w.CacheKey(), side, rot); err != nil {
		return r3.Vec{}, err
	}
	return r3.Vec{X: -w.Radius, Y: -w.Radius, Z: w.OffsetZ}, nil
}
