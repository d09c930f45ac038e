package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// LED is a round through-hole LED: a domed body on a flanged base with two
// leads of different length. Before rotation the anode is the lead at lower X.
type LED struct {
	Radius        float64 // dome radius
	Height        float64 // base to top of dome
	AnodeLength   float64
	CathodeLength float64
	LeadSpacing   float64 // distance between the leads' axes
	ContactRadius float64 // lead radius, also the flange width and height
	OffsetZ       float64
	Sections      int
	Color         Color
	ContactColor  Color
}

var _ board.Builder = LED{}

func (l LED) Validate() error {
	if err := checkPositive(KindLED,
		"radius", l.Radius,
		"height", l.Height,
		"anode_length", l.AnodeLength,
		"cathode_length", l.CathodeLength,
		"lead_spacing", l.LeadSpacing,
		"contact_radius", l.ContactRadius,
	); err != nil {
		return err
	}
	if l.Height <= l.Radius {
		return board.Invalidf("%s: height %g must exceed radius %g", KindLED, l.Height, l.Radius)
	}
	if l.LeadSpacing/2+l.ContactRadius > l.Radius {
		return board.Invalidf("%s: leads %g apart do not fit under a body of radius %g", KindLED, l.LeadSpacing, l.Radius)
	}
	if math.IsNaN(l.OffsetZ) {
		return board.Invalidf("%s: offset_z is NaN", KindLED)
	}
	return checkSections(KindLED, l.Sections)
}

// Build stands the body on z = 0 with the leads hanging below it.
func (l LED) Build() (*mesh.Mesh, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	cr := l.ContactRadius
	dome, err := mesh.Sphere(l.Radius, l.Sections)
	if err != nil {
		return nil, err
	}
	dome.Translate(r3.Vec{Z: l.Height - l.Radius})
	wall, err := mesh.Cylinder(l.Radius, l.Height-l.Radius, l.Sections)
	if err != nil {
		return nil, err
	}
	wall.Translate(r3.Vec{Z: (l.Height - l.Radius) / 2})
	flange, err := mesh.Cylinder(l.Radius+cr, cr, l.Sections)
	if err != nil {
		return nil, err
	}
	flange.Translate(r3.Vec{Z: cr / 2})

	half := l.LeadSpacing / 2
	anode, err := rod(cr, r3.Vec{X: -half}, r3.Vec{X: -half, Z: -l.AnodeLength}, l.Sections)
	if err != nil {
		return nil, err
	}
	cathode, err := rod(cr, r3.Vec{X: half}, r3.Vec{X: half, Z: -l.CathodeLength}, l.Sections)
	if err != nil {
		return nil, err
	}

	body := l.Color.NRGBA()
	lead := l.ContactColor.NRGBA()
	return mesh.Concat(
		dome.Paint(body),
		wall.Paint(body),
		flange.Paint(body),
		anode.Paint(lead),
		cathode.Paint(lead),
	), nil
}

func (l LED) CacheKey() string {
	return board.NewKey(KindLED).
		Float("r", l.Radius).
		Float("h", l.Height).
		Float("al", l.AnodeLength).
		Float("cl", l.CathodeLength).
		Float("s", l.LeadSpacing).
		Float("cr", l.ContactRadius).
		Float("z", l.OffsetZ).
		Int("n", l.Sections).
		Color("c", l.Color.NRGBA()).
		Color("lc", l.ContactColor.NRGBA()).
		Key()
}

// Offset puts the lead nearest the anchored corner on the anchor cell.
func (l LED) Offset(side board.Side, rot board.Rotation) (r3.Vec, error) {
	if err := orientationFor(l.CacheKey(), side, rot); err != nil {
		return r3.Vec{}, err
	}
	along := -(l.Radius + l.ContactRadius - l.LeadSpacing/2)
	across := -(l.Radius + l.ContactRadius)
	if rot.IsVertical() {
		return r3.Vec{X: across, Y: along, Z: l.OffsetZ}, nil
	}
	return r3.Vec{X: along, Y: across, Z: l.OffsetZ}, nil
}
