package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// Resistor is an axial part: a capsule body raised above the board with a
// straight lead at each end bent down through the board.
type Resistor struct {
	Length     float64 // distance between the centers of the body's end caps
	Radius     float64 // body radius
	Axis       Axis    // direction of the body before rotation
	LeadRadius float64
	LeadPitch  float64 // distance between the two vertical leads
	LeadDrop   float64 // how far the leads reach below the body axis
	OffsetZ    float64
	Label      string // marking, e.g. "10 kOm"; identity only
	Sections   int
	Color      Color
	LeadColor  Color
}

var _ board.Builder = Resistor{}

func (r Resistor) Validate() error {
	if err := checkPositive(KindResistor,
		"radius", r.Radius,
		"lead_radius", r.LeadRadius,
		"lead_pitch", r.LeadPitch,
		"lead_drop", r.LeadDrop,
	); err != nil {
		return err
	}
	if r.Length < 0 || math.IsInf(r.Length, 0) || math.IsNaN(r.Length) {
		return board.Invalidf("%s: length must be non-negative, got %g", KindResistor, r.Length)
	}
	if r.Axis != AxisX && r.Axis != AxisY {
		return board.Invalidf("%s: unknown axis %v", KindResistor, r.Axis)
	}
	if r.LeadRadius >= r.Radius {
		return board.Invalidf("%s: lead radius %g must be below body radius %g", KindResistor, r.LeadRadius, r.Radius)
	}
	if r.LeadPitch/2+r.LeadRadius < r.Length/2+r.Radius {
		return board.Invalidf("%s: leads %g apart do not clear a body of length %g", KindResistor, r.LeadPitch, r.Length)
	}
	if r.LeadDrop <= r.Radius {
		return board.Invalidf("%s: lead drop %g must exceed body radius %g", KindResistor, r.LeadDrop, r.Radius)
	}
	if math.IsNaN(r.OffsetZ) {
		return board.Invalidf("%s: offset_z is NaN", KindResistor)
	}
	return checkSections(KindResistor, r.Sections)
}

// Build lays the body along X (or Y) centered on the origin with its axis at z = 0.
func (r Resistor) Build() (*mesh.Mesh, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	body, err := mesh.Capsule(r.Radius, r.Length, r.Sections)
	if err != nil {
		return nil, err
	}
	body.Paint(r.Color.NRGBA())

	half := r.LeadPitch / 2
	parts := []*mesh.Mesh{body}
	for _, x := range []float64{-half, half} {
		// horizontal run out of the body, then straight down
		run, err := rod(r.LeadRadius, r3.Vec{}, r3.Vec{X: x}, r.Sections)
		if err != nil {
			return nil, err
		}
		drop, err := rod(r.LeadRadius, r3.Vec{X: x}, r3.Vec{X: x, Z: -r.LeadDrop}, r.Sections)
		if err != nil {
			return nil, err
		}
		elbow, err := mesh.Sphere(r.LeadRadius, r.Sections)
		if err != nil {
			return nil, err
		}
		elbow.Translate(r3.Vec{X: x})
		parts = append(parts,
			run.Paint(r.LeadColor.NRGBA()),
			drop.Paint(r.LeadColor.NRGBA()),
			elbow.Paint(r.LeadColor.NRGBA()),
		)
	}
	m := mesh.Concat(parts...)
	if r.Axis == AxisY {
		m.Rotate(math.Pi/2, axisZ)
	}
	return m, nil
}

func (r Resistor) CacheKey() string {
	return board.NewKey(KindResistor).
		Float("l", r.Length).
		Float("r", r.Radius).
		String("axis", r.Axis.String()).
		Float("lr", r.LeadRadius).
		Float("lp", r.LeadPitch).
		Float("ld", r.LeadDrop).
		Float("z", r.OffsetZ).
		String("label", r.Label).
		Int("n", r.Sections).
		Color("c", r.Color.NRGBA()).
		Color("lc", r.LeadColor.NRGBA()).
		Key()
}

// alongX reports whether the body runs along X once rotated.
func (r Resistor) alongX(rot board.Rotation) bool {
	return (r.Axis == AxisX) == rot.IsHorizontal()
}

// Offset puts the first lead on the anchor cell.
func (r Resistor) Offset(side board.Side, rot board.Rotation) (r3.Vec, error) {
	if err := orientationFor(r.CacheKey(), side, rot); err != nil {
		return r3.Vec{}, err
	}
	if r.alongX(rot) {
		return r3.Vec{X: -r.LeadRadius, Y: -r.Radius, Z: r.OffsetZ}, nil
	}
	return r3.Vec{X: -r.Radius, Y: -r.LeadRadius, Z: r.OffsetZ}, nil
}
