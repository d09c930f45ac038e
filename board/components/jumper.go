package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// Jumper is an insulated wire bridging the first and last cell of a straight
// XCount × YCount footprint, with a bare leg at each end going down into the
// holes. The legs sit StepDelta inside the end cells' centers.
type Jumper struct {
	XCount, YCount int
	Step           float64
	StepDelta      float64
	Radius         float64 // insulation radius
	ContactRadius  float64 // bare wire radius
	ContactHeight  float64 // leg length below the wire axis
	OffsetZ        float64
	Sections       int
	Color          Color
	ContactColor   Color
}

var _ board.Builder = Jumper{}

func (j Jumper) Validate() error {
	if j.XCount < 1 || j.YCount < 1 {
		return board.Invalidf("%s: footprint must be positive, got %dx%d", KindJumper, j.XCount, j.YCount)
	}
	if j.XCount == 1 && j.YCount == 1 {
		return board.Invalidf("%s: footprint 1x1 has no length", KindJumper)
	}
	if err := checkPositive(KindJumper,
		"step", j.Step,
		"radius", j.Radius,
		"contact_radius", j.ContactRadius,
		"contact_height", j.ContactHeight,
	); err != nil {
		return err
	}
	if j.StepDelta < 0 || math.IsNaN(j.StepDelta) {
		return board.Invalidf("%s: step delta must be non-negative, got %g", KindJumper, j.StepDelta)
	}
	if j.Radius <= j.ContactRadius {
		return board.Invalidf("%s: insulation radius %g must exceed contact radius %g", KindJumper, j.Radius, j.ContactRadius)
	}
	if l := j.Length(); l <= 2*j.ContactRadius {
		return board.Invalidf("%s: length %g leaves no room for insulation", KindJumper, l)
	}
	if math.IsNaN(j.OffsetZ) {
		return board.Invalidf("%s: offset_z is NaN", KindJumper)
	}
	return checkSections(KindJumper, j.Sections)
}

// Length is the distance between the two legs.
func (j Jumper) Length() float64 {
	return math.Hypot(float64(j.XCount-1), float64(j.YCount-1))*j.Step - 2*j.StepDelta
}

// Build starts the jumper's first leg at the origin and runs the wire along
// the footprint's direction at z = 0.
func (j Jumper) Build() (*mesh.Mesh, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	l := j.Length()
	contact := j.ContactColor.NRGBA()
	parts := make([]*mesh.Mesh, 0, 4)
	for _, x := range []float64{0, l} {
		leg, err := rod(j.ContactRadius, r3.Vec{X: x}, r3.Vec{X: x, Z: -j.ContactHeight}, j.Sections)
		if err != nil {
			return nil, err
		}
		parts = append(parts, leg.Paint(contact))
	}
	wire, err := mesh.Capsule(j.ContactRadius, l, j.Sections)
	if err != nil {
		return nil, err
	}
	parts = append(parts, wire.Translate(r3.Vec{X: l / 2}).Paint(contact))
	insulation, err := rod(j.Radius, r3.Vec{X: j.ContactRadius}, r3.Vec{X: l - j.ContactRadius}, j.Sections)
	if err != nil {
		return nil, err
	}
	parts = append(parts, insulation.Paint(j.Color.NRGBA()))

	angle := math.Atan2(float64(j.YCount-1), float64(j.XCount-1))
	return mesh.Concat(parts...).Rotate(angle, axisZ), nil
}

func (j Jumper) CacheKey() string {
	return board.NewKey(KindJumper).
		Int("x", j.XCount).
		Int("y", j.YCount).
		Float("step", j.Step).
		Float("d", j.StepDelta).
		Float("r", j.Radius).
		Float("cr", j.ContactRadius).
		Float("ch", j.ContactHeight).
		Float("z", j.OffsetZ).
		Int("n", j.Sections).
		Color("c", j.Color.NRGBA()).
		Color("cc", j.ContactColor.NRGBA()).
		Key()
}

// Offset puts the leg nearest the anchored corner StepDelta from the anchor
// cell along the run. Diagonal footprints are rejected.
func (j Jumper) Offset(side board.Side, rot board.Rotation) (r3.Vec, error) {
	if err := orientationFor(j.CacheKey(), side, rot); err != nil {
		return r3.Vec{}, err
	}
	leg := -j.ContactRadius + j.StepDelta
	switch {
	case (j.YCount == 1 && rot.IsHorizontal()) || (j.XCount == 1 && rot.IsVertical()):
		return r3.Vec{X: leg, Y: -j.Radius, Z: j.OffsetZ}, nil
	case (j.XCount == 1 && rot.IsHorizontal()) || (j.YCount == 1 && rot.IsVertical()):
		return r3.Vec{X: -j.Radius, Y: leg, Z: j.OffsetZ}, nil
	}
	return r3.Vec{}, board.NewOrientationError(j.CacheKey(), side, rot, "diagonal footprint")
}
