package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// Track is a solder bridge joining the first and last cell of an
// XCount × YCount footprint. It is the upper half of a capsule; the lower
// half is folded flat into the base plane.
type Track struct {
	XCount, YCount int
	Step           float64
	Radius         float64
	OffsetZ        float64
	Sections       int
	Color          Color
}

var _ board.Builder = Track{}

func (t Track) Validate() error {
	if t.XCount < 1 || t.YCount < 1 {
		return board.Invalidf("%s: footprint must be at least 1x1, got %dx%d", KindTrack, t.XCount, t.YCount)
	}
	if err := checkPositive(KindTrack, "step", t.Step, "radius", t.Radius); err != nil {
		return err
	}
	if math.IsNaN(t.OffsetZ) {
		return board.Invalidf("%s: offset_z is NaN", KindTrack)
	}
	return checkSections(KindTrack, t.Sections)
}

// Length is the distance between the centers of the end cells.
func (t Track) Length() float64 {
	return math.Hypot(float64(t.XCount-1), float64(t.YCount-1)) * t.Step
}

// Angle is the track's direction from the first cell, counter-clockwise from +X.
func (t Track) Angle() float64 {
	return math.Atan2(float64(t.YCount-1), float64(t.XCount-1))
}

// Build starts the track at the origin and runs it along Angle on z >= 0.
func (t Track) Build() (*mesh.Mesh, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	length := t.Length()
	m, err := mesh.Capsule(t.Radius, length, t.Sections)
	if err != nil {
		return nil, err
	}
	m.Transform(func(v r3.Vec) r3.Vec {
		v.Z = math.Max(v.Z, 0)
		return v
	})
	return m.Translate(r3.Vec{X: length / 2}).
		Rotate(t.Angle(), axisZ).
		Paint(t.Color.NRGBA()), nil
}

func (t Track) CacheKey() string {
	return board.NewKey(KindTrack).
		Int("x", t.XCount).
		Int("y", t.YCount).
		Float("step", t.Step).
		Float("r", t.Radius).
		Float("z", t.OffsetZ).
		Int("n", t.Sections).
		Color("c", t.Color.NRGBA()).
		Key()
}

// Offset puts the end cap nearest the anchored corner on the anchor cell.
func (t Track) Offset(side board.Side, rot board.Rotation) (r3.Vec, error) {
	if err := orientationFor(t.CacheKey(), side, rot); err != nil {
		return r3.Vec{}, err
	}
	return r3.Vec{X: -t.Radius, Y: -t.Radius, Z: t.OffsetZ}, nil
}
