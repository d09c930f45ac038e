package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// Board is a perforated prototyping board: a slab with a plated contact pad
// around every grid hole. Its canonical frame puts the slab's minimum corner at
// the origin and centers it on z = 0 after the offset is applied.
type Board struct {
	XCount, YCount      int     // holes per row and per column
	Step                float64 // grid pitch
	PadRadius           float64 // hole radius
	ContactPadRadius    float64
	ContactPadThickness float64 // how far each pad stands proud of the slab on either face
	Thickness           float64 // overall thickness including the pads
	XIndent, YIndent    float64 // margin between the outermost holes' cells and the edge
	Sections            int
	Color               Color
	ContactPadColor     Color
}

var _ board.Builder = Board{}

// Validate checks the board's preconditions.
func (b Board) Validate() error {
	if b.XCount < 1 || b.YCount < 1 {
		return board.Invalidf("%s: grid must be at least 1x1, got %dx%d", KindBoard, b.XCount, b.YCount)
	}
	if err := checkPositive(KindBoard,
		"step", b.Step,
		"pad_radius", b.PadRadius,
		"contact_pad_radius", b.ContactPadRadius,
		"contact_pad_thickness", b.ContactPadThickness,
		"thickness", b.Thickness,
	); err != nil {
		return err
	}
	if b.XIndent < 0 || b.YIndent < 0 {
		return board.Invalidf("%s: indents must be non-negative, got %g, %g", KindBoard, b.XIndent, b.YIndent)
	}
	if b.ContactPadRadius <= b.PadRadius {
		return board.Invalidf("%s: contact pad radius %g must exceed hole radius %g", KindBoard, b.ContactPadRadius, b.PadRadius)
	}
	if 2*b.ContactPadRadius > b.Step {
		return board.Invalidf("%s: contact pads of radius %g overlap at step %g", KindBoard, b.ContactPadRadius, b.Step)
	}
	if 2*b.ContactPadThickness >= b.Thickness {
		return board.Invalidf("%s: pad thickness %g leaves no slab in thickness %g", KindBoard, b.ContactPadThickness, b.Thickness)
	}
	return checkSections(KindBoard, b.Sections)
}

// Size returns the slab's outline.
func (b Board) Size() r3.Vec {
	return r3.Vec{
		X: b.Step*float64(b.XCount) + 2*b.XIndent,
		Y: b.Step*float64(b.YCount) + 2*b.YIndent,
		Z: b.Thickness,
	}
}

func (b Board) Build() (*mesh.Mesh, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	size := b.Size()
	slab, err := mesh.Box(r3.Vec{X: size.X, Y: size.Y, Z: b.Thickness - 2*b.ContactPadThickness})
	if err != nil {
		return nil, err
	}
	slab.MoveToBound(mesh.BoundPositive, mesh.BoundPositive, mesh.BoundCenter).Paint(b.Color.NRGBA())

	pad, err := mesh.Tube(b.PadRadius, b.ContactPadRadius, b.Thickness, b.Sections)
	if err != nil {
		return nil, err
	}
	pad.Paint(b.ContactPadColor.NRGBA())

	parts := make([]*mesh.Mesh, 0, 1+b.XCount*b.YCount)
	parts = append(parts, slab)
	for i := 0; i < b.XCount; i++ {
		for j := 0; j < b.YCount; j++ {
			parts = append(parts, pad.Clone().Translate(r3.Vec{
				X: b.XIndent + b.Step/2 + float64(i)*b.Step,
				Y: b.YIndent + b.Step/2 + float64(j)*b.Step,
			}))
		}
	}
	return mesh.Concat(parts...), nil
}

func (b Board) CacheKey() string {
	return board.NewKey(KindBoard).
		Int("x", b.XCount).
		Int("y", b.YCount).
		Float("step", b.Step).
		Float("pad", b.PadRadius).
		Float("cpad", b.ContactPadRadius).
		Float("cpadt", b.ContactPadThickness).
		Float("t", b.Thickness).
		Float("xi", b.XIndent).
		Float("yi", b.YIndent).
		Int("n", b.Sections).
		Color("c", b.Color.NRGBA()).
		Color("cpc", b.ContactPadColor.NRGBA()).
		Key()
}

// Offset puts the center of the first hole on the anchor cell and the board's
// mid-plane on the origin's Z.
func (b Board) Offset(side board.Side, rot board.Rotation) (r3.Vec, error) {
	if err := orientationFor(b.CacheKey(), side, rot); err != nil {
		return r3.Vec{}, err
	}
	x, y := -b.Step/2-b.XIndent, -b.Step/2-b.YIndent
	if rot.IsVertical() {
		x, y = y, x
	}
	return r3.Vec{X: x, Y: y, Z: -b.Thickness / 2}, nil
}
