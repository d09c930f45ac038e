package pattern

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Layout maps grid cells to physical millimetres. The origin is the outer
// corner of the indent, so a cell center sits at indent + cell*step + step/2.
type Layout struct {
	Step             float64
	XIndent, YIndent float64
}

// NewLayout returns the layout of p on a grid of the given step.
func NewLayout(step float64, p *BoardPattern) Layout {
	return Layout{Step: step, XIndent: p.XIndent, YIndent: p.YIndent}
}

// CellCenter returns the physical center of cell (x, y).
func (l Layout) CellCenter(x, y int) r2.Vec {
	return r2.Vec{
		X: l.XIndent + float64(x)*l.Step + l.Step/2,
		Y: l.YIndent + float64(y)*l.Step + l.Step/2,
	}
}

// GridLine returns the physical position of the i-th grid line on each axis.
func (l Layout) GridLine(i int) r2.Vec {
	return r2.Vec{X: l.XIndent + float64(i)*l.Step, Y: l.YIndent + float64(i)*l.Step}
}

// Size returns the outline of p including both indents.
func (l Layout) Size(p *BoardPattern) r2.Vec {
	return r2.Vec{
		X: 2*l.XIndent + float64(p.XCount)*l.Step,
		Y: 2*l.YIndent + float64(p.YCount)*l.Step,
	}
}

// Shape is a filled 2D primitive in physical coordinates.
type Shape interface {
	Contains(x, y float64) bool
	Bounds() (min, max r2.Vec)
}

// Capsule is a segment from A to B thickened by Radius, with round ends.
type Capsule struct {
	A, B   r2.Vec
	Radius float64
}

func (c Capsule) Contains(x, y float64) bool {
	p := r2.Vec{X: x, Y: y}
	d := r2.Sub(c.B, c.A)
	t := 0.0
	if l2 := r2.Dot(d, d); l2 > 0 {
		t = math.Max(0, math.Min(1, r2.Dot(r2.Sub(p, c.A), d)/l2))
	}
	nearest := r2.Add(c.A, r2.Scale(t, d))
	return r2.Norm(r2.Sub(p, nearest)) <= c.Radius
}

func (c Capsule) Bounds() (min, max r2.Vec) {
	r := r2.Vec{X: c.Radius, Y: c.Radius}
	lo := r2.Vec{X: math.Min(c.A.X, c.B.X), Y: math.Min(c.A.Y, c.B.Y)}
	hi := r2.Vec{X: math.Max(c.A.X, c.B.X), Y: math.Max(c.A.Y, c.B.Y)}
	return r2.Sub(lo, r), r2.Add(hi, r)
}

// Circle is a filled disc.
type Circle struct {
	Center r2.Vec
	Radius float64
}

func (c Circle) Contains(x, y float64) bool {
	return r2.Norm(r2.Sub(r2.Vec{X: x, Y: y}, c.Center)) <= c.Radius
}

func (c Circle) Bounds() (min, max r2.Vec) {
	r := r2.Vec{X: c.Radius, Y: c.Radius}
	return r2.Sub(c.Center, r), r2.Add(c.Center, r)
}

// Shapes returns the primitives of p in drawing order: every track as a
// Capsule, then every pin as a Circle.
func (l Layout) Shapes(p *BoardPattern) []Shape {
	shapes := make([]Shape, 0, len(p.Tracks)+len(p.Pins))
	for _, t := range p.Tracks {
		ex, ey := t.End()
		shapes = append(shapes, Capsule{A: l.CellCenter(t.X, t.Y), B: l.CellCenter(ex, ey), Radius: t.Width / 2})
	}
	for _, pin := range p.Pins {
		shapes = append(shapes, Circle{Center: l.CellCenter(pin.X, pin.Y), Radius: pin.Radius})
	}
	return shapes
}
