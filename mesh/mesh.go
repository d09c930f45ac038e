// Package mesh provides the triangle-surface value type that component builders
// produce, the grid placer transforms, and the build cache persists.
//
// A Mesh is a mutable value: the transform methods modify the receiver in place
// and return it for chaining. Use Clone to obtain an independent copy; two Mesh
// values never share vertex, face, or color storage unless one was assigned from
// the other.
package mesh

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultColor is assigned to uncolored faces when they are concatenated with colored ones.
var DefaultColor = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

// Mesh is an indexed triangle surface with optional per-face colors.
// Colors is either empty or has exactly one entry per face.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
	Colors   []color.NRGBA
}

// Bound selects where MoveToBound places the bounding box on one axis.
type Bound int8

const (
	// BoundNegative puts the bounding-box maximum at zero (the mesh lies on the negative side).
	BoundNegative Bound = -1
	// BoundCenter centers the bounding box on zero.
	BoundCenter Bound = 0
	// BoundPositive puts the bounding-box minimum at zero (the mesh lies on the positive side).
	BoundPositive Bound = 1
	// BoundKeep leaves the axis untouched.
	BoundKeep Bound = 2
)

// BoundOf maps a sign (+1, -1, 0) to the corresponding Bound.
func BoundOf(sign float64) Bound {
	switch {
	case sign > 0:
		return BoundPositive
	case sign < 0:
		return BoundNegative
	default:
		return BoundCenter
	}
}

// New creates a mesh from vertices and faces. The slices are owned by the mesh afterwards.
func New(vertices []r3.Vec, faces [][3]int) *Mesh {
	return &Mesh{Vertices: vertices, Faces: faces}
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]r3.Vec, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Faces, m.Faces)
	if len(m.Colors) > 0 {
		out.Colors = make([]color.NRGBA, len(m.Colors))
		copy(out.Colors, m.Colors)
	}
	return out
}

// Empty reports whether the mesh has no faces.
func (m *Mesh) Empty() bool {
	return len(m.Faces) == 0
}

// Validate checks index ranges and the color/face count invariant.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d references vertex %d, mesh has %d vertices", i, idx, n)
			}
		}
	}
	if len(m.Colors) != 0 && len(m.Colors) != len(m.Faces) {
		return fmt.Errorf("mesh has %d colors for %d faces", len(m.Colors), len(m.Faces))
	}
	return nil
}

// Transform applies fn to every vertex.
func (m *Mesh) Transform(fn func(r3.Vec) r3.Vec) *Mesh {
	for i, v := range m.Vertices {
		m.Vertices[i] = fn(v)
	}
	return m
}

// Translate moves every vertex by d.
func (m *Mesh) Translate(d r3.Vec) *Mesh {
	for i, v := range m.Vertices {
		m.Vertices[i] = r3.Add(v, d)
	}
	return m
}

// Rotate rotates the mesh by angle radians about axis through the origin
// (right-hand rule).
func (m *Mesh) Rotate(angle float64, axis r3.Vec) *Mesh {
	if angle == 0 {
		return m
	}
	rot := r3.NewRotation(angle, axis)
	for i, v := range m.Vertices {
		m.Vertices[i] = rot.Rotate(v)
	}
	return m
}

// Paint sets every face to c.
func (m *Mesh) Paint(c color.NRGBA) *Mesh {
	if len(m.Colors) != len(m.Faces) {
		m.Colors = make([]color.NRGBA, len(m.Faces))
	}
	for i := range m.Colors {
		m.Colors[i] = c
	}
	return m
}

// Bounds returns the axis-aligned bounding box. An empty mesh has a zero box.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo.X, hi.X = math.Min(lo.X, v.X), math.Max(hi.X, v.X)
		lo.Y, hi.Y = math.Min(lo.Y, v.Y), math.Max(hi.Y, v.Y)
		lo.Z, hi.Z = math.Min(lo.Z, v.Z), math.Max(hi.Z, v.Z)
	}
	return r3.Box{Min: lo, Max: hi}
}

// Extents returns the size of the bounding box.
func (m *Mesh) Extents() r3.Vec {
	return m.Bounds().Size()
}

// Centroid returns the area-weighted centroid of the surface. Meshes with zero
// surface area fall back to the vertex mean.
func (m *Mesh) Centroid() r3.Vec {
	var sum r3.Vec
	var total float64
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		area := triangleArea(a, b, c)
		center := r3.Scale(1.0/3, r3.Add(r3.Add(a, b), c))
		sum = r3.Add(sum, r3.Scale(area, center))
		total += area
	}
	if total > 0 {
		return r3.Scale(1/total, sum)
	}
	if len(m.Vertices) == 0 {
		return r3.Vec{}
	}
	for _, v := range m.Vertices {
		sum = r3.Add(sum, v)
	}
	return r3.Scale(1/float64(len(m.Vertices)), sum)
}

// Area returns the total surface area.
func (m *Mesh) Area() float64 {
	var total float64
	for _, f := range m.Faces {
		total += triangleArea(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
	}
	return total
}

// MoveToBound translates the mesh so that its bounding box sits on the requested
// side of zero on each axis.
func (m *Mesh) MoveToBound(x, y, z Bound) *Mesh {
	if len(m.Vertices) == 0 {
		return m
	}
	box := m.Bounds()
	shift := r3.Vec{
		X: boundShift(x, box.Min.X, box.Max.X),
		Y: boundShift(y, box.Min.Y, box.Max.Y),
		Z: boundShift(z, box.Min.Z, box.Max.Z),
	}
	return m.Translate(shift)
}

func boundShift(b Bound, lo, hi float64) float64 {
	switch b {
	case BoundPositive:
		return -lo
	case BoundNegative:
		return -hi
	case BoundCenter:
		return -(lo + hi) / 2
	default:
		return 0
	}
}

// Concat joins meshes into one without merging or intersecting them. The inputs
// are not modified. If any input carries colors, uncolored inputs are painted
// with DefaultColor.
func Concat(meshes ...*Mesh) *Mesh {
	var nv, nf int
	colored := false
	for _, m := range meshes {
		if m == nil {
			continue
		}
		nv += len(m.Vertices)
		nf += len(m.Faces)
		if len(m.Colors) > 0 {
			colored = true
		}
	}
	out := &Mesh{
		Vertices: make([]r3.Vec, 0, nv),
		Faces:    make([][3]int, 0, nf),
	}
	if colored {
		out.Colors = make([]color.NRGBA, 0, nf)
	}
	for _, m := range meshes {
		if m == nil {
			continue
		}
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			out.Faces = append(out.Faces, [3]int{f[0] + base, f[1] + base, f[2] + base})
		}
		if !colored {
			continue
		}
		if len(m.Colors) == len(m.Faces) {
			out.Colors = append(out.Colors, m.Colors...)
			continue
		}
		for range m.Faces {
			out.Colors = append(out.Colors, DefaultColor)
		}
	}
	return out
}

func triangleArea(a, b, c r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
}

// faceNormal returns the unit normal of a face, or the zero vector for a degenerate face.
func faceNormal(a, b, c r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	l := r3.Norm(n)
	if l == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}
