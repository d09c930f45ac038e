package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinSections is the smallest ring subdivision accepted by the round primitives.
const MinSections = 3

// All primitives are centered on the origin and wound counter-clockwise when
// seen from outside.

// Box creates an axis-aligned box with the given edge lengths.
func Box(size r3.Vec) (*Mesh, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("box size must be positive, got %v", size)
	}
	h := r3.Scale(0.5, size)
	vertices := make([]r3.Vec, 8)
	for i := range vertices {
		v := r3.Vec{X: -h.X, Y: -h.Y, Z: -h.Z}
		if i&1 != 0 {
			v.X = h.X
		}
		if i&2 != 0 {
			v.Y = h.Y
		}
		if i&4 != 0 {
			v.Z = h.Z
		}
		vertices[i] = v
	}
	faces := [][3]int{
		{0, 2, 3}, {0, 3, 1}, // -z
		{4, 5, 7}, {4, 7, 6}, // +z
		{0, 1, 5}, {0, 5, 4}, // -y
		{2, 6, 7}, {2, 7, 3}, // +y
		{0, 4, 6}, {0, 6, 2}, // -x
		{1, 3, 7}, {1, 7, 5}, // +x
	}
	return New(vertices, faces), nil
}

// Cylinder creates a closed cylinder along the Z axis.
func Cylinder(radius, height float64, sections int) (*Mesh, error) {
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("cylinder radius and height must be positive, got r=%g h=%g", radius, height)
	}
	if sections < MinSections {
		return nil, fmt.Errorf("cylinder needs at least %d sections, got %d", MinSections, sections)
	}
	n := sections
	vertices := make([]r3.Vec, 0, 2*n+2)
	vertices = appendRing(vertices, radius, -height/2, n)
	vertices = appendRing(vertices, radius, height/2, n)
	bc, tc := 2*n, 2*n+1
	vertices = append(vertices, r3.Vec{Z: -height / 2}, r3.Vec{Z: height / 2})

	faces := make([][3]int, 0, 4*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		bi, bj, ti, tj := i, j, n+i, n+j
		faces = append(faces,
			[3]int{bi, bj, tj}, [3]int{bi, tj, ti},
			[3]int{tc, ti, tj},
			[3]int{bc, bj, bi},
		)
	}
	return New(vertices, faces), nil
}

// Tube creates an annular cylinder (a washer) along the Z axis.
func Tube(inner, outer, height float64, sections int) (*Mesh, error) {
	if inner <= 0 || outer <= inner || height <= 0 {
		return nil, fmt.Errorf("tube needs 0 < inner < outer and positive height, got inner=%g outer=%g h=%g", inner, outer, height)
	}
	if sections < MinSections {
		return nil, fmt.Errorf("tube needs at least %d sections, got %d", MinSections, sections)
	}
	n := sections
	vertices := make([]r3.Vec, 0, 4*n)
	vertices = appendRing(vertices, outer, -height/2, n) // ob: 0..n-1
	vertices = appendRing(vertices, outer, height/2, n)  // ot: n..2n-1
	vertices = appendRing(vertices, inner, -height/2, n) // ib: 2n..3n-1
	vertices = appendRing(vertices, inner, height/2, n)  // it: 3n..4n-1

	faces := make([][3]int, 0, 8*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		obi, obj, oti, otj := i, j, n+i, n+j
		ibi, ibj, iti, itj := 2*n+i, 2*n+j, 3*n+i, 3*n+j
		faces = append(faces,
			// outer wall
			[3]int{obi, obj, otj}, [3]int{obi, otj, oti},
			// inner wall faces the axis
			[3]int{ibi, itj, ibj}, [3]int{ibi, iti, itj},
			// top
			[3]int{oti, otj, itj}, [3]int{oti, itj, iti},
			// bottom
			[3]int{obi, ibj, obj}, [3]int{obi, ibi, ibj},
		)
	}
	return New(vertices, faces), nil
}

// Sphere creates a UV sphere with the given number of longitudinal sections;
// latitude rings are half as many (at least two).
func Sphere(radius float64, sections int) (*Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %g", radius)
	}
	if sections < MinSections {
		return nil, fmt.Errorf("sphere needs at least %d sections, got %d", MinSections, sections)
	}
	n := sections
	stacks := max(n/2, 2)

	vertices := make([]r3.Vec, 0, n*(stacks-1)+2)
	vertices = append(vertices, r3.Vec{Z: radius})
	for k := 1; k < stacks; k++ {
		phi := math.Pi * float64(k) / float64(stacks)
		vertices = appendRing(vertices, radius*math.Sin(phi), radius*math.Cos(phi), n)
	}
	bottom := len(vertices)
	vertices = append(vertices, r3.Vec{Z: -radius})

	ring := func(k, i int) int { return 1 + (k-1)*n + i%n }
	faces := make([][3]int, 0, 2*n*(stacks-1))
	for i := 0; i < n; i++ {
		faces = append(faces, [3]int{0, ring(1, i), ring(1, i+1)})
	}
	for k := 1; k < stacks-1; k++ {
		for i := 0; i < n; i++ {
			a, aj := ring(k, i), ring(k, i+1)
			b, bj := ring(k+1, i), ring(k+1, i+1)
			faces = append(faces, [3]int{a, b, bj}, [3]int{a, bj, aj})
		}
	}
	last := stacks - 1
	for i := 0; i < n; i++ {
		faces = append(faces, [3]int{ring(last, i), bottom, ring(last, i+1)})
	}
	return New(vertices, faces), nil
}

// Capsule creates a rod along the X axis: a cylinder of the given length with a
// sphere of the same radius at each end. A zero length yields a single sphere.
// The parts are concatenated, not merged.
func Capsule(radius, length float64, sections int) (*Mesh, error) {
	if length < 0 {
		return nil, fmt.Errorf("capsule length must be non-negative, got %g", length)
	}
	end, err := Sphere(radius, sections)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return end, nil
	}
	rod, err := Cylinder(radius, length, sections)
	if err != nil {
		return nil, err
	}
	rod.Rotate(math.Pi/2, r3.Vec{Y: 1})
	left := end.Clone().Translate(r3.Vec{X: -length / 2})
	right := end.Translate(r3.Vec{X: length / 2})
	return Concat(left, rod, right), nil
}

func appendRing(dst []r3.Vec, radius, z float64, n int) []r3.Vec {
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		dst = append(dst, r3.Vec{X: radius * math.Cos(theta), Y: radius * math.Sin(theta), Z: z})
	}
	return dst
}
