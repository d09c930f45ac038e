package mesh

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func assertVecNear(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

// signedVolume is positive for a closed surface wound counter-clockwise from outside.
func signedVolume(m *Mesh) float64 {
	var v float64
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		v += r3.Dot(a, r3.Cross(b, c)) / 6
	}
	return v
}

func TestBox_BoundsAndVolume(t *testing.T) {
	m, err := Box(r3.Vec{X: 2, Y: 4, Z: 6})
	require.NoError(t, err)

	box := m.Bounds()
	assertVecNear(t, r3.Vec{X: -1, Y: -2, Z: -3}, box.Min)
	assertVecNear(t, r3.Vec{X: 1, Y: 2, Z: 3}, box.Max)
	assert.InDelta(t, 48.0, signedVolume(m), eps)
	assert.InDelta(t, 2*(8+12+24.0), m.Area(), eps)
}

func TestPrimitives_RejectDegenerateParameters(t *testing.T) {
	_, err := Box(r3.Vec{X: 1, Y: 0, Z: 1})
	assert.Error(t, err)
	_, err = Cylinder(1, 1, 2)
	assert.Error(t, err)
	_, err = Cylinder(-1, 1, 8)
	assert.Error(t, err)
	_, err = Tube(2, 1, 1, 8)
	assert.Error(t, err)
	_, err = Sphere(0, 8)
	assert.Error(t, err)
	_, err = Capsule(1, -1, 8)
	assert.Error(t, err)
}

func TestRoundPrimitives_AreOutwardWound(t *testing.T) {
	cyl, err := Cylinder(1, 2, 32)
	require.NoError(t, err)
	tube, err := Tube(0.5, 1, 2, 32)
	require.NoError(t, err)
	sphere, err := Sphere(1, 32)
	require.NoError(t, err)

	assert.Greater(t, signedVolume(cyl), 0.0)
	assert.Less(t, signedVolume(tube), signedVolume(cyl))
	assert.Greater(t, signedVolume(tube), 0.0)
	// a 32-gon UV sphere underestimates the true volume slightly
	assert.InDelta(t, 4.0/3*math.Pi, signedVolume(sphere), 0.1)
}

func TestCapsule_LiesAlongX(t *testing.T) {
	m, err := Capsule(0.5, 3, 16)
	require.NoError(t, err)

	ext := m.Extents()
	assert.InDelta(t, 4.0, ext.X, eps)
	assert.InDelta(t, 1.0, ext.Z, eps)
	assert.LessOrEqual(t, ext.Y, 1.0+eps)
}

func TestMoveToBound(t *testing.T) {
	m, err := Box(r3.Vec{X: 2, Y: 2, Z: 2})
	require.NoError(t, err)
	m.Translate(r3.Vec{X: 10, Y: 10, Z: 10})

	m.MoveToBound(BoundPositive, BoundNegative, BoundKeep)
	box := m.Bounds()
	assert.InDelta(t, 0.0, box.Min.X, eps)
	assert.InDelta(t, 0.0, box.Max.Y, eps)
	assert.InDelta(t, 9.0, box.Min.Z, eps)

	m.MoveToBound(BoundCenter, BoundCenter, BoundCenter)
	assertVecNear(t, r3.Vec{}, m.Bounds().Center())
}

func TestBoundOf(t *testing.T) {
	assert.Equal(t, BoundPositive, BoundOf(1))
	assert.Equal(t, BoundNegative, BoundOf(-1))
	assert.Equal(t, BoundCenter, BoundOf(0))
}

func TestClone_DoesNotAlias(t *testing.T) {
	m, err := Box(r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	m.Paint(color.NRGBA{R: 255, A: 255})

	c := m.Clone()
	c.Translate(r3.Vec{X: 5})
	c.Colors[0] = color.NRGBA{B: 255, A: 255}
	c.Faces[0][0] = 7

	assert.InDelta(t, -0.5, m.Bounds().Min.X, eps)
	assert.Equal(t, uint8(255), m.Colors[0].R)
	assert.Equal(t, 0, m.Faces[0][0])
}

func TestRotate_QuarterTurnAboutZ(t *testing.T) {
	m := New([]r3.Vec{{X: 1}}, nil)
	m.Rotate(math.Pi/2, r3.Vec{Z: 1})
	assertVecNear(t, r3.Vec{Y: 1}, m.Vertices[0])
}

func TestConcat_OffsetsFacesAndFillsColors(t *testing.T) {
	a, err := Box(r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	b, err := Box(r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	red := color.NRGBA{R: 255, A: 255}
	a.Paint(red)
	b.Translate(r3.Vec{X: 3})

	out := Concat(a, nil, b)
	require.NoError(t, out.Validate())
	assert.Len(t, out.Vertices, 16)
	assert.Len(t, out.Faces, 24)
	assert.Equal(t, red, out.Colors[0])
	assert.Equal(t, DefaultColor, out.Colors[23])
	assert.Equal(t, [3]int{8, 10, 11}, out.Faces[12])
	assert.InDelta(t, 3.5, out.Bounds().Max.X, eps)
	assert.Empty(t, b.Colors, "inputs are not modified")
}

func TestCentroid_IsAreaWeighted(t *testing.T) {
	m, err := Box(r3.Vec{X: 2, Y: 2, Z: 2})
	require.NoError(t, err)
	m.Translate(r3.Vec{X: 1, Y: 2, Z: 3})
	assertVecNear(t, r3.Vec{X: 1, Y: 2, Z: 3}, m.Centroid())
}

func TestValidate_RejectsBadIndices(t *testing.T) {
	m := New([]r3.Vec{{}, {X: 1}}, [][3]int{{0, 1, 2}})
	assert.Error(t, m.Validate())

	m = New([]r3.Vec{{}, {X: 1}, {Y: 1}}, [][3]int{{0, 1, 2}})
	m.Colors = []color.NRGBA{{}, {}}
	assert.Error(t, m.Validate())
}
