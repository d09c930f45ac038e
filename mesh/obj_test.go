package mesh

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestWriteOBJ_GroupsFacesByColor(t *testing.T) {
	// GIVEN two boxes painted red and translucent blue
	red, blue := color.NRGBA{R: 255, A: 255}, color.NRGBA{B: 255, A: 51}
	a, err := Box(r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	b, err := Box(r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	m := Concat(a.Paint(red), b.Translate(r3.Vec{X: 2}).Paint(blue))

	// WHEN it is written as OBJ with a material library
	var obj, mtl bytes.Buffer
	require.NoError(t, WriteOBJ(&obj, m, "board.mtl"))
	require.NoError(t, WriteMTL(&mtl, m))

	// THEN vertices and faces are all present with 1-based indices
	lines := strings.Split(strings.TrimSpace(obj.String()), "\n")
	var vertices, faces []string
	var materials []string
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "v "):
			vertices = append(vertices, l)
		case strings.HasPrefix(l, "f "):
			faces = append(faces, l)
		case strings.HasPrefix(l, "usemtl "):
			materials = append(materials, strings.TrimPrefix(l, "usemtl "))
		}
	}
	assert.Contains(t, lines, "mtllib board.mtl")
	assert.Len(t, vertices, len(m.Vertices))
	assert.Len(t, faces, len(m.Faces))
	for _, f := range faces {
		var i, j, k int
		_, err := fmt.Sscanf(f, "f %d %d %d", &i, &j, &k)
		require.NoError(t, err)
		for _, idx := range []int{i, j, k} {
			assert.True(t, idx >= 1 && idx <= len(m.Vertices), "index %d in %q", idx, f)
		}
	}

	// THEN each color is one material in first-use order
	assert.Equal(t, []string{"cff0000ff", "c0000ff33"}, materials)
	assert.Contains(t, mtl.String(), "newmtl cff0000ff\nKd 1.0000 0.0000 0.0000\nd 1.0000\n")
	assert.Contains(t, mtl.String(), "newmtl c0000ff33\nKd 0.0000 0.0000 1.0000\nd 0.2000\n")
}

func TestWriteOBJ_UncoloredMeshHasNoMaterials(t *testing.T) {
	m, err := Box(r3.Vec{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)

	var obj, mtl bytes.Buffer
	require.NoError(t, WriteOBJ(&obj, m, "ignored.mtl"))
	require.NoError(t, WriteMTL(&mtl, m))

	assert.NotContains(t, obj.String(), "mtllib")
	assert.NotContains(t, obj.String(), "usemtl")
	assert.Equal(t, len(m.Faces), strings.Count(obj.String(), "\nf "))
	assert.Empty(t, mtl.String())
}

func TestWriteOBJ_RejectsInvalidMesh(t *testing.T) {
	m := New([]r3.Vec{{}}, [][3]int{{0, 1, 2}})
	assert.Error(t, WriteOBJ(&bytes.Buffer{}, m, ""))
}
