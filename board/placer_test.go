package board

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board/trace"
	"github.com/boardforge/boardforge/internal/testutil"
)

const tol = 1e-9

func TestPlace_SameArgumentsGiveSameSolid(t *testing.T) {
	// GIVEN a placer without caching
	p := NewGridPlacer(Transparent{}, 2.54, r3.Vec{X: 1, Y: 2, Z: 3})
	b := newBlockBuilder(4, 2, 1)
	b.offset = r3.Vec{X: -0.5, Y: -0.25, Z: 0.8}

	for _, side := range []Side{Top, Bottom} {
		for _, rot := range Rotations {
			// WHEN the same placement is requested twice
			m1, err := p.Place(b, Cell{X: 3, Y: 5}, side, rot)
			require.NoError(t, err)
			m2, err := p.Place(b, Cell{X: 3, Y: 5}, side, rot)
			require.NoError(t, err)

			// THEN bounding box and centroid match exactly
			assert.Equal(t, m1.Bounds(), m2.Bounds(), "side=%s rot=%s", side, rot)
			assert.Equal(t, m1.Centroid(), m2.Centroid(), "side=%s rot=%s", side, rot)
		}
	}
}

func TestPlace_SquareFootprintIsRotationInvariant(t *testing.T) {
	// GIVEN a square-footprint builder
	p := NewGridPlacer(Transparent{}, 2.54, r3.Vec{})
	b := newBlockBuilder(3, 3, 1)
	b.offset = r3.Vec{X: -1.27, Y: -1.27, Z: -0.5}

	// WHEN it is placed at one cell under all four rotations
	var boxes []r3.Box
	for _, rot := range Rotations {
		m, err := p.Place(b, Cell{X: 2, Y: 1}, Top, rot)
		require.NoError(t, err)
		boxes = append(boxes, m.Bounds())
	}

	// THEN the four bounding boxes are identical
	for i := 1; i < len(boxes); i++ {
		testutil.AssertBoxNear(t, Rotations[i].String(), boxes[0], boxes[i], tol)
	}
}

func TestPlace_AnchorsAtCellPlusOffset(t *testing.T) {
	// GIVEN a 4x2 footprint with an asymmetric offset
	step := 2.54
	origin := r3.Vec{X: 10, Y: 20, Z: 30}
	p := NewGridPlacer(Transparent{}, step, origin)
	b := newBlockBuilder(4, 2, 1)
	b.offset = r3.Vec{X: -0.5, Y: -0.25, Z: 0.75}
	cell := Cell{X: 3, Y: -2}

	for _, rot := range Rotations {
		// WHEN placed on top
		m, err := p.Place(b, cell, Top, rot)
		require.NoError(t, err)

		// THEN the box minimum sits at origin + cell*step + offset, and the footprint
		// extents follow the rotation
		off, err := b.Offset(Top, rot)
		require.NoError(t, err)
		want := r3.Vec{
			X: origin.X + float64(cell.X)*step + off.X,
			Y: origin.Y + float64(cell.Y)*step + off.Y,
			Z: origin.Z + off.Z,
		}
		box := m.Bounds()
		testutil.AssertVecNear(t, "min "+rot.String(), want, box.Min, tol)

		ext := box.Size()
		if rot.IsHorizontal() {
			assert.InDelta(t, 4.0, ext.X, tol)
			assert.InDelta(t, 2.0, ext.Y, tol)
		} else {
			assert.InDelta(t, 2.0, ext.X, tol)
			assert.InDelta(t, 4.0, ext.Y, tol)
		}
	}
}

func TestPlace_BottomIsTopTurnedOverThroughBoardPlane(t *testing.T) {
	// GIVEN an asymmetric solid with a positive z offset
	p := NewGridPlacer(Transparent{}, 2.54, r3.Vec{})
	b := newBlockBuilder(4, 2, 1)
	b.offset = r3.Vec{Z: 0.8}

	for _, rot := range Rotations {
		// WHEN placed on both sides of the same cell
		top, err := p.Place(b, Cell{}, Top, rot)
		require.NoError(t, err)
		bottom, err := p.Place(b, Cell{}, Bottom, rot)
		require.NoError(t, err)

		// THEN the footprints coincide and the z ranges mirror through z=0
		tb, bb := top.Bounds(), bottom.Bounds()
		assert.InDelta(t, tb.Min.X, bb.Min.X, tol)
		assert.InDelta(t, tb.Max.X, bb.Max.X, tol)
		assert.InDelta(t, tb.Min.Y, bb.Min.Y, tol)
		assert.InDelta(t, tb.Max.Y, bb.Max.Y, tol)
		assert.InDelta(t, -tb.Max.Z, bb.Min.Z, tol)
		assert.InDelta(t, -tb.Min.Z, bb.Max.Z, tol)
		assert.InDelta(t, 0.8, tb.Min.Z, tol)
		assert.InDelta(t, -0.8, bb.Max.Z, tol)

		// THEN every vertex is the top vertex turned over about the X axis
		height := tb.Size().Y
		require.Len(t, bottom.Vertices, len(top.Vertices))
		for i, v := range top.Vertices {
			want := r3.Vec{X: v.X, Y: height - v.Y, Z: -v.Z}
			testutil.AssertVecNear(t, "vertex", want, bottom.Vertices[i], tol)
		}
	}
}

func TestPlace_RotationIsAppliedBeforeTurningOver(t *testing.T) {
	// GIVEN a non-square solid rotated by +90 on the bottom side
	p := NewGridPlacer(Transparent{}, 1, r3.Vec{})
	b := newBlockBuilder(4, 2, 1)

	m, err := p.Place(b, Cell{}, Bottom, CounterClockwise90)
	require.NoError(t, err)

	// THEN the marker corner (+X+Y+Z in the builder frame) ends at
	// the low-X, low-Y, low-Z corner:
	// rotate +90 about Z: (+X,+Y) → (-Y,+X); turn over about X: (x,y,z) → (x,-y,-z)
	marker := m.Vertices[len(m.Vertices)-1] // the marker's +X+Y+Z vertex
	box := m.Bounds()
	assert.InDelta(t, box.Min.X, marker.X, tol)
	assert.InDelta(t, box.Min.Y, marker.Y, tol)
	assert.InDelta(t, box.Min.Z, marker.Z, tol)
}

func TestPlace_UnsupportedOrientationIsTyped(t *testing.T) {
	// GIVEN a builder that cannot be placed vertically
	p := NewGridPlacer(Transparent{}, 2.54, r3.Vec{})
	b := newBlockBuilder(4, 2, 1)
	b.noVertical = true

	// WHEN placed with a vertical rotation
	_, err := p.Place(b, Cell{X: 1}, Bottom, Clockwise90)

	// THEN the error is an OrientationError matching the sentinel, and nothing was built
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedOrientation)
	var oe *OrientationError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, Clockwise90, oe.Rotation)
	assert.Equal(t, Bottom, oe.Side)
	assert.Equal(t, b.CacheKey(), oe.Key)
	assert.Zero(t, b.buildCounter.Load())
}

func TestPlace_RejectsInvalidSideAndRotation(t *testing.T) {
	p := NewGridPlacer(Transparent{}, 2.54, r3.Vec{})
	b := newBlockBuilder(1, 1, 1)

	_, err := p.Place(b, Cell{}, Top, Rotation(45))
	assert.ErrorIs(t, err, ErrUnsupportedOrientation)

	_, err = p.Place(b, Cell{}, Side(0), NoRotation)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	assert.Zero(t, b.buildCounter.Load())
}

func TestPlace_PropagatesBuildErrors(t *testing.T) {
	boom := errors.New("boom")
	p := NewGridPlacer(Transparent{}, 2.54, r3.Vec{})
	_, err := p.Place(failingBuilder{err: boom}, Cell{}, Top, NoRotation)
	assert.ErrorIs(t, err, boom)
}

func TestPlaceAll_StopsAtFirstFailure(t *testing.T) {
	// GIVEN a list whose second entry cannot be placed
	b := newBlockBuilder(2, 1, 1)
	b.noVertical = true
	tr := trace.NewPlacementTrace()
	p := NewGridPlacer(Transparent{}, 2.54, r3.Vec{}).WithTrace(tr)

	_, err := p.PlaceAll([]Placement{
		{Builder: b, Cell: Cell{}, Side: Top, Rotation: NoRotation},
		{Builder: b, Cell: Cell{X: 1}, Side: Top, Rotation: CounterClockwise90},
		{Builder: b, Cell: Cell{X: 2}, Side: Top, Rotation: NoRotation},
	})

	// THEN the error names the failing placement and later ones never run
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placement 1")
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, int64(1), b.buildCounter.Load())
}

func TestPlace_RecordsTrace(t *testing.T) {
	tr := trace.NewPlacementTrace()
	p := NewGridPlacer(Transparent{}, 2.54, r3.Vec{}).WithTrace(tr)
	b := newBlockBuilder(1, 1, 1)

	m, err := p.Place(b, Cell{X: 4, Y: 7}, Bottom, Rotate180)
	require.NoError(t, err)

	records := tr.Placements()
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "Block", rec.Kind)
	assert.Equal(t, b.CacheKey(), rec.Key)
	assert.Equal(t, 4, rec.CellX)
	assert.Equal(t, 7, rec.CellY)
	assert.Equal(t, "bottom", rec.Side)
	assert.Equal(t, "180", rec.Rotation)
	assert.Equal(t, len(m.Faces), rec.Faces)
	assert.Equal(t, m.Bounds().Min, rec.Min)
}

func TestNewGridPlacer_PanicsOnBadArguments(t *testing.T) {
	assert.Panics(t, func() { NewGridPlacer(nil, 1, r3.Vec{}) })
	assert.Panics(t, func() { NewGridPlacer(Transparent{}, 0, r3.Vec{}) })
	assert.Panics(t, func() { NewGridPlacer(Transparent{}, math.NaN(), r3.Vec{}) })
}
