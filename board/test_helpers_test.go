package board

import (
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/mesh"
)

// blockBuilder is a box with a small marker block on its +X+Y+Z corner, so a
// placement that mirrors or rotates the solid is observable in its vertices.
type blockBuilder struct {
	size         r3.Vec
	offset       r3.Vec // horizontal offset; X and Y swap for vertical rotations
	noVertical   bool   // reject ±90° rotations
	buildCounter *atomic.Int64
}

func newBlockBuilder(x, y, z float64) blockBuilder {
	return blockBuilder{size: r3.Vec{X: x, Y: y, Z: z}, buildCounter: &atomic.Int64{}}
}

func (b blockBuilder) Build() (*mesh.Mesh, error) {
	b.buildCounter.Add(1)
	body, err := mesh.Box(b.size)
	if err != nil {
		return nil, err
	}
	marker, err := mesh.Box(r3.Scale(0.25, b.size))
	if err != nil {
		return nil, err
	}
	marker.Translate(r3.Scale(0.375, b.size))
	return mesh.Concat(body, marker), nil
}

func (b blockBuilder) CacheKey() string {
	return NewKey("Block").
		Float("x", b.size.X).Float("y", b.size.Y).Float("z", b.size.Z).
		Bool("noVertical", b.noVertical).
		Key()
}

func (b blockBuilder) Offset(side Side, rot Rotation) (r3.Vec, error) {
	switch {
	case rot.IsHorizontal():
		return b.offset, nil
	case rot.IsVertical() && !b.noVertical:
		return r3.Vec{X: b.offset.Y, Y: b.offset.X, Z: b.offset.Z}, nil
	default:
		return r3.Vec{}, NewOrientationError(b.CacheKey(), side, rot, "")
	}
}

// failingBuilder always fails to build.
type failingBuilder struct{ err error }

func (f failingBuilder) Build() (*mesh.Mesh, error)            { return nil, f.err }
func (f failingBuilder) CacheKey() string                      { return "Failing" }
func (f failingBuilder) Offset(Side, Rotation) (r3.Vec, error) { return r3.Vec{}, nil }
