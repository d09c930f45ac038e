package board

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/mesh"
)

// Builder produces the solid of one component kind in its own canonical frame.
//
// Implementations are immutable value descriptors. Where the solid sits in the
// canonical frame is up to the builder: the placer re-anchors the bounding box
// after rotating and mirroring, and Offset only has to correct for the
// builder's contact points relative to that anchored box.
type Builder interface {
	// Build returns a new solid. Every call returns storage the caller owns.
	Build() (*mesh.Mesh, error)
	// CacheKey identifies the builder kind and every parameter that affects Build.
	CacheKey() string
	// Offset returns the anchor correction for a side and rotation. It returns an
	// error matching ErrUnsupportedOrientation for orientations the component
	// cannot take.
	Offset(side Side, rot Rotation) (r3.Vec, error)
}

// BuildManager turns a builder into a solid the caller may mutate freely.
type BuildManager interface {
	Build(b Builder) (*mesh.Mesh, error)
}

// Transparent is the BuildManager without sharing: every call invokes the builder.
type Transparent struct{}

// Build invokes b.Build.
func (Transparent) Build(b Builder) (*mesh.Mesh, error) {
	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", b.CacheKey(), err)
	}
	return m, nil
}
