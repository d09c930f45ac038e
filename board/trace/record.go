// Package trace provides placement-trace recording for scene analysis.
// It has no dependencies on board/ and stores pure data types.
package trace

import "gonum.org/v1/gonum/spatial/r3"

// PlacementRecord captures a single placed solid.
type PlacementRecord struct {
	Index    int    // position in the scene's placement order
	Key      string // cache key of the builder
	Kind     string // builder kind (key prefix)
	CellX    int
	CellY    int
	Side     string
	Rotation string
	Min      r3.Vec // world-space bounding box after placement
	Max      r3.Vec
	Faces    int
}

// Size returns the extents of the record's bounding box.
func (r PlacementRecord) Size() r3.Vec {
	return r3.Sub(r.Max, r.Min)
}
