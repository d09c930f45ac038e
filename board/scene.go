package board

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board/trace"
	"github.com/boardforge/boardforge/mesh"
)

// Scene is an ordered list of placements on one grid.
type Scene struct {
	Step       float64  // grid pitch in mm
	Origin     r3.Vec   // world position of cell (0,0)
	Rotation   Rotation // final rotation of the composed scene about Z
	Placements []Placement

	// Enclosure, when set, is built through the same manager and centered on
	// the rotated parts in X and Y. Its middle sits at Origin.Z plus the Z of
	// its top-side offset.
	Enclosure Builder
}

// Compose places every part through manager and concatenates the results.
// Parts are not merged: overlapping solids stay separate shells. A non-nil
// tr receives one record per placement and one for the enclosure.
func (s Scene) Compose(manager BuildManager, tr *trace.PlacementTrace) (*mesh.Mesh, error) {
	if s.Step <= 0 {
		return nil, Invalidf("scene step must be positive, got %g", s.Step)
	}
	if !s.Rotation.Valid() {
		return nil, Invalidf("scene rotation %s", s.Rotation)
	}
	placer := NewGridPlacer(manager, s.Step, s.Origin)
	if tr != nil {
		placer.WithTrace(tr)
	}
	parts, err := placer.PlaceAll(s.Placements)
	if err != nil {
		return nil, fmt.Errorf("compose scene: %w", err)
	}
	out := mesh.Concat(parts...)
	if s.Rotation != NoRotation {
		out.Rotate(s.Rotation.Angle(), axisZ)
	}
	if s.Enclosure == nil {
		return out, nil
	}

	box, err := s.enclose(manager, out)
	if err != nil {
		return nil, fmt.Errorf("compose scene: %w", err)
	}
	if tr != nil {
		b := box.Bounds()
		tr.RecordPlacement(trace.PlacementRecord{
			Key:      s.Enclosure.CacheKey(),
			Kind:     KeyKind(s.Enclosure.CacheKey()),
			Side:     Top.String(),
			Rotation: NoRotation.String(),
			Min:      b.Min,
			Max:      b.Max,
			Faces:    len(box.Faces),
		})
	}
	return mesh.Concat(out, box), nil
}

// enclose builds the enclosure and moves it around parts.
func (s Scene) enclose(manager BuildManager, parts *mesh.Mesh) (*mesh.Mesh, error) {
	offset, err := s.Enclosure.Offset(Top, NoRotation)
	if err != nil {
		return nil, fmt.Errorf("enclosure %s: %w", s.Enclosure.CacheKey(), err)
	}
	m, err := manager.Build(s.Enclosure)
	if err != nil {
		return nil, fmt.Errorf("enclosure %s: %w", s.Enclosure.CacheKey(), err)
	}
	center := r3.Vec{X: s.Origin.X, Y: s.Origin.Y}
	if !parts.Empty() {
		b := parts.Bounds()
		center = r3.Scale(0.5, r3.Add(b.Min, b.Max))
	}
	m.MoveToBound(mesh.BoundCenter, mesh.BoundCenter, mesh.BoundCenter)
	return m.Translate(r3.Vec{
		X: center.X + offset.X,
		Y: center.Y + offset.Y,
		Z: s.Origin.Z + offset.Z,
	}), nil
}
