package trace

import "sync"

// PlacementTrace collects placement records during a scene build.
// It is safe for concurrent use.
type PlacementTrace struct {
	mu         sync.Mutex
	placements []PlacementRecord
}

// NewPlacementTrace creates a PlacementTrace ready for recording.
func NewPlacementTrace() *PlacementTrace {
	return &PlacementTrace{
		placements: make([]PlacementRecord, 0),
	}
}

// RecordPlacement appends a placement record. The record's Index is assigned
// from the recording order.
func (pt *PlacementTrace) RecordPlacement(record PlacementRecord) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	record.Index = len(pt.placements)
	pt.placements = append(pt.placements, record)
}

// Placements returns a copy of the recorded placements in recording order.
func (pt *PlacementTrace) Placements() []PlacementRecord {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	out := make([]PlacementRecord, len(pt.placements))
	copy(out, pt.placements)
	return out
}

// Len returns the number of recorded placements.
func (pt *PlacementTrace) Len() int {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return len(pt.placements)
}
