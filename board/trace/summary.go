package trace

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// TraceSummary aggregates statistics from a PlacementTrace.
type TraceSummary struct {
	TotalPlacements  int
	TotalFaces       int
	UniqueKeys       int
	KindDistribution map[string]int // builder kind → number of placements
	SideDistribution map[string]int // side → number of placements
	Min              r3.Vec         // scene bounding box (zero when empty)
	Max              r3.Vec
}

// Summarize computes aggregate statistics from a PlacementTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(pt *PlacementTrace) *TraceSummary {
	summary := &TraceSummary{
		KindDistribution: make(map[string]int),
		SideDistribution: make(map[string]int),
	}
	if pt == nil {
		return summary
	}
	records := pt.Placements()
	if len(records) == 0 {
		return summary
	}

	keys := make(map[string]struct{})
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, r := range records {
		summary.TotalFaces += r.Faces
		summary.KindDistribution[r.Kind]++
		summary.SideDistribution[r.Side]++
		keys[r.Key] = struct{}{}

		lo = r3.Vec{X: math.Min(lo.X, r.Min.X), Y: math.Min(lo.Y, r.Min.Y), Z: math.Min(lo.Z, r.Min.Z)}
		hi = r3.Vec{X: math.Max(hi.X, r.Max.X), Y: math.Max(hi.Y, r.Max.Y), Z: math.Max(hi.Z, r.Max.Z)}
	}
	summary.TotalPlacements = len(records)
	summary.UniqueKeys = len(keys)
	summary.Min, summary.Max = lo, hi

	return summary
}
