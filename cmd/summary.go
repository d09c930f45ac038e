package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/boardforge/boardforge/board/cache"
	"github.com/boardforge/boardforge/board/trace"
)

// printSummary writes the placement summary and cache counters of a build.
func printSummary(w io.Writer, s *trace.TraceSummary, stats cache.Stats) {
	fmt.Fprintln(w, "=== Scene Summary ===")
	fmt.Fprintf(w, "Placements           : %d\n", s.TotalPlacements)
	fmt.Fprintf(w, "Distinct Parts       : %d\n", s.UniqueKeys)
	fmt.Fprintf(w, "Faces                : %d\n", s.TotalFaces)
	fmt.Fprintf(w, "Bounds               : (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f) mm\n",
		s.Min.X, s.Min.Y, s.Min.Z, s.Max.X, s.Max.Y, s.Max.Z)

	kinds := make([]string, 0, len(s.KindDistribution))
	for k := range s.KindDistribution {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-19s: %d\n", k, s.KindDistribution[k])
	}
	for _, side := range []string{"top", "bottom"} {
		if n, ok := s.SideDistribution[side]; ok {
			fmt.Fprintf(w, "Side %-16s: %d\n", side, n)
		}
	}

	fmt.Fprintln(w, "=== Part Cache ===")
	fmt.Fprintf(w, "Builds               : %d\n", stats.Builds)
	fmt.Fprintf(w, "Memory Hits          : %d\n", stats.MemoryHits)
	fmt.Fprintf(w, "Disk Hits            : %d\n", stats.DiskHits)
}
