// Package testutil provides shared test infrastructure for boardforge.
// It consolidates example-file lookup and geometric assertion helpers used
// across the board/, pattern/ and cmd/ test packages.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// ExamplePath returns the path of a file under the repository's examples/
// directory and fails the test if it does not exist.
// The path is resolved relative to this source file: internal/testutil/ → examples/.
func ExamplePath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "examples", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Failed to find example %s: %v", name, err)
	}
	return path
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertVecNear compares two vectors component-wise with absolute tolerance.
func AssertVecNear(t *testing.T, name string, want, got r3.Vec, absTol float64) {
	t.Helper()
	if math.Abs(want.X-got.X) > absTol || math.Abs(want.Y-got.Y) > absTol || math.Abs(want.Z-got.Z) > absTol {
		t.Errorf("%s: got %v, want %v (tol=%g)", name, got, want, absTol)
	}
}

// AssertBoxNear compares two bounding boxes corner by corner.
func AssertBoxNear(t *testing.T, name string, want, got r3.Box, absTol float64) {
	t.Helper()
	AssertVecNear(t, name+" min", want.Min, got.Min, absTol)
	AssertVecNear(t, name+" max", want.Max, got.Max, absTol)
}
