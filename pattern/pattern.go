// Package pattern models the 2D trace network of a board: round pins on grid
// cells and axis-aligned tracks between them. It is pure data; the raster and
// relief subpackages render it through the shared Layout.
package pattern

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

var (
	// ErrDiagonalTrack is returned for a track or move whose extent is nonzero
	// on both axes. Diagonal paths must be split into two moves.
	ErrDiagonalTrack = errors.New("diagonal track")
	// ErrInvalidPattern marks pattern data that fails its preconditions.
	ErrInvalidPattern = errors.New("invalid pattern")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPattern, fmt.Sprintf(format, args...))
}

// Pin is a round pad centered on a grid cell.
type Pin struct {
	X, Y   int
	Radius float64
}

// Track is a straight segment from cell (X, Y) to cell (X+XCount, Y+YCount).
// At most one of XCount and YCount is nonzero; either may be negative.
type Track struct {
	X, Y           int
	XCount, YCount int
	Width          float64
}

// NewTrack returns the track from (x, y) with extent (dx, dy).
func NewTrack(x, y, dx, dy int, width float64) (Track, error) {
	t := Track{X: x, Y: y, XCount: dx, YCount: dy, Width: width}
	if err := t.Validate(); err != nil {
		return Track{}, err
	}
	if dx == 0 && dy == 0 {
		logrus.Warnf("pattern: zero-length track at (%d,%d)", x, y)
	}
	return t, nil
}

// Validate checks the track is axis-aligned and has a positive width.
func (t Track) Validate() error {
	if t.XCount != 0 && t.YCount != 0 {
		return fmt.Errorf("%w: (%d,%d) extent (%d,%d)", ErrDiagonalTrack, t.X, t.Y, t.XCount, t.YCount)
	}
	if !(t.Width > 0) || math.IsInf(t.Width, 0) {
		return invalidf("track at (%d,%d) has width %g", t.X, t.Y, t.Width)
	}
	return nil
}

// End returns the cell the track ends on.
func (t Track) End() (x, y int) {
	return t.X + t.XCount, t.Y + t.YCount
}

// BoardPattern is a grid of XCount × YCount cells with an indent around it,
// owning its pins and tracks. Tracks are drawn first, in order, then pins.
type BoardPattern struct {
	XCount, YCount   int
	XIndent, YIndent float64
	Pins             []Pin
	Tracks           []Track
}

// AddMultiTrack appends the tracks of m, or returns m's error and appends nothing.
func (p *BoardPattern) AddMultiTrack(m *MultiTrack) error {
	if err := m.Err(); err != nil {
		return err
	}
	p.Tracks = append(p.Tracks, m.Tracks()...)
	return nil
}

// Validate checks the grid and that every pin and track endpoint lies on it.
func (p *BoardPattern) Validate() error {
	if p.XCount < 1 || p.YCount < 1 {
		return invalidf("grid must be at least 1x1, got %dx%d", p.XCount, p.YCount)
	}
	if p.XIndent < 0 || p.YIndent < 0 || math.IsNaN(p.XIndent) || math.IsNaN(p.YIndent) {
		return invalidf("indents must be non-negative, got %g, %g", p.XIndent, p.YIndent)
	}
	for i, pin := range p.Pins {
		if !(pin.Radius > 0) || math.IsInf(pin.Radius, 0) {
			return invalidf("pin %d at (%d,%d) has radius %g", i, pin.X, pin.Y, pin.Radius)
		}
		if !p.onGrid(pin.X, pin.Y) {
			return invalidf("pin %d at (%d,%d) is off the %dx%d grid", i, pin.X, pin.Y, p.XCount, p.YCount)
		}
	}
	for i, t := range p.Tracks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
		ex, ey := t.End()
		if !p.onGrid(t.X, t.Y) || !p.onGrid(ex, ey) {
			return invalidf("track %d from (%d,%d) to (%d,%d) leaves the %dx%d grid", i, t.X, t.Y, ex, ey, p.XCount, p.YCount)
		}
	}
	return nil
}

func (p *BoardPattern) onGrid(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.XCount && y < p.YCount
}
