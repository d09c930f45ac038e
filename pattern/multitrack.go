package pattern

import "fmt"

// MultiTrack builds a polyline of tracks from a running cursor.
//
//	mt := NewMultiTrack(1, 0, w).Move(1, 0).Move(0, 1)
//	if err := mt.Err(); err != nil { ... }
//
// The first failing Move sets a sticky error; later moves are ignored.
type MultiTrack struct {
	x, y   int
	width  float64
	tracks []Track
	err    error
}

// NewMultiTrack starts a path at cell (x, y) with the given track width.
func NewMultiTrack(x, y int, width float64) *MultiTrack {
	m := &MultiTrack{x: x, y: y, width: width}
	if !(width > 0) {
		m.err = invalidf("multitrack at (%d,%d) has width %g", x, y, width)
	}
	return m
}

// Move appends the track from the cursor with extent (dx, dy) and advances
// the cursor to its end.
func (m *MultiTrack) Move(dx, dy int) *MultiTrack {
	if m.err != nil {
		return m
	}
	t, err := NewTrack(m.x, m.y, dx, dy, m.width)
	if err != nil {
		m.err = fmt.Errorf("move %d: %w", len(m.tracks), err)
		return m
	}
	m.tracks = append(m.tracks, t)
	m.x, m.y = t.End()
	return m
}

// Tracks returns a copy of the tracks emitted so far.
func (m *MultiTrack) Tracks() []Track {
	return append([]Track(nil), m.tracks...)
}

// Cursor returns the cell the next move starts from.
func (m *MultiTrack) Cursor() (x, y int) {
	return m.x, m.y
}

// Err returns the first error encountered, if any.
func (m *MultiTrack) Err() error {
	return m.err
}
