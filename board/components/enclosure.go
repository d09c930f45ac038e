package components

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

// Enclosure walls a notch can be cut into.
const (
	WallFront = "-y"
	WallBack  = "+y"
)

// EnclosureNotch is a cable notch cut down from the top edge of a long wall.
type EnclosureNotch struct {
	Wall string  `yaml:"wall"` // WallFront or WallBack
	X    float64 `yaml:"x"`    // notch center along the wall, from the enclosure's center
}

func (n EnclosureNotch) sign() float64 {
	if n.Wall == WallBack {
		return 1
	}
	return -1
}

// Enclosure is an open frame around the board: four walls with a support ledge
// inside them for the board to rest on. Walls are separate boxes rather than
// one carved solid; notches are left out of the back and front walls.
type Enclosure struct {
	Width, Length, Height float64 // outer size along X, Y and Z
	Wall                  float64 // wall thickness
	SupportInset          float64 // gap between the outer faces and the ledge
	SupportWidth          float64
	SupportThickness      float64
	SupportLift           float64 // height of the ledge's top above the wall bottom
	NotchWidth            float64
	NotchDepth            float64
	Notches               []EnclosureNotch
	OffsetZ               float64
	Color                 Color
}

var _ board.Builder = Enclosure{}

func (e Enclosure) Validate() error {
	if err := checkPositive(KindEnclosure,
		"width", e.Width,
		"length", e.Length,
		"height", e.Height,
		"wall", e.Wall,
		"support_width", e.SupportWidth,
		"support_thickness", e.SupportThickness,
		"notch_width", e.NotchWidth,
		"notch_depth", e.NotchDepth,
	); err != nil {
		return err
	}
	if 2*e.Wall >= math.Min(e.Width, e.Length) {
		return board.Invalidf("%s: walls of %g leave no inside in %gx%g", KindEnclosure, e.Wall, e.Width, e.Length)
	}
	ledge := 2 * (e.SupportInset + e.SupportWidth)
	if e.SupportInset < 0 || ledge >= math.Min(e.Width, e.Length) {
		return board.Invalidf("%s: support ledge inset %g width %g does not fit %gx%g", KindEnclosure, e.SupportInset, e.SupportWidth, e.Width, e.Length)
	}
	if e.SupportLift < 0 || e.SupportLift > e.Height {
		return board.Invalidf("%s: support lift %g outside the walls' height %g", KindEnclosure, e.SupportLift, e.Height)
	}
	if e.NotchDepth >= e.Height {
		return board.Invalidf("%s: notch depth %g cuts through the height %g", KindEnclosure, e.NotchDepth, e.Height)
	}
	if math.IsNaN(e.OffsetZ) {
		return board.Invalidf("%s: offset_z is NaN", KindEnclosure)
	}
	for _, wall := range []string{WallFront, WallBack} {
		if _, err := e.notchSpans(wall); err != nil {
			return err
		}
	}
	for i, n := range e.Notches {
		if n.Wall != WallFront && n.Wall != WallBack {
			return board.Invalidf("%s: notch %d on unknown wall %q (want %s or %s)", KindEnclosure, i, n.Wall, WallFront, WallBack)
		}
	}
	return nil
}

// notchSpans returns the notches of one wall as sorted [lo, hi] intervals
// along X and rejects notches that overlap or reach into the side walls.
func (e Enclosure) notchSpans(wall string) ([][2]float64, error) {
	inner := e.Width/2 - e.Wall
	var spans [][2]float64
	for i, n := range e.Notches {
		if n.Wall != wall {
			continue
		}
		lo, hi := n.X-e.NotchWidth/2, n.X+e.NotchWidth/2
		if math.IsNaN(n.X) || lo < -inner || hi > inner {
			return nil, board.Invalidf("%s: notch %d at x=%g leaves the %s wall", KindEnclosure, i, n.X, wall)
		}
		spans = append(spans, [2]float64{lo, hi})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	for i := 1; i < len(spans); i++ {
		if spans[i][0] < spans[i-1][1] {
			return nil, board.Invalidf("%s: notches overlap on the %s wall", KindEnclosure, wall)
		}
	}
	return spans, nil
}

// Build centers the enclosure on the origin in X and Y with the wall bottoms
// on z = 0. The ledge may reach below the walls.
func (e Enclosure) Build() (*mesh.Mesh, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	var parts []*mesh.Mesh
	add := func(x0, x1, y0, y1, z0, z1 float64) error {
		if x1-x0 < 1e-9 {
			return nil
		}
		b, err := mesh.Box(r3.Vec{X: x1 - x0, Y: y1 - y0, Z: z1 - z0})
		if err != nil {
			return err
		}
		parts = append(parts, b.Translate(r3.Vec{X: (x0 + x1) / 2, Y: (y0 + y1) / 2, Z: (z0 + z1) / 2}))
		return nil
	}

	w, l, h, t := e.Width/2, e.Length/2, e.Height, e.Wall
	notched := h - e.NotchDepth
	for _, wall := range []string{WallFront, WallBack} {
		spans, err := e.notchSpans(wall)
		if err != nil {
			return nil, err
		}
		y0, y1 := -l, -l+t
		if wall == WallBack {
			y0, y1 = l-t, l
		}
		if err := add(-w, w, y0, y1, 0, notched); err != nil {
			return nil, err
		}
		x := -w
		for _, s := range spans {
			if err := add(x, s[0], y0, y1, notched, h); err != nil {
				return nil, err
			}
			x = s[1]
		}
		if err := add(x, w, y0, y1, notched, h); err != nil {
			return nil, err
		}
	}
	if err := add(-w, -w+t, -l+t, l-t, 0, h); err != nil {
		return nil, err
	}
	if err := add(w-t, w, -l+t, l-t, 0, h); err != nil {
		return nil, err
	}

	// support ledge
	sw, sl, s := w-e.SupportInset, l-e.SupportInset, e.SupportWidth
	z0, z1 := e.SupportLift-e.SupportThickness, e.SupportLift
	for _, err := range []error{
		add(-sw, sw, -sl, -sl+s, z0, z1),
		add(-sw, sw, sl-s, sl, z0, z1),
		add(-sw, -sw+s, -sl+s, sl-s, z0, z1),
		add(sw-s, sw, -sl+s, sl-s, z0, z1),
	} {
		if err != nil {
			return nil, err
		}
	}
	return mesh.Concat(parts...).Paint(e.Color.NRGBA()), nil
}

func (e Enclosure) CacheKey() string {
	k := board.NewKey(KindEnclosure).
		Float("w", e.Width).
		Float("l", e.Length).
		Float("h", e.Height).
		Float("t", e.Wall).
		Float("si", e.SupportInset).
		Float("sw", e.SupportWidth).
		Float("st", e.SupportThickness).
		Float("sl", e.SupportLift).
		Float("nw", e.NotchWidth).
		Float("nd", e.NotchDepth).
		Int("notches", len(e.Notches))
	for i, n := range e.Notches {
		k.Nested(fmt.Sprintf("n%d", i), board.NewKey("Notch").
			Float("side", n.sign()).
			Float("x", n.X).
			Key())
	}
	return k.
		Float("z", e.OffsetZ).
		Color("c", e.Color.NRGBA()).
		Key()
}

// Offset lifts the enclosure by OffsetZ. Placed on the grid its outer corner
// sits on the anchor cell; as a scene enclosure it is centered on the parts
// and OffsetZ is the height of its middle above the scene origin.
func (e Enclosure) Offset(side board.Side, rot board.Rotation) (r3.Vec, error) {
	if err := orientationFor(e.CacheKey(), side, rot); err != nil {
		return r3.Vec{}, err
	}
	return r3.Vec{Z: e.OffsetZ}, nil
}
