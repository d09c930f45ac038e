// Package relief turns a BoardPattern into a solid: a slab with the tracks
// and pins either raised above it or engraved into it.
//
// The pattern's shapes are sampled onto a heightfield and the heightfield is
// extruded into a closed, outward-wound triangle surface. Adjacent columns
// are not welded, so the surface has T-junctions along height steps.
package relief

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/mesh"
	"github.com/boardforge/boardforge/pattern"
)

// Mode selects how features meet the slab.
type Mode int

const (
	// Raised stands features Relief above the slab.
	Raised Mode = iota
	// Engraved cuts features Depth into the slab.
	Engraved
)

func (m Mode) String() string {
	switch m {
	case Raised:
		return "raised"
	case Engraved:
		return "engraved"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "raised" or "engraved".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raised", "":
		return Raised, nil
	case "engraved":
		return Engraved, nil
	}
	return 0, fmt.Errorf("unknown relief mode %q", s)
}

// Options configures Build.
type Options struct {
	Step       float64 // grid pitch in mm
	Mode       Mode
	Base       float64 // slab thickness
	Relief     float64 // feature height above the slab (Raised)
	Depth      float64 // engraving depth (Engraved); 0 cuts through the slab
	Resolution float64 // heightfield sample spacing in mm

	BaseColor    color.NRGBA
	FeatureColor color.NRGBA
}

// DefaultOptions returns a 1 mm slab with 1 mm features sampled every 0.1 mm.
func DefaultOptions(step float64) Options {
	return Options{
		Step:         step,
		Mode:         Raised,
		Base:         1,
		Relief:       1,
		Resolution:   0.1,
		BaseColor:    color.NRGBA{R: 230, G: 230, B: 230, A: 255},
		FeatureColor: color.NRGBA{R: 30, G: 30, B: 30, A: 255},
	}
}

func (o Options) validate() error {
	switch {
	case !(o.Step > 0):
		return fmt.Errorf("relief: step must be positive, got %g", o.Step)
	case !(o.Base > 0):
		return fmt.Errorf("relief: base must be positive, got %g", o.Base)
	case !(o.Resolution > 0):
		return fmt.Errorf("relief: resolution must be positive, got %g", o.Resolution)
	case o.Mode == Raised && !(o.Relief > 0):
		return fmt.Errorf("relief: relief height must be positive, got %g", o.Relief)
	case o.Mode == Engraved && (o.Depth < 0 || o.Depth > o.Base || math.IsNaN(o.Depth)):
		return fmt.Errorf("relief: depth must be within [0, %g], got %g", o.Base, o.Depth)
	case o.Mode != Raised && o.Mode != Engraved:
		return fmt.Errorf("relief: unknown mode %v", o.Mode)
	}
	return nil
}

// featureHeight is the column height under a feature.
func (o Options) featureHeight() float64 {
	if o.Mode == Raised {
		return o.Base + o.Relief
	}
	if o.Depth == 0 {
		return 0
	}
	return o.Base - o.Depth
}

// Heightfield is a grid of column heights over [0,Width]×[0,Height]. Column
// (i, j) covers [i*Res, (i+1)*Res] × [j*Res, (j+1)*Res], clipped to the outline.
type Heightfield struct {
	NX, NY        int
	Res           float64
	Width, Height float64
	Heights       []float64 // row-major, NX per row
	Feature       []bool    // whether the column lies under a track or pin
}

// At returns the height of column (i, j); columns outside the grid are 0.
func (h *Heightfield) At(i, j int) float64 {
	if i < 0 || j < 0 || i >= h.NX || j >= h.NY {
		return 0
	}
	return h.Heights[j*h.NX+i]
}

// HeightAt returns the height of the column containing (x, y).
func (h *Heightfield) HeightAt(x, y float64) float64 {
	return h.At(int(math.Floor(x/h.Res)), int(math.Floor(y/h.Res)))
}

// ColumnBounds returns the XY extent of column (i, j).
func (h *Heightfield) ColumnBounds(i, j int) (x0, y0, x1, y1 float64) {
	x0 = float64(i) * h.Res
	y0 = float64(j) * h.Res
	x1 = math.Min(float64(i+1)*h.Res, h.Width)
	y1 = math.Min(float64(j+1)*h.Res, h.Height)
	return x0, y0, x1, y1
}

// Sample builds the heightfield of p. Each column takes the feature height if
// its center lies in any shape and the slab thickness otherwise.
func Sample(p *pattern.BoardPattern, opts Options) (*Heightfield, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	layout := pattern.NewLayout(opts.Step, p)
	size := layout.Size(p)
	h := &Heightfield{
		NX:     int(math.Ceil(size.X / opts.Resolution)),
		NY:     int(math.Ceil(size.Y / opts.Resolution)),
		Res:    opts.Resolution,
		Width:  size.X,
		Height: size.Y,
	}
	h.Heights = make([]float64, h.NX*h.NY)
	h.Feature = make([]bool, h.NX*h.NY)
	for k := range h.Heights {
		h.Heights[k] = opts.Base
	}

	top := opts.featureHeight()
	for _, s := range layout.Shapes(p) {
		lo, hi := s.Bounds()
		i0, j0 := max(0, int(lo.X/h.Res)), max(0, int(lo.Y/h.Res))
		i1, j1 := min(h.NX-1, int(hi.X/h.Res)), min(h.NY-1, int(hi.Y/h.Res))
		for j := j0; j <= j1; j++ {
			for i := i0; i <= i1; i++ {
				x0, y0, x1, y1 := h.ColumnBounds(i, j)
				if s.Contains((x0+x1)/2, (y0+y1)/2) {
					h.Heights[j*h.NX+i] = top
					h.Feature[j*h.NX+i] = true
				}
			}
		}
	}
	return h, nil
}

// Build samples p and extrudes it into a solid.
func Build(p *pattern.BoardPattern, opts Options) (*mesh.Mesh, error) {
	h, err := Sample(p, opts)
	if err != nil {
		return nil, err
	}
	m := Extrude(h, opts.BaseColor, opts.FeatureColor)
	logrus.Debugf("relief: %s %dx%d columns, %d faces", opts.Mode, h.NX, h.NY, len(m.Faces))
	return m, nil
}

// Extrude turns h into a closed surface. Columns of zero height are holes.
// Top faces of feature columns get featureColor; every other face gets baseColor.
func Extrude(h *Heightfield, baseColor, featureColor color.NRGBA) *mesh.Mesh {
	e := &extruder{}

	// tops and bottoms, merged into runs of equal height along each row
	for j := 0; j < h.NY; j++ {
		for i := 0; i < h.NX; {
			k := j*h.NX + i
			z, feat := h.Heights[k], h.Feature[k]
			end := i + 1
			for end < h.NX && h.Heights[k+end-i] == z && h.Feature[k+end-i] == feat {
				end++
			}
			if z > 0 {
				x0, y0, _, y1 := h.ColumnBounds(i, j)
				_, _, x1, _ := h.ColumnBounds(end-1, j)
				top := baseColor
				if feat {
					top = featureColor
				}
				e.quad(top, r3.Vec{X: x0, Y: y0, Z: z}, r3.Vec{X: x1, Y: y0, Z: z}, r3.Vec{X: x1, Y: y1, Z: z}, r3.Vec{X: x0, Y: y1, Z: z})
				e.quad(baseColor, r3.Vec{X: x0, Y: y0}, r3.Vec{X: x0, Y: y1}, r3.Vec{X: x1, Y: y1}, r3.Vec{X: x1, Y: y0})
			}
			i = end
		}
	}

	// walls between columns i-1 and i, one per column step
	for j := 0; j < h.NY; j++ {
		for i := 0; i <= h.NX; i++ {
			left, right := h.At(i-1, j), h.At(i, j)
			if left == right {
				continue
			}
			_, y0, _, y1 := h.ColumnBounds(0, j)
			x := math.Min(float64(i)*h.Res, h.Width)
			lo, hi := math.Min(left, right), math.Max(left, right)
			if left > right {
				// faces +X
				e.quad(baseColor, r3.Vec{X: x, Y: y0, Z: lo}, r3.Vec{X: x, Y: y1, Z: lo}, r3.Vec{X: x, Y: y1, Z: hi}, r3.Vec{X: x, Y: y0, Z: hi})
			} else {
				e.quad(baseColor, r3.Vec{X: x, Y: y1, Z: lo}, r3.Vec{X: x, Y: y0, Z: lo}, r3.Vec{X: x, Y: y0, Z: hi}, r3.Vec{X: x, Y: y1, Z: hi})
			}
		}
	}

	// walls between rows j-1 and j, merged into runs with the same step
	for j := 0; j <= h.NY; j++ {
		y := math.Min(float64(j)*h.Res, h.Height)
		for i := 0; i < h.NX; {
			below, above := h.At(i, j-1), h.At(i, j)
			end := i + 1
			for end < h.NX && h.At(end, j-1) == below && h.At(end, j) == above {
				end++
			}
			if below != above {
				x0, _, _, _ := h.ColumnBounds(i, 0)
				_, _, x1, _ := h.ColumnBounds(end-1, 0)
				lo, hi := math.Min(below, above), math.Max(below, above)
				if below > above {
					// faces +Y
					e.quad(baseColor, r3.Vec{X: x1, Y: y, Z: lo}, r3.Vec{X: x0, Y: y, Z: lo}, r3.Vec{X: x0, Y: y, Z: hi}, r3.Vec{X: x1, Y: y, Z: hi})
				} else {
					e.quad(baseColor, r3.Vec{X: x0, Y: y, Z: lo}, r3.Vec{X: x1, Y: y, Z: lo}, r3.Vec{X: x1, Y: y, Z: hi}, r3.Vec{X: x0, Y: y, Z: hi})
				}
			}
			i = end
		}
	}

	m := mesh.New(e.vertices, e.faces)
	m.Colors = e.colors
	return m
}

type extruder struct {
	vertices []r3.Vec
	faces    [][3]int
	colors   []color.NRGBA
}

// quad appends a, b, c, d as two triangles wound counter-clockwise.
func (e *extruder) quad(c color.NRGBA, a, b, cc, d r3.Vec) {
	n := len(e.vertices)
	e.vertices = append(e.vertices, a, b, cc, d)
	e.faces = append(e.faces, [3]int{n, n + 1, n + 2}, [3]int{n, n + 2, n + 3})
	e.colors = append(e.colors, c, c)
}
