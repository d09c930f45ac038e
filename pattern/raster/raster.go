// Package raster draws a BoardPattern into an image: the board outline and
// grid, then tracks, then pins. Drawing happens at Supersample times the
// target resolution and is filtered down for anti-aliasing.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"github.com/boardforge/boardforge/pattern"
)

const mmPerInch = 25.4

// Options configures Render.
type Options struct {
	Step        float64 // grid pitch in mm
	DPI         float64
	Supersample int // drawing scale before downsampling; 1 disables it

	Background color.NRGBA
	Outline    color.NRGBA
	Grid       color.NRGBA
	Ink        color.NRGBA // tracks and pins
}

// DefaultOptions returns 300 DPI with 4x supersampling, black ink on white.
func DefaultOptions(step float64) Options {
	return Options{
		Step:        step,
		DPI:         300,
		Supersample: 4,
		Background:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Outline:     color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		Grid:        color.NRGBA{R: 211, G: 211, B: 211, A: 255},
		Ink:         color.NRGBA{A: 255},
	}
}

func (o Options) validate() error {
	if !(o.Step > 0) {
		return fmt.Errorf("raster: step must be positive, got %g", o.Step)
	}
	if !(o.DPI > 0) {
		return fmt.Errorf("raster: dpi must be positive, got %g", o.DPI)
	}
	if o.Supersample < 1 {
		return fmt.Errorf("raster: supersample must be at least 1, got %d", o.Supersample)
	}
	return nil
}

// PixelsPerMM returns the output resolution.
func (o Options) PixelsPerMM() float64 {
	return o.DPI / mmPerInch
}

// Render draws p. The image's pixel (0, 0) is the outline's corner, with x
// and y growing like the pattern's cell coordinates.
func Render(p *pattern.BoardPattern, opts Options) (*image.RGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	layout := pattern.NewLayout(opts.Step, p)
	size := layout.Size(p)
	ppm := opts.PixelsPerMM()
	width, height := int(size.X*ppm), int(size.Y*ppm)
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("raster: %gx%g mm at %g dpi is empty", size.X, size.Y, opts.DPI)
	}

	ss := opts.Supersample
	scale := ppm * float64(ss)
	dc := gg.NewContext(width*ss, height*ss)
	defer dc.Close()
	dc.ClearWithColor(toRGBA(opts.Background))

	if err := drawBoard(dc, layout, p, opts, scale); err != nil {
		return nil, err
	}
	for _, s := range layout.Shapes(p) {
		if err := drawShape(dc, s, opts.Ink, scale, float64(ss)); err != nil {
			return nil, err
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("raster: flush: %w", err)
	}
	full := dc.Image().(*image.RGBA)
	if ss == 1 {
		return full, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), full, full.Bounds(), xdraw.Src, nil)
	logrus.Debugf("raster: %dx%d px from %dx%d", width, height, full.Bounds().Dx(), full.Bounds().Dy())
	return out, nil
}

func drawBoard(dc *gg.Context, l pattern.Layout, p *pattern.BoardPattern, opts Options, scale float64) error {
	size := l.Size(p)
	ss := float64(opts.Supersample)

	lw := 2 * ss
	dc.SetColor(opts.Outline)
	dc.SetLineWidth(lw)
	dc.DrawRectangle(lw/2, lw/2, size.X*scale-lw, size.Y*scale-lw)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("raster: outline: %w", err)
	}

	dc.SetColor(opts.Grid)
	dc.SetLineWidth(ss)
	dc.SetLineCap(gg.LineCapButt)
	first := l.GridLine(0)
	lastX, lastY := l.GridLine(p.XCount).X, l.GridLine(p.YCount).Y
	for i := 0; i <= p.XCount; i++ {
		x := l.GridLine(i).X * scale
		dc.DrawLine(x, first.Y*scale, x, lastY*scale)
	}
	for j := 0; j <= p.YCount; j++ {
		y := l.GridLine(j).Y * scale
		dc.DrawLine(first.X*scale, y, lastX*scale, y)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("raster: grid: %w", err)
	}
	return nil
}

// drawShape fills s. Strokes and radii are at least one output pixel wide.
func drawShape(dc *gg.Context, s pattern.Shape, ink color.NRGBA, scale, minPx float64) error {
	dc.SetColor(ink)
	switch s := s.(type) {
	case pattern.Capsule:
		r := max(s.Radius*scale, minPx/2)
		dc.SetLineWidth(2 * r)
		dc.SetLineCap(gg.LineCapButt)
		dc.DrawLine(s.A.X*scale, s.A.Y*scale, s.B.X*scale, s.B.Y*scale)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("raster: track: %w", err)
		}
		dc.DrawCircle(s.A.X*scale, s.A.Y*scale, r)
		dc.DrawCircle(s.B.X*scale, s.B.Y*scale, r)
	case pattern.Circle:
		dc.DrawCircle(s.Center.X*scale, s.Center.Y*scale, max(s.Radius*scale, minPx/2))
	default:
		return fmt.Errorf("raster: unknown shape %T", s)
	}
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("raster: fill: %w", err)
	}
	return nil
}

func toRGBA(c color.NRGBA) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

// SavePNG writes img to path, creating the parent directory.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	return dc.SavePNG(path)
}
