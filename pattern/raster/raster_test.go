package raster

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardforge/boardforge/pattern"
)

const step = 2.54

// scenario is a 9x14 board with a pin at (1,0) and a track from it to (7,0).
func scenario() *pattern.BoardPattern {
	return &pattern.BoardPattern{
		XCount: 9, YCount: 14, XIndent: 1.2, YIndent: 1.2,
		Pins:   []pattern.Pin{{X: 1, Y: 0, Radius: 0.9}},
		Tracks: []pattern.Track{{X: 1, Y: 0, XCount: 6, Width: 0.85}},
	}
}

// opts renders at 10 pixels per millimetre.
func opts() Options {
	o := DefaultOptions(step)
	o.DPI = 254
	o.Supersample = 2
	return o
}

func luminance(img *image.RGBA, x, y float64) uint8 {
	return img.RGBAAt(int(x), int(y)).G
}

func TestRender_SizeFollowsDPI(t *testing.T) {
	img, err := Render(scenario(), opts())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 252, 379), img.Bounds())
}

func TestRender_PinCenterIsInked(t *testing.T) {
	img, err := Render(scenario(), opts())
	require.NoError(t, err)

	// GIVEN the pin at (1,0) whose physical center is (1.2+1.5*step, 1.2+step/2) mm
	px, py := (1.2+1.5*step)*10, (1.2+step/2)*10

	// THEN the pixel there is ink
	assert.Less(t, luminance(img, px, py), uint8(64))

	// THEN the track's midpoint is ink and an empty cell is background
	assert.Less(t, luminance(img, (1.2+4.5*step)*10, py), uint8(64))
	assert.Greater(t, luminance(img, (1.2+4.5*step)*10, (1.2+10.5*step)*10), uint8(200))
}

func TestRender_WithoutSupersampling(t *testing.T) {
	o := opts()
	o.Supersample = 1
	img, err := Render(scenario(), o)
	require.NoError(t, err)
	assert.Equal(t, 252, img.Bounds().Dx())
	assert.Less(t, luminance(img, (1.2+1.5*step)*10, (1.2+step/2)*10), uint8(64))
}

func TestRender_RejectsBadInput(t *testing.T) {
	o := opts()
	o.DPI = 0
	_, err := Render(scenario(), o)
	assert.Error(t, err)

	o = opts()
	o.Supersample = 0
	_, err = Render(scenario(), o)
	assert.Error(t, err)

	p := scenario()
	p.Tracks[0].YCount = 2
	_, err = Render(p, opts())
	assert.ErrorIs(t, err, pattern.ErrDiagonalTrack)
}

func TestSavePNG(t *testing.T) {
	img, err := Render(scenario(), opts())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "pattern.png")
	require.NoError(t, SavePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
