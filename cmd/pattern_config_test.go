package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardforge/boardforge/internal/testutil"
	"github.com/boardforge/boardforge/pattern"
	"github.com/boardforge/boardforge/pattern/raster"
	"github.com/boardforge/boardforge/pattern/relief"
)

const step = 2.54

func demoPattern(t *testing.T) *pattern.BoardPattern {
	t.Helper()
	pc, err := loadPatternConfig(testutil.ExamplePath(t, "pattern.yaml"))
	require.NoError(t, err)
	p, err := pc.Pattern()
	require.NoError(t, err)
	return p
}

func TestPatternConfig_DemoPattern(t *testing.T) {
	p := demoPattern(t)
	assert.Equal(t, 9, p.XCount)
	assert.Equal(t, 14, p.YCount)
	assert.Len(t, p.Pins, 38)
	for _, pin := range p.Pins {
		assert.Equal(t, 0.9, pin.Radius, "pin_radius fills in unset radii")
	}
	for i, tr := range p.Tracks {
		assert.True(t, tr.XCount == 0 || tr.YCount == 0, "track %d is diagonal", i)
		assert.Equal(t, 0.85, tr.Width)
	}
}

func TestPatternConfig_DemoPinRendersAtPhysicalCenter(t *testing.T) {
	// GIVEN the demo pattern's pin at (1,0), whose physical center is
	// (1.2+1.5*step, 1.2+step/2) mm
	p := demoPattern(t)
	x, y := 1.2+1.5*step, 1.2+step/2

	// WHEN it is rasterized at 10 px/mm
	ro := raster.DefaultOptions(step)
	ro.DPI = 254
	ro.Supersample = 2
	img, err := raster.Render(p, ro)
	require.NoError(t, err)

	// THEN the pixel there is ink
	assert.Less(t, img.RGBAAt(int(x*10), int(y*10)).G, uint8(64))

	// WHEN it is extruded as a raised relief
	eo := relief.DefaultOptions(step)
	eo.Resolution = 0.25
	h, err := relief.Sample(p, eo)
	require.NoError(t, err)

	// THEN the column there stands at base+relief
	assert.Equal(t, eo.Base+eo.Relief, h.HeightAt(x, y))
}

func TestPatternConfig_DiagonalMoveIsRejected(t *testing.T) {
	path := writeFile(t, "pattern.yaml", `
x_count: 4
y_count: 4
track_width: 0.8
multitracks:
  - start: [0, 0]
    moves: [[1, 0], [1, 1]]
`)
	pc, err := loadPatternConfig(path)
	require.NoError(t, err)
	_, err = pc.Pattern()
	require.ErrorIs(t, err, pattern.ErrDiagonalTrack)
	assert.Contains(t, err.Error(), "multitrack 0")
}

func TestPatternConfig_OwnRadiusAndWidthWin(t *testing.T) {
	path := writeFile(t, "pattern.yaml", `
x_count: 4
y_count: 4
pin_radius: 0.9
track_width: 0.8
pins:
  - {x: 0, y: 0, radius: 0.5}
  - {x: 3, y: 0}
multitracks:
  - start: [0, 0]
    width: 0.4
    moves: [[3, 0]]
`)
	pc, err := loadPatternConfig(path)
	require.NoError(t, err)
	p, err := pc.Pattern()
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.Pins[0].Radius)
	assert.Equal(t, 0.9, p.Pins[1].Radius)
	require.Len(t, p.Tracks, 1)
	assert.Equal(t, 0.4, p.Tracks[0].Width)
}

func TestPatternConfig_RejectsUnknownFieldAndOffGridPin(t *testing.T) {
	_, err := loadPatternConfig(writeFile(t, "pattern.yaml", "x_count: 4\ny_count: 4\npin_radus: 1\n"))
	assert.Error(t, err)

	pc, err := loadPatternConfig(writeFile(t, "pattern.yaml", "x_count: 4\ny_count: 4\npin_radius: 1\npins: [{x: 4, y: 0}]\n"))
	require.NoError(t, err)
	_, err = pc.Pattern()
	assert.ErrorIs(t, err, pattern.ErrInvalidPattern)
}

func TestPatternConfig_PinFieldsAreChecked(t *testing.T) {
	// GIVEN a pin that spells its radius wrong
	_, err := loadPatternConfig(writeFile(t, "pattern.yaml", "x_count: 4\ny_count: 4\npins: [{x: 1, y: 2, r: 0.5}]\n"))

	// THEN the pin entry is rejected like any other unknown field
	require.Error(t, err)
	assert.Contains(t, err.Error(), "r")

	// GIVEN the correct spelling
	pc, err := loadPatternConfig(writeFile(t, "pattern.yaml", "x_count: 4\ny_count: 4\npins: [{x: 1, y: 2, radius: 0.5}]\n"))
	require.NoError(t, err)
	p, err := pc.Pattern()
	require.NoError(t, err)

	// THEN it becomes a pattern pin unchanged
	assert.Equal(t, []pattern.Pin{{X: 1, Y: 2, Radius: 0.5}}, p.Pins)
}
