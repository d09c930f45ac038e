package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/board/cache"
	"github.com/boardforge/boardforge/board/components"
	"github.com/boardforge/boardforge/board/trace"
	"github.com/boardforge/boardforge/internal/testutil"
)

func TestSceneConfig_DemoBoardComposes(t *testing.T) {
	// GIVEN the demo scene with the built-in constants
	sc, err := loadSceneConfig(testutil.ExamplePath(t, "scene.yaml"))
	require.NoError(t, err)
	scene, err := sc.Scene(components.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, scene.Placements, 38)
	assert.Equal(t, board.CounterClockwise90, scene.Rotation)
	require.NotNil(t, scene.Enclosure)

	// WHEN it is composed through a memory cache
	manager := cache.NewManager()
	tr := trace.NewPlacementTrace()
	solid, err := scene.Compose(manager, tr)
	require.NoError(t, err)
	require.NoError(t, solid.Validate())

	// THEN every placement and the enclosure are recorded and each distinct part was built once
	s := trace.Summarize(tr)
	assert.Equal(t, 39, s.TotalPlacements)
	assert.Equal(t, map[string]int{
		components.KindBoard:     1,
		components.KindResistor:  6,
		components.KindLED:       3,
		components.KindChip:      1,
		components.KindSocket:    3,
		components.KindTrack:     21,
		components.KindJumper:    3,
		components.KindEnclosure: 1,
	}, s.KindDistribution)
	assert.Equal(t, map[string]int{"top": 15, "bottom": 24}, s.SideDistribution)
	assert.Equal(t, 17, s.UniqueKeys)
	assert.Equal(t, len(solid.Faces), s.TotalFaces)

	stats := manager.Stats()
	assert.Equal(t, int64(17), stats.Builds)
	assert.Equal(t, int64(38-16), stats.MemoryHits)

	// THEN the rotated board fits inside the enclosure walls
	d := components.DefaultConfig()
	enc := tr.Placements()[38]
	assert.Equal(t, components.KindEnclosure, enc.Kind)
	testutil.AssertFloat64Equal(t, "enclosure width", d.Enclosure.Width, enc.Size().X, 1e-9)
	testutil.AssertFloat64Equal(t, "enclosure length", d.Enclosure.Length, enc.Size().Y, 1e-9)
	brd := tr.Placements()[0]
	boardWidth, boardLength := brd.Size().Y, brd.Size().X
	assert.Less(t, boardWidth, d.Enclosure.Width-2*d.Enclosure.Wall)
	assert.Less(t, boardLength, d.Enclosure.Length-2*d.Enclosure.Wall)
}

func TestSceneConfig_StepOverridesDefaults(t *testing.T) {
	path := writeFile(t, "scene.yaml", `
step: 2.0
parts:
  board: {kind: board, x_count: 2, y_count: 2}
placements:
  - {part: board, cell: [0, 0]}
`)
	sc, err := loadSceneConfig(path)
	require.NoError(t, err)
	scene, err := sc.Scene(components.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2.0, scene.Step)

	b, ok := scene.Placements[0].Builder.(components.Board)
	require.True(t, ok)
	assert.Equal(t, 2.0, b.Step, "parts use the scene's pitch")
	assert.Equal(t, board.Top, scene.Placements[0].Side)
}

func TestSceneConfig_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "parts:\n  b: {kind: board, x_count: 2, y_count: 2, colour: \"#000000\"}\n",
			wantErr: "colour",
		},
		{
			name:    "unknown part",
			yaml:    "placements:\n  - {part: ghost, cell: [0, 0]}\n",
			wantErr: "ghost",
		},
		{
			name:    "unknown kind",
			yaml:    "parts:\n  x: {kind: capacitor}\n",
			wantErr: "capacitor",
		},
		{
			name:    "fractional chip",
			yaml:    "parts:\n  c: {kind: chip, x_count: 3.5, y_count: 2}\n",
			wantErr: "whole cells",
		},
		{
			name:    "led without color",
			yaml:    "parts:\n  l: {kind: led}\n",
			wantErr: "needs a color",
		},
		{
			name:    "bad side",
			yaml:    "parts:\n  b: {kind: board, x_count: 2, y_count: 2}\nplacements:\n  - {part: b, cell: [0, 0], side: left}\n",
			wantErr: "left",
		},
		{
			name:    "unknown enclosure",
			yaml:    "enclosure: lid\n",
			wantErr: "lid",
		},
		{
			name:    "bad rotation",
			yaml:    "rotation: \"45\"\n",
			wantErr: "45",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := loadSceneConfig(writeFile(t, "scene.yaml", tt.yaml))
			if err == nil {
				_, err = sc.Scene(components.DefaultConfig())
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPartConfig_KindIsCaseInsensitive(t *testing.T) {
	for _, kind := range []string{"led", "LED", " Led "} {
		c := components.RGB(1, 2, 3)
		b, err := PartConfig{Kind: kind, Color: &c}.Builder(components.DefaultConfig())
		require.NoError(t, err, kind)
		assert.True(t, strings.HasPrefix(b.CacheKey(), components.KindLED), kind)
	}
}
