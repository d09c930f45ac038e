package cmd

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/board/components"
)

// SceneConfig is the scene file: named parts and the ordered placements that
// use them. Placements are composed in file order.
type SceneConfig struct {
	Step       float64               `yaml:"step"`     // grid pitch; defaults.grid_step when zero
	Origin     [3]float64            `yaml:"origin"`   // world position of cell (0,0)
	Rotation   string                `yaml:"rotation"` // final rotation of the whole scene
	Parts      map[string]PartConfig `yaml:"parts"`
	Placements []PlacementConfig     `yaml:"placements"`
	Enclosure  string                `yaml:"enclosure"` // part centered around the finished board
}

// PartConfig describes one builder. Which fields apply depends on Kind.
type PartConfig struct {
	Kind    string                 `yaml:"kind"`
	XCount  float64                `yaml:"x_count"`
	YCount  float64                `yaml:"y_count"`
	XIndent float64                `yaml:"x_indent"`
	YIndent float64                `yaml:"y_indent"`
	Axis    string                 `yaml:"axis"`
	Label   string                 `yaml:"label"`
	Color   *components.Color      `yaml:"color"`
	Level   int                    `yaml:"level"`
	Length  float64                `yaml:"length"`
	Pins    []components.SocketPin `yaml:"pins"`
}

// PlacementConfig puts a named part on a cell.
type PlacementConfig struct {
	Part     string `yaml:"part"`
	Cell     [2]int `yaml:"cell"`
	Side     string `yaml:"side"` // top (default) or bottom
	Rotation string `yaml:"rotation"`
}

// loadSceneConfig parses a scene file with strict field checking.
func loadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	var sc SceneConfig
	if err := decodeStrict(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scene YAML %s: %w", path, err)
	}
	return &sc, nil
}

// Scene resolves every placement against the named parts. Each part is
// turned into a builder once; placements share it.
func (sc *SceneConfig) Scene(d components.Defaults) (board.Scene, error) {
	rot, err := board.ParseRotation(sc.Rotation)
	if err != nil {
		return board.Scene{}, fmt.Errorf("scene rotation: %w", err)
	}
	step := sc.Step
	if step == 0 {
		step = d.Step
	}
	// parts derive their geometry from the scene's pitch
	d.Step = step

	builders := make(map[string]board.Builder, len(sc.Parts))
	for name, part := range sc.Parts {
		b, err := part.Builder(d)
		if err != nil {
			return board.Scene{}, fmt.Errorf("part %q: %w", name, err)
		}
		builders[name] = b
	}

	scene := board.Scene{
		Step:       step,
		Origin:     r3.Vec{X: sc.Origin[0], Y: sc.Origin[1], Z: sc.Origin[2]},
		Rotation:   rot,
		Placements: make([]board.Placement, 0, len(sc.Placements)),
	}
	for i, pc := range sc.Placements {
		b, ok := builders[pc.Part]
		if !ok {
			return board.Scene{}, fmt.Errorf("placement %d: unknown part %q", i, pc.Part)
		}
		side := board.Top
		if pc.Side != "" {
			if side, err = board.ParseSide(pc.Side); err != nil {
				return board.Scene{}, fmt.Errorf("placement %d: %w", i, err)
			}
		}
		r, err := board.ParseRotation(pc.Rotation)
		if err != nil {
			return board.Scene{}, fmt.Errorf("placement %d: %w", i, err)
		}
		scene.Placements = append(scene.Placements, board.Placement{
			Builder:  b,
			Cell:     board.Cell{X: pc.Cell[0], Y: pc.Cell[1]},
			Side:     side,
			Rotation: r,
		})
	}
	if sc.Enclosure != "" {
		b, ok := builders[sc.Enclosure]
		if !ok {
			return board.Scene{}, fmt.Errorf("enclosure: unknown part %q", sc.Enclosure)
		}
		scene.Enclosure = b
	}
	return scene, nil
}

// Builder creates the builder the part describes.
func (p PartConfig) Builder(d components.Defaults) (board.Builder, error) {
	switch canonicalKind(p.Kind) {
	case components.KindBoard:
		x, y, err := p.cells()
		if err != nil {
			return nil, err
		}
		return d.NewBoard(x, y, p.XIndent, p.YIndent)
	case components.KindResistor:
		axis, err := components.ParseAxis(p.Axis)
		if err != nil {
			return nil, err
		}
		return d.NewResistor(axis, p.Label, p.Color)
	case components.KindLED:
		c, err := p.requireColor()
		if err != nil {
			return nil, err
		}
		return d.NewLED(c)
	case components.KindChip:
		x, y, err := p.cells()
		if err != nil {
			return nil, err
		}
		return d.NewChip(x, y, p.Label, p.Color)
	case components.KindSocket:
		return d.NewSocket(p.XCount, p.YCount, p.Pins, p.Color)
	case components.KindTrack:
		x, y, err := p.cells()
		if err != nil {
			return nil, err
		}
		return d.NewTrack(x, y, p.Color)
	case components.KindJumper:
		x, y, err := p.cells()
		if err != nil {
			return nil, err
		}
		c, err := p.requireColor()
		if err != nil {
			return nil, err
		}
		return d.NewJumper(x, y, p.Level, c)
	case components.KindWire:
		c, err := p.requireColor()
		if err != nil {
			return nil, err
		}
		return d.NewWire(p.Length, c)
	case components.KindEnclosure:
		return d.NewEnclosure(p.Color)
	default:
		return nil, board.Invalidf("unknown part kind %q", p.Kind)
	}
}

var partKinds = []string{
	components.KindBoard, components.KindResistor, components.KindLED, components.KindChip,
	components.KindSocket, components.KindTrack, components.KindJumper, components.KindWire,
}

// canonicalKind matches s against the builder kinds ignoring case.
func canonicalKind(s string) string {
	s = strings.TrimSpace(s)
	for _, k := range partKinds {
		if strings.EqualFold(s, k) {
			return k
		}
	}
	return s
}

// cells returns the footprint as whole cell counts.
func (p PartConfig) cells() (int, int, error) {
	if p.XCount != math.Trunc(p.XCount) || p.YCount != math.Trunc(p.YCount) {
		return 0, 0, board.Invalidf("%s footprint must be whole cells, got %gx%g", p.Kind, p.XCount, p.YCount)
	}
	return int(p.XCount), int(p.YCount), nil
}

func (p PartConfig) requireColor() (components.Color, error) {
	if p.Color == nil {
		return components.Color{}, board.Invalidf("%s needs a color", p.Kind)
	}
	return *p.Color, nil
}
