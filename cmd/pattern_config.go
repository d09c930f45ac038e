package cmd

import (
	"fmt"
	"os"

	"github.com/boardforge/boardforge/pattern"
)

// PatternConfig is the pattern file. Pins are {x, y, radius} maps in cells
// and multitrack moves are [dx, dy] pairs.
type PatternConfig struct {
	XCount      int                `yaml:"x_count"`
	YCount      int                `yaml:"y_count"`
	XIndent     float64            `yaml:"x_indent"`
	YIndent     float64            `yaml:"y_indent"`
	PinRadius   float64            `yaml:"pin_radius"`  // radius of pins that do not set their own
	TrackWidth  float64            `yaml:"track_width"` // width of multitracks that do not set their own
	Pins        []PinConfig        `yaml:"pins"`
	MultiTracks []MultiTrackConfig `yaml:"multitracks"`
}

// PinConfig is one pad; a zero radius takes the file's pin_radius.
type PinConfig struct {
	X      int     `yaml:"x"`
	Y      int     `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// MultiTrackConfig is a path of axis-aligned moves from Start.
type MultiTrackConfig struct {
	Start [2]int   `yaml:"start"`
	Width float64  `yaml:"width"`
	Moves [][2]int `yaml:"moves"`
}

// loadPatternConfig parses a pattern file with strict field checking.
func loadPatternConfig(path string) (*PatternConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}
	var pc PatternConfig
	if err := decodeStrict(data, &pc); err != nil {
		return nil, fmt.Errorf("parse pattern YAML %s: %w", path, err)
	}
	return &pc, nil
}

// Pattern replays the multitracks and returns the validated pattern.
func (pc *PatternConfig) Pattern() (*pattern.BoardPattern, error) {
	p := &pattern.BoardPattern{
		XCount:  pc.XCount,
		YCount:  pc.YCount,
		XIndent: pc.XIndent,
		YIndent: pc.YIndent,
		Pins:    make([]pattern.Pin, 0, len(pc.Pins)),
	}
	for _, pin := range pc.Pins {
		radius := pin.Radius
		if radius == 0 {
			radius = pc.PinRadius
		}
		p.Pins = append(p.Pins, pattern.Pin{X: pin.X, Y: pin.Y, Radius: radius})
	}
	for i, mc := range pc.MultiTracks {
		width := mc.Width
		if width == 0 {
			width = pc.TrackWidth
		}
		mt := pattern.NewMultiTrack(mc.Start[0], mc.Start[1], width)
		for _, mv := range mc.Moves {
			mt.Move(mv[0], mv[1])
		}
		if err := p.AddMultiTrack(mt); err != nil {
			return nil, fmt.Errorf("multitrack %d from (%d,%d): %w", i, mc.Start[0], mc.Start[1], err)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
