package components

import (
	"fmt"

	"github.com/boardforge/boardforge/board"
)

// Defaults holds the physical constants the factories derive builder
// parameters from. All lengths are in millimetres. The zero value is not
// usable; start from DefaultConfig and override.
type Defaults struct {
	Sections  int             `yaml:"sections"`  // ring subdivision of round parts
	Step      float64         `yaml:"grid_step"` // grid pitch
	Board     BoardConfig     `yaml:"board"`
	Wire      WireConfig      `yaml:"wire"`
	Resistor  ResistorConfig  `yaml:"resistor"`
	LED       LEDConfig       `yaml:"led"`
	Chip      ChipConfig      `yaml:"chip"`
	Socket    SocketConfig    `yaml:"socket"`
	Track     TrackConfig     `yaml:"track"`
	Jumper    JumperConfig    `yaml:"jumper"`
	Enclosure EnclosureConfig `yaml:"enclosure"`
}

type BoardConfig struct {
	Thickness           float64 `yaml:"thickness"`
	PadRadius           float64 `yaml:"pad_radius"` // hole radius inside each contact pad
	ContactPadRadius    float64 `yaml:"contact_pad_radius"`
	ContactPadThickness float64 `yaml:"contact_pad_thickness"`
	Color               Color   `yaml:"color"`
	ContactPadColor     Color   `yaml:"contact_pad_color"`
}

type WireConfig struct {
	ContactRadius    float64 `yaml:"contact_radius"`    // bare lead radius
	ContactTolerance float64 `yaml:"contact_tolerance"` // how far leads reach past the board
	IsolationRadius  float64 `yaml:"isolation_radius"`
	ContactHeight    float64 `yaml:"contact_height"` // bare end length of standing wires
	ContactColor     Color   `yaml:"contact_color"`
}

type ResistorConfig struct {
	Span      int     `yaml:"span"`       // cells between the two leads
	BodySteps float64 `yaml:"body_steps"` // body length in grid steps
	Radius    float64 `yaml:"radius"`
	Tolerance float64 `yaml:"tolerance"` // gap between body and board
	Color     Color   `yaml:"color"`
}

type LEDConfig struct {
	Radius        float64 `yaml:"radius"`
	Height        float64 `yaml:"height"`
	AnodeLength   float64 `yaml:"anode_length"`
	CathodeLength float64 `yaml:"cathode_length"`
}

type ChipConfig struct {
	Thickness       float64 `yaml:"thickness"`
	PinThickness    float64 `yaml:"pin_thickness"`
	PinTopLength    float64 `yaml:"pin_top_length"`
	PinBottomLength float64 `yaml:"pin_bottom_length"`
	PinTopWidth     float64 `yaml:"pin_top_width"`
	PinBottomWidth  float64 `yaml:"pin_bottom_width"`
	Color           Color   `yaml:"color"`
}

type SocketConfig struct {
	Thickness    float64 `yaml:"thickness"`
	PinWidth     float64 `yaml:"pin_width"`
	PinThickness float64 `yaml:"pin_thickness"`
	PinHeight    float64 `yaml:"pin_height"`
	Color        Color   `yaml:"color"`
}

type TrackConfig struct {
	RadiusFactor float64 `yaml:"radius_factor"` // track radius as a fraction of the grid step
	Color        Color   `yaml:"color"`
}

type JumperConfig struct {
	RadiusFactor  float64 `yaml:"radius_factor"` // insulation radius over contact radius
	ContactHeight float64 `yaml:"contact_height"`
}

type EnclosureConfig struct {
	Width            float64          `yaml:"width"`
	Length           float64          `yaml:"length"`
	Height           float64          `yaml:"height"`
	Wall             float64          `yaml:"wall"`
	SupportInset     float64          `yaml:"support_inset"`
	SupportWidth     float64          `yaml:"support_width"`
	SupportThickness float64          `yaml:"support_thickness"`
	SupportLift      float64          `yaml:"support_lift"`
	NotchWidth       float64          `yaml:"notch_width"`
	NotchDepth       float64          `yaml:"notch_depth"`
	Notches          []EnclosureNotch `yaml:"notches"`
	OffsetZ          float64          `yaml:"offset_z"` // mid-height relative to the scene origin
	Color            Color            `yaml:"color"`
}

// DefaultConfig returns the built-in constants for a 2.54 mm prototyping board.
func DefaultConfig() Defaults {
	return Defaults{
		Sections: 24,
		Step:     2.54,
		Board: BoardConfig{
			Thickness:           1.6,
			PadRadius:           0.45,
			ContactPadRadius:    0.9,
			ContactPadThickness: 0.05,
			Color:               RGB(0, 110, 60),
			ContactPadColor:     RGB(200, 160, 60),
		},
		Wire: WireConfig{
			ContactRadius:    0.3,
			ContactTolerance: 0.2,
			IsolationRadius:  0.6,
			ContactHeight:    1.5,
			ContactColor:     RGB(190, 190, 190),
		},
		Resistor: ResistorConfig{
			Span:      4,
			BodySteps: 2,
			Radius:    1.0,
			Tolerance: 0.2,
			Color:     RGB(210, 180, 140),
		},
		LED: LEDConfig{
			Radius:        2.5,
			Height:        5.5,
			AnodeLength:   10,
			CathodeLength: 9,
		},
		Chip: ChipConfig{
			Thickness:       3.0,
			PinThickness:    0.3,
			PinTopLength:    2.0,
			PinBottomLength: 3.5,
			PinTopWidth:     1.5,
			PinBottomWidth:  0.5,
			Color:           RGB(30, 30, 30),
		},
		Socket: SocketConfig{
			Thickness:    5.0,
			PinWidth:     0.8,
			PinThickness: 0.3,
			PinHeight:    3.0,
			Color:        RGB(50, 50, 50),
		},
		Track: TrackConfig{
			RadiusFactor: 0.25,
			Color:        RGB(180, 180, 180),
		},
		Jumper: JumperConfig{
			RadiusFactor:  1.5,
			ContactHeight: 2.0,
		},
		Enclosure: EnclosureConfig{
			Width:            31,
			Length:           44,
			Height:           14,
			Wall:             2,
			SupportInset:     1.125,
			SupportWidth:     2.375,
			SupportThickness: 6,
			SupportLift:      4,
			NotchWidth:       5.5,
			NotchDepth:       7.5,
			Notches: []EnclosureNotch{
				{Wall: WallBack, X: 0},
				{Wall: WallFront, X: -7.75},
				{Wall: WallFront, X: 7.5},
			},
			OffsetZ: -0.25,
			Color:   Color{R: 178, G: 178, B: 0, A: 217},
		},
	}
}

// Validate checks the constants every factory relies on.
func (d Defaults) Validate() error {
	positive := map[string]float64{
		"grid_step":                   d.Step,
		"board.thickness":             d.Board.Thickness,
		"board.pad_radius":            d.Board.PadRadius,
		"board.contact_pad_radius":    d.Board.ContactPadRadius,
		"wire.contact_radius":         d.Wire.ContactRadius,
		"wire.isolation_radius":       d.Wire.IsolationRadius,
		"resistor.radius":             d.Resistor.Radius,
		"led.radius":                  d.LED.Radius,
		"led.height":                  d.LED.Height,
		"chip.thickness":              d.Chip.Thickness,
		"chip.pin_thickness":          d.Chip.PinThickness,
		"socket.thickness":            d.Socket.Thickness,
		"track.radius_factor":         d.Track.RadiusFactor,
		"jumper.radius_factor":        d.Jumper.RadiusFactor,
		"board.contact_pad_thickness": d.Board.ContactPadThickness,
	}
	for name, v := range positive {
		if !(v > 0) {
			return board.Invalidf("defaults: %s must be positive, got %g", name, v)
		}
	}
	if err := checkSections("defaults", d.Sections); err != nil {
		return err
	}
	if d.Board.ContactPadRadius <= d.Board.PadRadius {
		return board.Invalidf("defaults: board.contact_pad_radius %g must exceed pad_radius %g", d.Board.ContactPadRadius, d.Board.PadRadius)
	}
	if 2*d.Board.ContactPadThickness >= d.Board.Thickness {
		return board.Invalidf("defaults: board.contact_pad_thickness %g too large for thickness %g", d.Board.ContactPadThickness, d.Board.Thickness)
	}
	if d.Resistor.Span < 1 {
		return board.Invalidf("defaults: resistor.span must be at least 1, got %d", d.Resistor.Span)
	}
	return nil
}

func (d Defaults) checkFor(kind string) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%s factory: %w", kind, err)
	}
	return nil
}

// NewBoard returns the board builder for an x × y grid with the given edge indents.
func (d Defaults) NewBoard(xCount, yCount int, xIndent, yIndent float64) (Board, error) {
	if err := d.checkFor(KindBoard); err != nil {
		return Board{}, err
	}
	b := Board{
		XCount:              xCount,
		YCount:              yCount,
		Step:                d.Step,
		PadRadius:           d.Board.PadRadius,
		ContactPadRadius:    d.Board.ContactPadRadius,
		ContactPadThickness: d.Board.ContactPadThickness,
		Thickness:           d.Board.Thickness,
		XIndent:             xIndent,
		YIndent:             yIndent,
		Sections:            d.Sections,
		Color:               d.Board.Color,
		ContactPadColor:     d.Board.ContactPadColor,
	}
	return b, b.Validate()
}

// NewResistor returns an axial resistor lying along axis. The label is part
// of the builder's identity.
func (d Defaults) NewResistor(axis Axis, label string, c *Color) (Resistor, error) {
	if err := d.checkFor(KindResistor); err != nil {
		return Resistor{}, err
	}
	color := d.Resistor.Color
	if c != nil {
		color = *c
	}
	r := Resistor{
		Length:     d.Step * d.Resistor.BodySteps,
		Radius:     d.Resistor.Radius,
		Axis:       axis,
		LeadRadius: d.Wire.ContactRadius,
		LeadPitch:  float64(d.Resistor.Span) * d.Step,
		LeadDrop: d.Resistor.Radius + d.Resistor.Tolerance + d.Board.Thickness +
			d.Board.ContactPadThickness + d.Wire.ContactTolerance,
		OffsetZ:   -d.Board.Thickness/2 - d.Wire.ContactTolerance,
		Label:     label,
		Sections:  d.Sections,
		Color:     color,
		LeadColor: d.Wire.ContactColor,
	}
	return r, r.Validate()
}

// NewLED returns an LED with its leads on two adjacent cells.
func (d Defaults) NewLED(c Color) (LED, error) {
	if err := d.checkFor(KindLED); err != nil {
		return LED{}, err
	}
	l := LED{
		Radius:        d.LED.Radius,
		Height:        d.LED.Height,
		AnodeLength:   d.LED.AnodeLength,
		CathodeLength: d.LED.CathodeLength,
		LeadSpacing:   d.Step,
		ContactRadius: d.Wire.ContactRadius,
		OffsetZ:       -d.Board.Thickness/2 - d.Wire.ContactTolerance - (d.LED.AnodeLength - d.LED.CathodeLength),
		Sections:      d.Sections,
		Color:         c,
		ContactColor:  d.Wire.ContactColor,
	}
	return l, l.Validate()
}

// NewChip returns a dual in-line package with xCount pins per row whose body
// covers yCount cells between the rows.
func (d Defaults) NewChip(xCount, yCount int, label string, c *Color) (Chip, error) {
	if err := d.checkFor(KindChip); err != nil {
		return Chip{}, err
	}
	color := d.Chip.Color
	if c != nil {
		color = *c
	}
	ch := Chip{
		XCount:          xCount,
		YCount:          yCount,
		Step:            d.Step,
		Thickness:       d.Chip.Thickness,
		PinThickness:    d.Chip.PinThickness,
		PinTopLength:    d.Chip.PinTopLength,
		PinBottomLength: d.Chip.PinBottomLength,
		PinTopWidth:     d.Chip.PinTopWidth,
		PinBottomWidth:  d.Chip.PinBottomWidth,
		OffsetZ:         d.Board.Thickness/2 - d.Chip.PinBottomLength,
		Label:           label,
		Color:           color,
		ContactColor:    d.Wire.ContactColor,
	}
	return ch, ch.Validate()
}

// NewSocket returns a connector block covering xCount × yCount cells with pins
// at the given cell positions.
func (d Defaults) NewSocket(xCount, yCount float64, pins []SocketPin, c *Color) (Socket, error) {
	if err := d.checkFor(KindSocket); err != nil {
		return Socket{}, err
	}
	color := d.Socket.Color
	if c != nil {
		color = *c
	}
	s := Socket{
		XCount:       xCount,
		YCount:       yCount,
		Step:         d.Step,
		Thickness:    d.Socket.Thickness,
		Pins:         append([]SocketPin(nil), pins...),
		PinWidth:     d.Socket.PinWidth,
		PinThickness: d.Socket.PinThickness,
		PinHeight:    d.Socket.PinHeight,
		OffsetZ:      d.Board.Thickness/2 - d.Socket.PinHeight,
		Color:        color,
		ContactColor: d.Wire.ContactColor,
	}
	return s, s.Validate()
}

// NewTrack returns a solder track covering an xCount × yCount cell footprint.
func (d Defaults) NewTrack(xCount, yCount int, c *Color) (Track, error) {
	if err := d.checkFor(KindTrack); err != nil {
		return Track{}, err
	}
	color := d.Track.Color
	if c != nil {
		color = *c
	}
	t := Track{
		XCount:   xCount,
		YCount:   yCount,
		Step:     d.Step,
		Radius:   d.Step * d.Track.RadiusFactor,
		OffsetZ:  d.Board.Thickness/2 - d.Board.ContactPadThickness,
		Sections: d.Sections,
		Color:    color,
	}
	return t, t.Validate()
}

// NewJumper returns an insulated jumper between the first and last cell of an
// xCount × yCount footprint. Each level lifts the jumper by one insulation
// diameter so crossing jumpers do not collide.
func (d Defaults) NewJumper(xCount, yCount, level int, c Color) (Jumper, error) {
	if err := d.checkFor(KindJumper); err != nil {
		return Jumper{}, err
	}
	if level < 0 {
		return Jumper{}, board.Invalidf("jumper level must be non-negative, got %d", level)
	}
	radius := d.Wire.ContactRadius * d.Jumper.RadiusFactor
	j := Jumper{
		XCount:        xCount,
		YCount:        yCount,
		Step:          d.Step,
		StepDelta:     d.Board.PadRadius / 2,
		Radius:        radius,
		ContactRadius: d.Wire.ContactRadius,
		ContactHeight: float64(2*level+1)*radius + d.Wire.ContactRadius/2 + d.Jumper.ContactHeight,
		OffsetZ:       d.Board.Thickness/2 - d.Jumper.ContactHeight,
		Sections:      d.Sections,
		Color:         c,
		ContactColor:  d.Wire.ContactColor,
	}
	return j, j.Validate()
}

// NewWire returns a standing wire of the given length.
func (d Defaults) NewWire(length float64, c Color) (Wire, error) {
	if err := d.checkFor(KindWire); err != nil {
		return Wire{}, err
	}
	w := Wire{
		Length:        length,
		ContactLength: d.Wire.ContactHeight,
		Radius:        d.Wire.IsolationRadius,
		ContactRadius: d.Wire.ContactRadius,
		Sections:      d.Sections,
		Color:         c,
		ContactColor:  d.Wire.ContactColor,
	}
	return w, w.Validate()
}

// NewEnclosure returns the enclosure described by the defaults.
func (d Defaults) NewEnclosure(c *Color) (Enclosure, error) {
	if err := d.checkFor(KindEnclosure); err != nil {
		return Enclosure{}, err
	}
	ec := d.Enclosure
	color := ec.Color
	if c != nil {
		color = *c
	}
	e := Enclosure{
		Width:            ec.Width,
		Length:           ec.Length,
		Height:           ec.Height,
		Wall:             ec.Wall,
		SupportInset:     ec.SupportInset,
		SupportWidth:     ec.SupportWidth,
		SupportThickness: ec.SupportThickness,
		SupportLift:      ec.SupportLift,
		NotchWidth:       ec.NotchWidth,
		NotchDepth:       ec.NotchDepth,
		Notches:          append([]EnclosureNotch(nil), ec.Notches...),
		OffsetZ:          ec.OffsetZ,
		Color:            color,
	}
	return e, e.Validate()
}
