package board

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resistorKey(length float64, axis string, label string, c color.NRGBA) string {
	return NewKey("Resistor").
		Float("length", length).
		String("axis", axis).
		String("label", label).
		Color("color", c).
		Key()
}

func TestKeyWriter_IdenticalParametersGiveIdenticalKeys(t *testing.T) {
	black := color.NRGBA{A: 255}
	a := resistorKey(7.62, "X", "10 kOm", black)
	b := resistorKey(7.62, "X", "10 kOm", black)
	assert.Equal(t, a, b)
}

func TestKeyWriter_AnyDifferingParameterChangesKey(t *testing.T) {
	black := color.NRGBA{A: 255}
	base := resistorKey(7.62, "X", "10 kOm", black)

	variants := map[string]string{
		"length":      resistorKey(7.63, "X", "10 kOm", black),
		"axis":        resistorKey(7.62, "Y", "10 kOm", black),
		"label":       resistorKey(7.62, "X", "220 Om", black),
		"label space": resistorKey(7.62, "X", "10_kOm", black),
		"color":       resistorKey(7.62, "X", "10 kOm", color.NRGBA{B: 100, A: 255}),
	}
	seen := map[string]string{base: "base"}
	for name, key := range variants {
		assert.NotEqual(t, base, key, name)
		if other, dup := seen[key]; dup {
			t.Errorf("%s and %s share key %q", name, other, key)
		}
		seen[key] = name
	}
}

func TestKeyWriter_ValueTypesAndSignsAreDistinct(t *testing.T) {
	keys := []string{
		NewKey("K").Int("v", 10).Key(),
		NewKey("K").Int("v", -10).Key(),
		NewKey("K").Float("v", 10).Key(),
		NewKey("K").Float("v", -10).Key(),
		NewKey("K").Float("v", 1e21).Key(),
		NewKey("K").Float("v", 1e-21).Key(),
		NewKey("K").Float("v", math.Copysign(0, -1)).Key(),
		NewKey("K").Float("v", 0).Key(),
		NewKey("K").String("v", "10").Key(),
		NewKey("K").Bool("v", true).Key(),
		NewKey("K").Bool("v", false).Key(),
		NewKey("K").Nested("v", NewKey("Inner").Int("n", 1).Key()).Key(),
		NewKey("K").Nested("v", NewKey("Inner").Int("n", 2).Key()).Key(),
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
}

func TestKeyWriter_KeysAreAlreadySanitized(t *testing.T) {
	keys := []string{
		resistorKey(-2.54e-7, "X", "ü 10kΩ / +5%", color.NRGBA{R: 1, G: 2, B: 3, A: 4}),
		NewKey("Jumper").Int("x", -3).Int("y", 5).Float("z", math.Inf(1)).Key(),
		NewKey("Socket").Nested("pins", NewKey("Pin").Float("angle", math.Pi/2).Key()).Key(),
	}
	for _, k := range keys {
		assert.Equal(t, k, SanitizeKey(k))
		assert.Regexp(t, `^[A-Za-z0-9._]+$`, k)
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := map[string]string{
		"Resistor(10 kOm)":   "Resistor_10_kOm",
		"__a--b__c.":         "a_b_c",
		"plain.name_1":       "plain.name_1",
		"///":                "",
		"x\ty\n":             "x_y",
		"Board_x_i14_y_i9":   "Board_x_i14_y_i9",
		"..hidden/../escape": "hidden_.._escape",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeKey(in), in)
	}
}

func TestKeyKind(t *testing.T) {
	assert.Equal(t, "Track", KeyKind(NewKey("Track").Int("x", 1).Key()))
	assert.Equal(t, "Bare", KeyKind("Bare"))
}
