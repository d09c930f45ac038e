package board

import (
	"encoding/hex"
	"image/color"
	"strconv"
	"strings"
)

// KeyWriter serializes a builder's parameters into a cache key.
//
// A key is "<kind>_<name>_<value>_<name>_<value>...". Every value carries a
// one-letter type tag and is restricted to [A-Za-z0-9.], so a finished key is
// already a valid cache filename and SanitizeKey leaves it unchanged. Two
// builders of the same kind produce the same key only when every written
// parameter is equal.
type KeyWriter struct {
	sb strings.Builder
}

// NewKey starts a key for the given builder kind. Characters outside
// [A-Za-z0-9] are dropped from kind.
func NewKey(kind string) *KeyWriter {
	k := &KeyWriter{}
	k.sb.WriteString(alnum(kind))
	return k
}

func (k *KeyWriter) field(name, value string) *KeyWriter {
	k.sb.WriteByte('_')
	k.sb.WriteString(alnum(name))
	k.sb.WriteByte('_')
	k.sb.WriteString(value)
	return k
}

// Int writes an integer parameter.
func (k *KeyWriter) Int(name string, v int) *KeyWriter {
	return k.field(name, "i"+signless(strconv.Itoa(v)))
}

// Float writes a float parameter using the shortest exact representation.
func (k *KeyWriter) Float(name string, v float64) *KeyWriter {
	return k.field(name, "f"+signless(strconv.FormatFloat(v, 'g', -1, 64)))
}

// Bool writes a boolean parameter.
func (k *KeyWriter) Bool(name string, v bool) *KeyWriter {
	if v {
		return k.field(name, "b1")
	}
	return k.field(name, "b0")
}

// String writes a text parameter. Alphanumeric text is kept readable; anything
// else is hex encoded.
func (k *KeyWriter) String(name, v string) *KeyWriter {
	if v == alnum(v) {
		return k.field(name, "s"+v)
	}
	return k.field(name, "h"+hex.EncodeToString([]byte(v)))
}

// Color writes an RGBA color as eight hex digits.
func (k *KeyWriter) Color(name string, c color.NRGBA) *KeyWriter {
	return k.field(name, "c"+hex.EncodeToString([]byte{c.R, c.G, c.B, c.A}))
}

// Nested writes the key of a delegate builder. The length prefix keeps the
// enclosing key unambiguous.
func (k *KeyWriter) Nested(name, key string) *KeyWriter {
	return k.field(name, "k"+strconv.Itoa(len(key))+"."+key)
}

// Key returns the finished key.
func (k *KeyWriter) Key() string {
	return k.sb.String()
}

// KeyKind returns the builder kind a key was started with.
func KeyKind(key string) string {
	kind, _, _ := strings.Cut(key, "_")
	return kind
}

// SanitizeKey maps a key to a filename stem: characters outside
// [A-Za-z0-9._] become '_', runs of '_' collapse into one, and leading or
// trailing separators are trimmed.
func SanitizeKey(key string) string {
	var sb strings.Builder
	sb.Grow(len(key))
	prevSep := false
	for _, r := range key {
		if r == '.' || isAlnum(r) {
			sb.WriteRune(r)
			prevSep = false
			continue
		}
		if !prevSep {
			sb.WriteByte('_')
			prevSep = true
		}
	}
	return strings.Trim(sb.String(), "_.")
}

// signless replaces the sign characters strconv emits so the value stays within
// the key alphabet: '-' becomes 'n' and '+' is dropped. strconv always writes an
// explicit exponent sign, so dropping '+' is unambiguous.
func signless(s string) string {
	return strings.NewReplacer("-", "n", "+", "").Replace(s)
}

func alnum(s string) string {
	return strings.Map(func(r rune) rune {
		if isAlnum(r) {
			return r
		}
		return -1
	}, s)
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
