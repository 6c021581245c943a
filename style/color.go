package style

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is either a packed opaque 0xRRGGBB value or explicit components
// with a fractional alpha. Parsing is strict: out-of-range components are an
// error, never clamped.
type Color struct {
	// RGB is the packed 0xRRGGBB value, valid when Packed is true.
	RGB    uint32
	Packed bool

	R, G, B uint8
	A       float64
}

// PackedColor returns the fully opaque packed form.
func PackedColor(rgb uint32) Color {
	return Color{RGB: rgb & 0xffffff, Packed: true}
}

// ComponentColor returns the component form with alpha in [0, 1].
func ComponentColor(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Black is the default color used where the grammar allows omitting one.
func Black() Color { return PackedColor(0) }

// Components returns r, g, b and alpha regardless of representation.
func (c Color) Components() (r, g, b uint8, a float64) {
	if c.Packed {
		return uint8(c.RGB >> 16), uint8(c.RGB >> 8), uint8(c.RGB), 1
	}
	return c.R, c.G, c.B, c.A
}

// MarshalJSON emits the packed form as a bare integer and the component
// form as an [r, g, b, a] tuple, matching the node/style wire schema.
func (c Color) MarshalJSON() ([]byte, error) {
	if c.Packed {
		return json.Marshal(c.RGB)
	}
	return json.Marshal([4]float64{float64(c.R), float64(c.G), float64(c.B), c.A})
}

// ParseColor parses hex (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb()/rgba()
// with components in [0, 255] and alpha in [0, 1], and named CSS colors
// including "transparent". Anything else fails with
// ErrUnsupportedColorFormat; out-of-range function components fail with
// ErrInvalidColorComponent.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty value", ErrUnsupportedColorFormat)
	}
	if s[0] == '#' {
		return parseHexColor(s[1:])
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		return parseRGBFunc(lower)
	}

	if lower == "transparent" {
		return ComponentColor(0, 0, 0, 0), nil
	}
	if named, ok := colornames.Map[lower]; ok {
		return fromNamed(named), nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrUnsupportedColorFormat, s)
}

func fromNamed(c color.RGBA) Color {
	return PackedColor(uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

func parseHexColor(hex string) (Color, error) {
	nibbles := make([]uint8, len(hex))
	for i := 0; i < len(hex); i++ {
		n, ok := hexNibble(hex[i])
		if !ok {
			return Color{}, fmt.Errorf("%w: invalid hex digit %q", ErrUnsupportedColorFormat, hex[i])
		}
		nibbles[i] = n
	}

	switch len(hex) {
	case 3:
		r, g, b := nibbles[0]*17, nibbles[1]*17, nibbles[2]*17
		return PackedColor(uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
	case 4:
		r, g, b, a := nibbles[0]*17, nibbles[1]*17, nibbles[2]*17, nibbles[3]*17
		return ComponentColor(r, g, b, float64(a)/255), nil
	case 6:
		var rgb uint32
		for _, n := range nibbles {
			rgb = rgb<<4 | uint32(n)
		}
		return PackedColor(rgb), nil
	case 8:
		r := nibbles[0]<<4 | nibbles[1]
		g := nibbles[2]<<4 | nibbles[3]
		b := nibbles[4]<<4 | nibbles[5]
		a := nibbles[6]<<4 | nibbles[7]
		return ComponentColor(r, g, b, float64(a)/255), nil
	default:
		return Color{}, fmt.Errorf("%w: hex color must have 3, 4, 6 or 8 digits, got %d", ErrUnsupportedColorFormat, len(hex))
	}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// parseRGBFunc handles rgb(r, g, b) and rgba(r, g, b, a). The argument
// count decides the form; the function name is not load-bearing.
func parseRGBFunc(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("%w: malformed function %q", ErrUnsupportedColorFormat, s)
	}
	args := splitArgs(s[open+1 : len(s)-1])
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("%w: expected 3 or 4 components, got %d", ErrUnsupportedColorFormat, len(args))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q is not a number", ErrInvalidColorComponent, args[i])
		}
		if f < 0 || f > 255 {
			return Color{}, fmt.Errorf("%w: %v out of range [0, 255]", ErrInvalidColorComponent, f)
		}
		ch[i] = uint8(math.Round(f))
	}

	if len(args) == 3 {
		return PackedColor(uint32(ch[0])<<16 | uint32(ch[1])<<8 | uint32(ch[2])), nil
	}

	a, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return Color{}, fmt.Errorf("%w: alpha %q is not a number", ErrInvalidColorComponent, args[3])
	}
	if a < 0 || a > 1 {
		return Color{}, fmt.Errorf("%w: alpha %v out of range [0, 1]", ErrInvalidColorComponent, a)
	}
	return ComponentColor(ch[0], ch[1], ch[2], a), nil
}
