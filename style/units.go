package style

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Unit identifies how the numeric part of a Length is interpreted.
type Unit uint8

const (
	UnitPx Unit = iota
	UnitPercent
	UnitRem
	UnitEm
	UnitVh
	UnitVw
	UnitAuto
	UnitMinContent
	UnitMaxContent
)

// String returns the CSS spelling of the unit.
func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitPercent:
		return "%"
	case UnitRem:
		return "rem"
	case UnitEm:
		return "em"
	case UnitVh:
		return "vh"
	case UnitVw:
		return "vw"
	case UnitAuto:
		return "auto"
	case UnitMinContent:
		return "min-content"
	case UnitMaxContent:
		return "max-content"
	default:
		return "unknown"
	}
}

// Length is a resolved CSS-like dimension. The numeric Value is meaningful
// only for the measured units; for auto/min-content/max-content it is zero.
type Length struct {
	Unit  Unit
	Value float64
}

// Shorthand constructors for the measured units.
func Px(v float64) Length      { return Length{Unit: UnitPx, Value: v} }
func Percent(v float64) Length { return Length{Unit: UnitPercent, Value: v} }
func Rem(v float64) Length     { return Length{Unit: UnitRem, Value: v} }
func Em(v float64) Length      { return Length{Unit: UnitEm, Value: v} }
func Vh(v float64) Length      { return Length{Unit: UnitVh, Value: v} }
func Vw(v float64) Length      { return Length{Unit: UnitVw, Value: v} }

// Auto is the keyword form used when no measure applies.
func Auto() Length { return Length{Unit: UnitAuto} }

// String returns the CSS spelling of the length.
func (l Length) String() string {
	switch l.Unit {
	case UnitAuto, UnitMinContent, UnitMaxContent:
		return l.Unit.String()
	default:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
	}
}

// MarshalJSON follows the wire schema of the node/style model: pixels are a
// bare number, keywords are strings, everything else is a single-key object
// keyed by unit name.
func (l Length) MarshalJSON() ([]byte, error) {
	switch l.Unit {
	case UnitPx:
		return json.Marshal(l.Value)
	case UnitAuto:
		return json.Marshal("auto")
	case UnitMinContent:
		return json.Marshal("min-content")
	case UnitMaxContent:
		return json.Marshal("max-content")
	case UnitPercent:
		return json.Marshal(map[string]float64{"percentage": l.Value})
	default:
		return json.Marshal(map[string]float64{l.Unit.String(): l.Value})
	}
}

// ParseLength converts a raw style value into a Length. Numbers are raw
// pixels; strings are a signed decimal with an optional unit suffix, or one
// of the keywords auto, min-content, max-content, fit-content.
//
// The parser is permissive: an unrecognized unit keeps the numeric magnitude
// as pixels, and a string with no leading number yields Px(0). Both cases
// still return an ErrInvalidLength diagnostic so the caller can log it; the
// returned Length is always usable.
func ParseLength(v any) (Length, error) {
	if f, ok := toFloat(v); ok {
		return Px(f), nil
	}
	s, ok := v.(string)
	if !ok {
		return Px(0), fmt.Errorf("%w: unsupported value type %T", ErrInvalidLength, v)
	}
	return parseLengthString(s)
}

func parseLengthString(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "auto":
		return Auto(), nil
	case "min-content":
		return Length{Unit: UnitMinContent}, nil
	case "max-content", "fit-content":
		return Length{Unit: UnitMaxContent}, nil
	}

	num, unit := splitNumber(s)
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Px(0), fmt.Errorf("%w: no numeric value in %q", ErrInvalidLength, s)
	}

	switch unit {
	case "", "px":
		return Px(f), nil
	case "%":
		return Percent(f), nil
	case "rem":
		return Rem(f), nil
	case "em":
		return Em(f), nil
	case "vh":
		return Vh(f), nil
	case "vw":
		return Vw(f), nil
	default:
		// keep the magnitude, treat as pixels
		return Px(f), fmt.Errorf("%w: unrecognized unit %q in %q", ErrInvalidLength, unit, s)
	}
}

// splitNumber cuts s into its leading signed decimal and the trailing unit.
func splitNumber(s string) (num, unit string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' || c == '.' || (i == 0 && (c == '-' || c == '+')) {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

// toFloat coerces the numeric types JSON and YAML decoders produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Sides holds a value for each box edge. The canonical wire form collapses
// to a single value when all four edges agree, see MarshalJSON.
type Sides struct {
	Top    Length
	Right  Length
	Bottom Length
	Left   Length
}

// UniformSides returns a Sides with the same value on every edge.
func UniformSides(l Length) Sides {
	return Sides{Top: l, Right: l, Bottom: l, Left: l}
}

// Uniform reports whether all four edges carry the same value.
func (s Sides) Uniform() bool {
	return s.Top == s.Right && s.Top == s.Bottom && s.Top == s.Left
}

// MarshalJSON emits the single-value form when all edges are equal,
// otherwise the [top, right, bottom, left] quad. Collapsing is required for
// output stability: equal edges must always serialize identically no matter
// how they were spelled by the author.
func (s Sides) MarshalJSON() ([]byte, error) {
	if s.Uniform() {
		return json.Marshal(s.Top)
	}
	return json.Marshal([4]Length{s.Top, s.Right, s.Bottom, s.Left})
}

// ExpandSides applies the CSS shorthand rule to 1-4 values:
// one value sets all edges, two set [vertical, horizontal], three set
// [top, horizontal, bottom], four are top/right/bottom/left verbatim.
func ExpandSides(values []Length) (Sides, error) {
	switch len(values) {
	case 1:
		return UniformSides(values[0]), nil
	case 2:
		return Sides{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 3:
		return Sides{Top: values[0], Right: values[1], Bottom: values[2], Left: values[1]}, nil
	case 4:
		return Sides{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	default:
		return Sides{}, fmt.Errorf("%w: %d values", ErrInvalidSidesCount, len(values))
	}
}

// Gap is the spacing between rows and columns of a flex or grid container.
type Gap struct {
	Row    Length `json:"row"`
	Column Length `json:"column"`
}
