package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Keyword properties fall back to their defaults on unknown input. The parse
// functions still return a diagnostic so the resolver can log what it fixed
// up.

// Display selects the layout algorithm of a container.
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayGrid
	DisplayBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayGrid:
		return "grid"
	case DisplayBlock:
		return "block"
	case DisplayNone:
		return "none"
	default:
		return "flex"
	}
}

func ParseDisplay(s string) (Display, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flex":
		return DisplayFlex, nil
	case "grid":
		return DisplayGrid, nil
	case "block":
		return DisplayBlock, nil
	case "none":
		return DisplayNone, nil
	}
	return DisplayFlex, fmt.Errorf("unknown display %q", s)
}

// Position selects between flow-relative and absolute placement. "static" is
// accepted as a spelling of relative since nothing here scrolls or floats.
type Position uint8

const (
	PositionRelative Position = iota
	PositionAbsolute
)

func (p Position) String() string {
	if p == PositionAbsolute {
		return "absolute"
	}
	return "relative"
}

func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relative", "static":
		return PositionRelative, nil
	case "absolute":
		return PositionAbsolute, nil
	}
	return PositionRelative, fmt.Errorf("unknown position %q", s)
}

// TextOverflow controls how clipped text ends.
type TextOverflow uint8

const (
	TextOverflowClip TextOverflow = iota
	TextOverflowEllipsis
)

func (t TextOverflow) String() string {
	if t == TextOverflowEllipsis {
		return "ellipsis"
	}
	return "clip"
}

func ParseTextOverflow(s string) (TextOverflow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clip":
		return TextOverflowClip, nil
	case "ellipsis":
		return TextOverflowEllipsis, nil
	}
	return TextOverflowClip, fmt.Errorf("unknown text-overflow %q", s)
}

// GridAutoFlow controls the auto-placement direction of grid items.
type GridAutoFlow uint8

const (
	GridAutoFlowRow GridAutoFlow = iota
	GridAutoFlowColumn
	GridAutoFlowRowDense
	GridAutoFlowColumnDense
)

func (g GridAutoFlow) String() string {
	switch g {
	case GridAutoFlowColumn:
		return "column"
	case GridAutoFlowRowDense:
		return "row dense"
	case GridAutoFlowColumnDense:
		return "column dense"
	default:
		return "row"
	}
}

func ParseGridAutoFlow(s string) (GridAutoFlow, error) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "row":
		return GridAutoFlowRow, nil
	case "column":
		return GridAutoFlowColumn, nil
	case "dense", "row dense", "dense row":
		return GridAutoFlowRowDense, nil
	case "column dense", "dense column":
		return GridAutoFlowColumnDense, nil
	}
	return GridAutoFlowRow, fmt.Errorf("unknown grid-auto-flow %q", s)
}

// TextAlign controls horizontal alignment of inline content.
type TextAlign uint8

const (
	TextAlignStart TextAlign = iota
	TextAlignEnd
	TextAlignLeft
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
)

func (t TextAlign) String() string {
	switch t {
	case TextAlignEnd:
		return "end"
	case TextAlignLeft:
		return "left"
	case TextAlignRight:
		return "right"
	case TextAlignCenter:
		return "center"
	case TextAlignJustify:
		return "justify"
	default:
		return "start"
	}
}

func ParseTextAlign(s string) (TextAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return TextAlignStart, nil
	case "end":
		return TextAlignEnd, nil
	case "left":
		return TextAlignLeft, nil
	case "right":
		return TextAlignRight, nil
	case "center":
		return TextAlignCenter, nil
	case "justify":
		return TextAlignJustify, nil
	}
	return TextAlignStart, fmt.Errorf("unknown text-align %q", s)
}

// ObjectFit controls how a replaced element fills its box.
type ObjectFit uint8

const (
	ObjectFitFill ObjectFit = iota
	ObjectFitContain
	ObjectFitCover
	ObjectFitScaleDown
	ObjectFitNone
)

func (o ObjectFit) String() string {
	switch o {
	case ObjectFitContain:
		return "contain"
	case ObjectFitCover:
		return "cover"
	case ObjectFitScaleDown:
		return "scale-down"
	case ObjectFitNone:
		return "none"
	default:
		return "fill"
	}
}

func ParseObjectFit(s string) (ObjectFit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill":
		return ObjectFitFill, nil
	case "contain":
		return ObjectFitContain, nil
	case "cover":
		return ObjectFitCover, nil
	case "scale-down":
		return ObjectFitScaleDown, nil
	case "none":
		return ObjectFitNone, nil
	}
	return ObjectFitFill, fmt.Errorf("unknown object-fit %q", s)
}

// FlexDirection controls the main axis of a flex container.
type FlexDirection uint8

const (
	FlexRow FlexDirection = iota
	FlexColumn
	FlexRowReverse
	FlexColumnReverse
)

func (f FlexDirection) String() string {
	switch f {
	case FlexColumn:
		return "column"
	case FlexRowReverse:
		return "row-reverse"
	case FlexColumnReverse:
		return "column-reverse"
	default:
		return "row"
	}
}

func ParseFlexDirection(s string) (FlexDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row":
		return FlexRow, nil
	case "column":
		return FlexColumn, nil
	case "row-reverse":
		return FlexRowReverse, nil
	case "column-reverse":
		return FlexColumnReverse, nil
	}
	return FlexRow, fmt.Errorf("unknown flex-direction %q", s)
}

// FlexWrap controls line wrapping of a flex container.
type FlexWrap uint8

const (
	FlexNoWrap FlexWrap = iota
	FlexWrapWrap
	FlexWrapReverse
)

func (f FlexWrap) String() string {
	switch f {
	case FlexWrapWrap:
		return "wrap"
	case FlexWrapReverse:
		return "wrap-reverse"
	default:
		return "nowrap"
	}
}

func ParseFlexWrap(s string) (FlexWrap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nowrap":
		return FlexNoWrap, nil
	case "wrap":
		return FlexWrapWrap, nil
	case "wrap-reverse":
		return FlexWrapReverse, nil
	}
	return FlexNoWrap, fmt.Errorf("unknown flex-wrap %q", s)
}

// FontWeight is the numeric weight, clamped into [1, 1000].
type FontWeight uint16

const (
	WeightNormal FontWeight = 400
	WeightBold   FontWeight = 700
)

// ParseFontWeight accepts numbers (clamped into range), the CSS weight
// keywords, and numeric strings. Unknown input falls back to normal with a
// diagnostic.
func ParseFontWeight(v any) (FontWeight, error) {
	if f, ok := toFloat(v); ok {
		return clampWeight(f), nil
	}
	s, ok := v.(string)
	if !ok {
		return WeightNormal, fmt.Errorf("unsupported font-weight type %T", v)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return WeightNormal, nil
	case "bold":
		return WeightBold, nil
	case "lighter":
		return 300, nil
	case "bolder":
		return 600, nil
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return clampWeight(f), nil
	}
	return WeightNormal, fmt.Errorf("unknown font-weight %q", s)
}

func clampWeight(f float64) FontWeight {
	if f < 1 {
		return 1
	}
	if f > 1000 {
		return 1000
	}
	return FontWeight(math.Round(f))
}

// ParseAspectRatio accepts a positive number, a numeric string or the "W/H"
// form with both terms positive. Parsing is strict; there is no sensible
// fallback ratio.
func ParseAspectRatio(v any) (float64, error) {
	if f, ok := toFloat(v); ok {
		return checkRatio(f)
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidAspectRatio, v)
	}

	parts := splitTopLevel(s, func(r rune) bool { return r == '/' })
	switch len(parts) {
	case 1:
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s)
		}
		return checkRatio(f)
	case 2:
		w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errW != nil || errH != nil || w <= 0 || h <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s)
		}
		return checkRatio(w / h)
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s)
	}
}

func checkRatio(f float64) (float64, error) {
	if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: ratio must be positive and finite, got %v", ErrInvalidAspectRatio, f)
	}
	return f, nil
}
