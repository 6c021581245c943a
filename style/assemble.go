package style

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Bag is the resolved style of one node: canonical snake_case property names
// mapped to typed values. An empty style is a nil Bag, never an empty map.
type Bag map[string]any

// Resolver turns raw author-facing style maps into Bags. Permissive
// properties fall back to a usable default and the fixup is logged at Debug;
// strict properties fail and their failures are aggregated into the returned
// error.
type Resolver struct {
	log *zap.Logger
}

// NewResolver returns a Resolver logging through log, which may be nil.
func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log.Named("style")}
}

// policy decides what a parse error means for the property.
type policy uint8

const (
	permissive policy = iota // keep the fallback value, log the diagnostic
	strict                   // drop the property, report the error
)

type property struct {
	parse  func(r *Resolver, v any) (any, error)
	policy policy
}

// sideGroup ties a shorthand property to its four per-edge override keys in
// top, right, bottom, left order.
type sideGroup struct {
	base  string
	edges [4]string
}

var sideGroups = []sideGroup{
	{base: "inset", edges: [4]string{"top", "right", "bottom", "left"}},
	{base: "padding", edges: [4]string{"padding_top", "padding_right", "padding_bottom", "padding_left"}},
	{base: "margin", edges: [4]string{"margin_top", "margin_right", "margin_bottom", "margin_left"}},
	{base: "border_radius", edges: [4]string{"border_radius_top", "border_radius_right", "border_radius_bottom", "border_radius_left"}},
}

var properties = map[string]property{
	"width":          {parse: parseLengthProp},
	"height":         {parse: parseLengthProp},
	"min_width":      {parse: parseLengthProp},
	"min_height":     {parse: parseLengthProp},
	"max_width":      {parse: parseLengthProp},
	"max_height":     {parse: parseLengthProp},
	"flex_basis":     {parse: parseLengthProp},
	"font_size":      {parse: parseLengthProp},
	"line_height":    {parse: parseLengthProp},
	"letter_spacing": {parse: parseLengthProp},

	"gap":          {parse: parseGapProp, policy: strict},
	"aspect_ratio": {parse: parseAspectRatioProp, policy: strict},

	"flex_grow":   {parse: numberProp(0)},
	"flex_shrink": {parse: numberProp(1)},
	"opacity":     {parse: numberProp(1)},
	"line_clamp":  {parse: numberProp(0)},

	"display":        {parse: keywordProp(ParseDisplay)},
	"position":       {parse: keywordProp(ParsePosition)},
	"text_overflow":  {parse: keywordProp(ParseTextOverflow)},
	"text_align":     {parse: keywordProp(ParseTextAlign)},
	"flex_direction": {parse: keywordProp(ParseFlexDirection)},
	"flex_wrap":      {parse: keywordProp(ParseFlexWrap)},
	"object_fit":     {parse: keywordProp(ParseObjectFit)},
	"grid_auto_flow": {parse: keywordProp(ParseGridAutoFlow)},
	"font_weight":    {parse: parseFontWeightProp},

	"color":            {parse: parseColorProp, policy: strict},
	"background_color": {parse: parseColorProp, policy: strict},
	"border_color":     {parse: parseColorProp, policy: strict},

	"background_image": {parse: parseBackgroundImageProp, policy: strict},
	"box_shadow":       {parse: parseBoxShadowProp, policy: strict},
	"border_width":     {parse: parseBorderWidthProp, policy: strict},

	"grid_template_columns": {parse: parseTrackListProp, policy: strict},
	"grid_template_rows":    {parse: parseTrackListProp, policy: strict},
	"grid_auto_columns":     {parse: parseAutoTracksProp, policy: strict},
	"grid_auto_rows":        {parse: parseAutoTracksProp, policy: strict},
	"grid_column":           {parse: parseGridLineProp, policy: permissive},
	"grid_row":              {parse: parseGridLineProp, policy: permissive},
}

// edgeKeys maps every per-edge override key to its group and edge index.
var edgeKeys = func() map[string]struct {
	group int
	edge  int
} {
	m := make(map[string]struct {
		group int
		edge  int
	})
	for gi, g := range sideGroups {
		for ei, key := range g.edges {
			m[key] = struct {
				group int
				edge  int
			}{gi, ei}
		}
	}
	return m
}()

// Resolve converts a raw style map into a canonical Bag. Unknown property
// names are skipped with a diagnostic; unknown names behind a vendor prefix
// and strict parse failures are errors, aggregated per property. A result
// with no resolved properties is nil.
func (r *Resolver) Resolve(input map[string]any) (Bag, error) {
	if len(input) == 0 {
		return nil, nil
	}

	var errs error
	canon := make(map[string]any, len(input))
	for name, v := range input {
		key, prefixed := canonicalName(name)
		if _, known := properties[key]; !known {
			if _, isGroup := groupIndex(key); !isGroup {
				if _, isEdge := edgeKeys[key]; !isEdge {
					if prefixed {
						errs = multierr.Append(errs, fmt.Errorf("unrecognized vendor-prefixed property %q", name))
					} else {
						r.log.Debug("skipping unknown property", zap.String("name", name))
					}
					continue
				}
			}
		}
		if s, ok := v.(string); ok && isGlobalKeyword(s) {
			r.log.Debug("dropping global keyword value", zap.String("name", key), zap.String("value", s))
			continue
		}
		canon[key] = v
	}

	out := Bag{}

	for _, g := range sideGroups {
		sides, ok, err := r.resolveSideGroup(canon, g)
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		if ok {
			out[g.base] = sides
		}
		delete(canon, g.base)
		for _, key := range g.edges {
			delete(canon, key)
		}
	}

	for key, v := range canon {
		prop := properties[key]
		val, err := prop.parse(r, v)
		if err != nil {
			if prop.policy == strict {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
				continue
			}
			r.log.Debug("permissive fallback", zap.String("name", key), zap.Error(err))
		}
		out[key] = val
	}

	if len(out) == 0 {
		return nil, errs
	}
	return out, errs
}

// resolveSideGroup combines a shorthand base with its per-edge overrides.
// Overrides win over the base; with overrides only, missing edges are zero.
func (r *Resolver) resolveSideGroup(canon map[string]any, g sideGroup) (Sides, bool, error) {
	base, hasBase := canon[g.base]

	var present [4]bool
	var overrides [4]Length
	anyEdge := false
	for i, key := range g.edges {
		v, ok := canon[key]
		if !ok {
			continue
		}
		l, err := ParseLength(v)
		if err != nil {
			r.log.Debug("permissive fallback", zap.String("name", key), zap.Error(err))
		}
		overrides[i], present[i] = l, true
		anyEdge = true
	}

	if !hasBase && !anyEdge {
		return Sides{}, false, nil
	}

	sides := UniformSides(Px(0))
	if hasBase {
		s, err := r.parseSidesValue(base)
		if err != nil {
			return Sides{}, false, fmt.Errorf("%s: %w", g.base, err)
		}
		sides = s
	}

	if present[0] {
		sides.Top = overrides[0]
	}
	if present[1] {
		sides.Right = overrides[1]
	}
	if present[2] {
		sides.Bottom = overrides[2]
	}
	if present[3] {
		sides.Left = overrides[3]
	}
	return sides, true, nil
}

// parseSidesValue parses a shorthand base value: a bare number applies to
// all edges, a string holds 1 to 4 whitespace-separated lengths, a list
// holds 1 to 4 length values.
func (r *Resolver) parseSidesValue(v any) (Sides, error) {
	if f, ok := toFloat(v); ok {
		return UniformSides(Px(f)), nil
	}

	var raw []any
	switch t := v.(type) {
	case string:
		for _, field := range splitFields(t) {
			raw = append(raw, field)
		}
	case []any:
		raw = t
	default:
		return Sides{}, fmt.Errorf("%w: unsupported value type %T", ErrInvalidSidesCount, v)
	}

	lengths := make([]Length, len(raw))
	for i, item := range raw {
		l, err := ParseLength(item)
		if err != nil {
			r.log.Debug("permissive fallback", zap.Error(err))
		}
		lengths[i] = l
	}
	return ExpandSides(lengths)
}

func parseLengthProp(r *Resolver, v any) (any, error) {
	l, err := ParseLength(v)
	return l, err
}

func parseGapProp(r *Resolver, v any) (any, error) {
	if f, ok := toFloat(v); ok {
		return Gap{Row: Px(f), Column: Px(f)}, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported gap type %T", ErrInvalidSidesCount, v)
	}
	fields := splitFields(s)
	switch len(fields) {
	case 1:
		l, err := ParseLength(fields[0])
		if err != nil {
			r.log.Debug("permissive fallback", zap.String("name", "gap"), zap.Error(err))
		}
		return Gap{Row: l, Column: l}, nil
	case 2:
		row, err := ParseLength(fields[0])
		if err != nil {
			r.log.Debug("permissive fallback", zap.String("name", "gap"), zap.Error(err))
		}
		col, err := ParseLength(fields[1])
		if err != nil {
			r.log.Debug("permissive fallback", zap.String("name", "gap"), zap.Error(err))
		}
		return Gap{Row: row, Column: col}, nil
	default:
		return nil, fmt.Errorf("%w: gap takes 1 or 2 values, got %d", ErrInvalidSidesCount, len(fields))
	}
}

func parseAspectRatioProp(_ *Resolver, v any) (any, error) {
	return ParseAspectRatio(v)
}

// numberProp builds a permissive numeric handler with a fallback default.
func numberProp(def float64) func(*Resolver, any) (any, error) {
	return func(_ *Resolver, v any) (any, error) {
		if f, ok := toFloat(v); ok {
			return f, nil
		}
		if s, ok := v.(string); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f, nil
			}
		}
		return def, fmt.Errorf("not a number: %v", v)
	}
}

// keywordProp adapts a typed keyword parser to the property table.
func keywordProp[T any](parse func(string) (T, error)) func(*Resolver, any) (any, error) {
	return func(_ *Resolver, v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		val, err := parse(s)
		return val, err
	}
}

func parseFontWeightProp(_ *Resolver, v any) (any, error) {
	w, err := ParseFontWeight(v)
	return w, err
}

// parseColorProp accepts strings through the color grammar and values that
// already match the wire shape: a bare number is a packed color, a 4-element
// list is [r, g, b, a].
func parseColorProp(_ *Resolver, v any) (any, error) {
	if s, ok := v.(string); ok {
		return ParseColor(s)
	}
	if f, ok := toFloat(v); ok {
		if f < 0 || f > 0xffffff {
			return nil, fmt.Errorf("%w: packed value %v out of range [0, 0xffffff]", ErrInvalidColorComponent, f)
		}
		return PackedColor(uint32(f)), nil
	}
	if list, ok := v.([]any); ok && len(list) == 4 {
		var comp [4]float64
		for i, item := range list {
			f, ok := toFloat(item)
			if !ok {
				return nil, fmt.Errorf("%w: component %v", ErrInvalidColorComponent, item)
			}
			comp[i] = f
		}
		for _, c := range comp[:3] {
			if c < 0 || c > 255 {
				return nil, fmt.Errorf("%w: %v out of range [0, 255]", ErrInvalidColorComponent, c)
			}
		}
		if comp[3] < 0 || comp[3] > 1 {
			return nil, fmt.Errorf("%w: alpha %v out of range [0, 1]", ErrInvalidColorComponent, comp[3])
		}
		return ComponentColor(uint8(comp[0]), uint8(comp[1]), uint8(comp[2]), comp[3]), nil
	}
	return nil, fmt.Errorf("%w: unsupported value type %T", ErrUnsupportedColorFormat, v)
}

// parseBackgroundImageProp parses gradient strings; structured values pass
// through untouched.
func parseBackgroundImageProp(_ *Resolver, v any) (any, error) {
	if s, ok := v.(string); ok {
		return ParseGradient(s)
	}
	return v, nil
}

func parseBoxShadowProp(_ *Resolver, v any) (any, error) {
	if s, ok := v.(string); ok {
		return ParseBoxShadows(s)
	}
	return v, nil
}

func parseBorderWidthProp(r *Resolver, v any) (any, error) {
	return r.parseSidesValue(v)
}

func parseTrackListProp(_ *Resolver, v any) (any, error) {
	if s, ok := v.(string); ok {
		return ParseTrackList(s)
	}
	return v, nil
}

func parseAutoTracksProp(_ *Resolver, v any) (any, error) {
	if s, ok := v.(string); ok {
		return ParseAutoTracks(s)
	}
	return v, nil
}

func parseGridLineProp(_ *Resolver, v any) (any, error) {
	p, err := ParseGridLine(v)
	return p, err
}

func groupIndex(key string) (int, bool) {
	for i, g := range sideGroups {
		if g.base == key {
			return i, true
		}
	}
	return 0, false
}

func isGlobalKeyword(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inherit", "initial", "revert", "unset":
		return true
	}
	return false
}

var vendorPrefixes = []string{"-webkit-", "-moz-", "-o-", "-ms-"}

// canonicalName normalizes an author-facing property name to its snake_case
// canonical form and reports whether a vendor prefix was stripped. camelCase,
// kebab-case and space-separated spellings all normalize to the same key.
func canonicalName(name string) (key string, prefixed bool) {
	name = strings.TrimSpace(name)
	for _, p := range vendorPrefixes {
		if strings.HasPrefix(strings.ToLower(name), p) {
			name = name[len(p):]
			prefixed = true
			break
		}
	}

	var sb strings.Builder
	var prev rune
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			if prev != 0 && prev != '_' {
				sb.WriteByte('_')
			}
			sb.WriteRune(r - 'A' + 'a')
		case r == '-' || r == ' ':
			if prev != '_' && prev != 0 {
				sb.WriteByte('_')
			}
			r = '_'
		default:
			sb.WriteRune(r)
		}
		prev = r
	}
	return strings.Trim(sb.String(), "_"), prefixed
}
