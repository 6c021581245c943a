package style

import (
	"fmt"
	"strings"
)

// BoxShadow describes one shadow layer.
type BoxShadow struct {
	Color        Color  `json:"color"`
	OffsetX      Length `json:"offset_x"`
	OffsetY      Length `json:"offset_y"`
	BlurRadius   Length `json:"blur_radius"`
	SpreadRadius Length `json:"spread_radius"`
	Inset        bool   `json:"inset,omitempty"`
}

// ParseBoxShadows parses a comma separated list of shadow layers.
func ParseBoxShadows(s string) ([]BoxShadow, error) {
	var shadows []BoxShadow
	for _, layer := range splitArgs(s) {
		shadow, err := ParseBoxShadow(layer)
		if err != nil {
			return nil, err
		}
		shadows = append(shadows, shadow)
	}
	if len(shadows) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidBoxShadow)
	}
	return shadows, nil
}

// ParseBoxShadow parses "[inset] <len> <len> [<len> [<len>]] [<color>]".
// The two mandatory lengths are the x and y offsets; the optional third and
// fourth are blur and spread radius, both defaulting to zero. A trailing
// color token is recognized heuristically; when absent the shadow is black.
func ParseBoxShadow(s string) (BoxShadow, error) {
	tokens := splitFields(s)
	shadow := BoxShadow{Color: Black()}

	if len(tokens) > 0 && strings.EqualFold(tokens[0], "inset") {
		shadow.Inset = true
		tokens = tokens[1:]
	}

	if n := len(tokens); n > 0 && isColorToken(tokens[n-1]) {
		c, err := ParseColor(tokens[n-1])
		if err != nil {
			return BoxShadow{}, fmt.Errorf("%w: %w", ErrInvalidBoxShadow, err)
		}
		shadow.Color = c
		tokens = tokens[:n-1]
	}

	if len(tokens) < 2 || len(tokens) > 4 {
		return BoxShadow{}, fmt.Errorf("%w: expected 2 to 4 lengths, got %d", ErrInvalidBoxShadow, len(tokens))
	}

	lengths := make([]Length, len(tokens))
	for i, tok := range tokens {
		l, err := ParseLength(tok)
		if err != nil {
			return BoxShadow{}, fmt.Errorf("%w: bad length %q", ErrInvalidBoxShadow, tok)
		}
		lengths[i] = l
	}

	shadow.OffsetX = lengths[0]
	shadow.OffsetY = lengths[1]
	shadow.BlurRadius = Px(0)
	shadow.SpreadRadius = Px(0)
	if len(lengths) > 2 {
		shadow.BlurRadius = lengths[2]
	}
	if len(lengths) > 3 {
		shadow.SpreadRadius = lengths[3]
	}
	return shadow, nil
}

// isColorToken reports whether the trailing token of a shadow looks like a
// color: hex, a color function, or a bare identifier (named color).
func isColorToken(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '#' {
		return true
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb") || strings.HasPrefix(lower, "hsl") {
		return true
	}
	// bare identifier; lengths always start with a digit, sign or dot
	c := lower[0]
	return c >= 'a' && c <= 'z'
}
