package style

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// GradientStop is a color at a position along the gradient axis, position
// always in [0, 1] after resolution.
type GradientStop struct {
	Color    Color   `json:"color"`
	Position float64 `json:"position"`
}

// Gradient is a resolved linear gradient: an angle in degrees, [0, 360),
// and at least two stops sorted ascending by position with no two adjacent
// stops sharing a position.
type Gradient struct {
	Angle float64        `json:"angle"`
	Stops []GradientStop `json:"stops"`
}

// rawStop keeps the author's position (if any) before resolution.
type rawStop struct {
	color  Color
	pos    float64
	hasPos bool
}

// ParseGradient parses linear-gradient(<angle-or-direction>?, <stop>, ...).
// Arguments are split at top level only so that a nested rgb() inside a stop
// survives intact. The default direction is "to bottom" (180 degrees).
func ParseGradient(s string) (Gradient, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(s), "linear-gradient(") || !strings.HasSuffix(s, ")") {
		return Gradient{}, fmt.Errorf("%w: %q is not a linear-gradient()", ErrInvalidGradientSyntax, s)
	}
	args := splitArgs(s[len("linear-gradient(") : len(s)-1])
	if len(args) == 0 {
		return Gradient{}, fmt.Errorf("%w: empty argument list", ErrInvalidGradientSyntax)
	}

	angle := 180.0
	first := splitFields(args[0])
	switch {
	case len(first) > 0 && strings.EqualFold(first[0], "to"):
		a, err := directionAngle(first[1:])
		if err != nil {
			return Gradient{}, err
		}
		angle = a
		args = args[1:]
	case len(first) == 1:
		if a, ok := parseAngle(first[0]); ok {
			angle = a
			args = args[1:]
		}
	}

	var stops []rawStop
	for _, arg := range args {
		stop, err := parseStop(arg)
		if err != nil {
			return Gradient{}, err
		}
		stops = append(stops, stop)
	}
	if len(stops) < 2 {
		return Gradient{}, fmt.Errorf("%w: got %d, need at least 2", ErrInsufficientGradientStops, len(stops))
	}

	return Gradient{Angle: wrapAngle(angle), Stops: resolveStops(stops)}, nil
}

// parseStop parses "<color> <position>?" where position is either NN% or a
// unitless fraction.
func parseStop(s string) (rawStop, error) {
	fields := splitFields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return rawStop{}, fmt.Errorf("%w: malformed stop %q", ErrInvalidGradientSyntax, s)
	}
	c, err := ParseColor(fields[0])
	if err != nil {
		return rawStop{}, err
	}
	stop := rawStop{color: c}
	if len(fields) == 2 {
		pos, ok := parseStopPosition(fields[1])
		if !ok {
			return rawStop{}, fmt.Errorf("%w: bad stop position %q", ErrInvalidGradientSyntax, fields[1])
		}
		stop.pos, stop.hasPos = pos, true
	}
	return stop, nil
}

func parseStopPosition(s string) (float64, bool) {
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return f / 100, err == nil
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// resolveStops turns author stops into the canonical sorted form.
//
// Without any explicit position the stops are distributed evenly over
// [0, 1]. As soon as one position is explicit, the first stop is forced to 0
// and the last to 1, explicit interior positions are clamped to [0, 1], and
// interior stops without a position are interpolated linearly between their
// nearest positioned neighbors. Finally the stops are sorted ascending and
// adjacent duplicates are dropped, first occurrence winning.
func resolveStops(raw []rawStop) []GradientStop {
	n := len(raw)
	stops := make([]GradientStop, n)

	anyExplicit := false
	for _, r := range raw {
		if r.hasPos {
			anyExplicit = true
			break
		}
	}

	if !anyExplicit {
		for i, r := range raw {
			pos := 0.0
			if n > 1 {
				pos = float64(i) / float64(n-1)
			}
			stops[i] = GradientStop{Color: r.color, Position: pos}
		}
		return stops
	}

	known := make([]bool, n)
	for i, r := range raw {
		stops[i].Color = r.color
		if r.hasPos {
			stops[i].Position = math.Min(1, math.Max(0, r.pos))
			known[i] = true
		}
	}
	// endpoints are pinned even when the author said otherwise
	stops[0].Position, known[0] = 0, true
	stops[n-1].Position, known[n-1] = 1, true

	for i := 1; i < n-1; i++ {
		if known[i] {
			continue
		}
		prev := i - 1
		next := i + 1
		for !known[next] {
			next++
		}
		t := float64(i-prev) / float64(next-prev)
		stops[i].Position = stops[prev].Position + t*(stops[next].Position-stops[prev].Position)
		known[i] = true
	}

	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Position < stops[j].Position })

	deduped := stops[:1]
	for _, s := range stops[1:] {
		if s.Position == deduped[len(deduped)-1].Position {
			continue
		}
		deduped = append(deduped, s)
	}
	return deduped
}

// directionAngle maps "to <side> [<side>]" onto the eight canonical angles.
func directionAngle(sides []string) (float64, error) {
	var vertical, horizontal string
	for _, side := range sides {
		switch strings.ToLower(side) {
		case "top", "bottom":
			if vertical != "" {
				return 0, fmt.Errorf("%w: duplicate vertical keyword %q", ErrInvalidGradientSyntax, side)
			}
			vertical = strings.ToLower(side)
		case "left", "right":
			if horizontal != "" {
				return 0, fmt.Errorf("%w: duplicate horizontal keyword %q", ErrInvalidGradientSyntax, side)
			}
			horizontal = strings.ToLower(side)
		default:
			return 0, fmt.Errorf("%w: unknown direction keyword %q", ErrInvalidGradientSyntax, side)
		}
	}

	switch {
	case vertical == "" && horizontal == "":
		return 0, fmt.Errorf("%w: missing direction after \"to\"", ErrInvalidGradientSyntax)
	case horizontal == "":
		if vertical == "top" {
			return 0, nil
		}
		return 180, nil
	case vertical == "":
		if horizontal == "right" {
			return 90, nil
		}
		return 270, nil
	}

	switch vertical + "-" + horizontal {
	case "top-right":
		return 45, nil
	case "bottom-right":
		return 135, nil
	case "bottom-left":
		return 225, nil
	default: // top-left
		return 315, nil
	}
}

// parseAngle recognizes a bare number (degrees) or a number with a
// deg/grad/rad/turn suffix and converts it to degrees.
func parseAngle(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	factor := 1.0
	switch {
	case strings.HasSuffix(s, "deg"):
		s = strings.TrimSuffix(s, "deg")
	case strings.HasSuffix(s, "grad"):
		s = strings.TrimSuffix(s, "grad")
		factor = 360.0 / 400.0
	case strings.HasSuffix(s, "rad"):
		s = strings.TrimSuffix(s, "rad")
		factor = 180.0 / math.Pi
	case strings.HasSuffix(s, "turn"):
		s = strings.TrimSuffix(s, "turn")
		factor = 360.0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f * factor, true
}

// wrapAngle normalizes degrees into [0, 360).
func wrapAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
