package style

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TrackKind selects between the two sizing modes of a grid track.
type TrackKind uint8

const (
	TrackFixed TrackKind = iota
	TrackFraction
)

// TrackSize is either a fixed Length or a flexible fraction of free space.
type TrackSize struct {
	Kind     TrackKind
	Fixed    Length
	Fraction float64
}

// FixedTrack returns a track sized by a length.
func FixedTrack(l Length) TrackSize { return TrackSize{Kind: TrackFixed, Fixed: l} }

// FractionTrack returns an Nfr track.
func FractionTrack(fr float64) TrackSize { return TrackSize{Kind: TrackFraction, Fraction: fr} }

// MarshalJSON emits fractions as {"fr": n} and fixed tracks as their Length.
func (t TrackSize) MarshalJSON() ([]byte, error) {
	if t.Kind == TrackFraction {
		return json.Marshal(map[string]float64{"fr": t.Fraction})
	}
	return json.Marshal(t.Fixed)
}

// NamedTrack is a track size with the line names declared before it.
type NamedTrack struct {
	Size  TrackSize `json:"size"`
	Names []string  `json:"names,omitempty"`
}

// RepeatKind selects between a literal repetition count and the auto modes.
type RepeatKind uint8

const (
	RepeatCount RepeatKind = iota
	RepeatAutoFill
	RepeatAutoFit
)

// RepetitionCount is the first argument of repeat().
type RepetitionCount struct {
	Kind  RepeatKind
	Count int
}

// MarshalJSON emits literal counts as numbers and the auto modes as keywords.
func (c RepetitionCount) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case RepeatAutoFill:
		return json.Marshal("auto-fill")
	case RepeatAutoFit:
		return json.Marshal("auto-fit")
	default:
		return json.Marshal(c.Count)
	}
}

// TrackRepeat is a repeat(count, tracks) group.
type TrackRepeat struct {
	Count  RepetitionCount `json:"count"`
	Tracks []NamedTrack    `json:"tracks"`
}

// TemplateComponent is one entry of a grid-template track list. Exactly one
// of the fields is set.
type TemplateComponent struct {
	Single *TrackSize   `json:"single,omitempty"`
	Repeat *TrackRepeat `json:"repeat,omitempty"`
}

// ParseTrackList parses a grid-template-rows/columns value: a whitespace
// separated sequence of track sizes, [line names] groups and repeat()
// functions. Line names preceding a track attach to that track; a trailing
// name group with no following track is dropped. Nested repeat() is
// rejected.
func ParseTrackList(s string) ([]TemplateComponent, error) {
	tracks, err := parseTracks(s, true)
	if err != nil {
		return nil, err
	}
	var components []TemplateComponent
	for _, t := range tracks {
		if t.repeat != nil {
			components = append(components, TemplateComponent{Repeat: t.repeat})
			continue
		}
		if len(t.track.Names) > 0 {
			// a named single track has no direct wire form; a
			// one-repetition group carries the names instead
			components = append(components, TemplateComponent{Repeat: &TrackRepeat{
				Count:  RepetitionCount{Kind: RepeatCount, Count: 1},
				Tracks: []NamedTrack{t.track},
			}})
			continue
		}
		size := t.track.Size
		components = append(components, TemplateComponent{Single: &size})
	}
	return components, nil
}

// ParseAutoTracks parses grid-auto-rows/columns: plain track sizes only, no
// names and no repeat().
func ParseAutoTracks(s string) ([]TrackSize, error) {
	var sizes []TrackSize
	for _, field := range splitFields(s) {
		size, err := parseTrackSize(field)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// parsedTrack is one entry of a track list before classification: either a
// named track or a repeat group.
type parsedTrack struct {
	track  NamedTrack
	repeat *TrackRepeat
}

func parseTracks(s string, allowRepeat bool) ([]parsedTrack, error) {
	var (
		tracks  []parsedTrack
		pending []string
	)
	for _, field := range splitFields(s) {
		if strings.HasPrefix(field, "[") && strings.HasSuffix(field, "]") {
			pending = append(pending, strings.Fields(field[1:len(field)-1])...)
			continue
		}

		lower := strings.ToLower(field)
		if strings.HasPrefix(lower, "repeat(") && strings.HasSuffix(field, ")") {
			if !allowRepeat {
				return nil, fmt.Errorf("%w: nested repeat()", ErrInvalidRepeatFunction)
			}
			rep, err := parseRepeat(field[len("repeat(") : len(field)-1])
			if err != nil {
				return nil, err
			}
			if len(pending) > 0 && len(rep.Tracks) > 0 {
				rep.Tracks[0].Names = append(pending, rep.Tracks[0].Names...)
				pending = nil
			}
			tracks = append(tracks, parsedTrack{repeat: rep})
			continue
		}

		size, err := parseTrackSize(field)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, parsedTrack{track: NamedTrack{Size: size, Names: pending}})
		pending = nil
	}
	return tracks, nil
}

// parseRepeat parses the argument list of repeat(): a repetition count and a
// track list.
func parseRepeat(args string) (*TrackRepeat, error) {
	parts := splitArgs(args)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: expected 2 arguments, got %d", ErrInvalidRepeatFunction, len(parts))
	}

	count, err := parseRepetitionCount(parts[0])
	if err != nil {
		return nil, err
	}

	inner, err := parseTracks(parts[1], false)
	if err != nil {
		return nil, err
	}
	if len(inner) == 0 {
		return nil, fmt.Errorf("%w: empty track list", ErrInvalidRepeatFunction)
	}
	tracks := make([]NamedTrack, len(inner))
	for i, t := range inner {
		tracks[i] = t.track
	}
	return &TrackRepeat{Count: count, Tracks: tracks}, nil
}

func parseRepetitionCount(s string) (RepetitionCount, error) {
	switch strings.ToLower(s) {
	case "auto-fill":
		return RepetitionCount{Kind: RepeatAutoFill}, nil
	case "auto-fit":
		return RepetitionCount{Kind: RepeatAutoFit}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return RepetitionCount{}, fmt.Errorf("%w: bad repetition count %q", ErrInvalidRepeatFunction, s)
	}
	return RepetitionCount{Kind: RepeatCount, Count: n}, nil
}

// parseTrackSize parses a single track size: Nfr or any length.
func parseTrackSize(s string) (TrackSize, error) {
	lower := strings.ToLower(s)
	if strings.HasSuffix(lower, "fr") {
		fr, err := strconv.ParseFloat(strings.TrimSuffix(lower, "fr"), 64)
		if err == nil {
			return FractionTrack(fr), nil
		}
	}
	l, err := ParseLength(s)
	if err != nil {
		return TrackSize{}, fmt.Errorf("%w: bad track size %q", ErrInvalidRepeatFunction, s)
	}
	return FixedTrack(l), nil
}

// LineKind selects how a grid item references a grid line.
type LineKind uint8

const (
	LineAuto LineKind = iota
	LineIndex
	LineName
)

// LineRef is one end of a grid placement.
type LineRef struct {
	Kind  LineKind
	Index int
	Name  string
	Span  bool
}

// MarshalJSON emits auto as "auto", indexes as numbers ("span n" as the
// string form) and names verbatim.
func (l LineRef) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LineIndex:
		if l.Span {
			return json.Marshal("span " + strconv.Itoa(l.Index))
		}
		return json.Marshal(l.Index)
	case LineName:
		return json.Marshal(l.Name)
	default:
		return json.Marshal("auto")
	}
}

// AutoLine is the placement used when nothing better can be said.
func AutoLine() LineRef { return LineRef{Kind: LineAuto} }

// GridPlacement is a start/end pair of line references.
type GridPlacement struct {
	Start LineRef `json:"start"`
	End   LineRef `json:"end"`
}

// ParseGridLine parses grid-row/grid-column placements. A bare number is the
// start line with an auto end; "a / b" sets both ends; "span n" spans n
// tracks from an auto start; anything unparseable degrades to auto/auto with
// a diagnostic.
func ParseGridLine(v any) (GridPlacement, error) {
	if f, ok := toFloat(v); ok {
		return GridPlacement{Start: LineRef{Kind: LineIndex, Index: int(f)}, End: AutoLine()}, nil
	}
	s, ok := v.(string)
	if !ok {
		return GridPlacement{Start: AutoLine(), End: AutoLine()},
			fmt.Errorf("%w: unsupported placement type %T", ErrInvalidGridPlacement, v)
	}

	parts := splitTopLevel(s, func(r rune) bool { return r == '/' })
	switch len(parts) {
	case 1:
		start, err := parseLineRef(parts[0])
		if err != nil {
			return GridPlacement{Start: AutoLine(), End: AutoLine()}, err
		}
		return GridPlacement{Start: start, End: AutoLine()}, nil
	case 2:
		start, err := parseLineRef(parts[0])
		if err != nil {
			return GridPlacement{Start: AutoLine(), End: AutoLine()}, err
		}
		end, err := parseLineRef(parts[1])
		if err != nil {
			return GridPlacement{Start: start, End: AutoLine()}, err
		}
		return GridPlacement{Start: start, End: end}, nil
	default:
		return GridPlacement{Start: AutoLine(), End: AutoLine()},
			fmt.Errorf("%w: too many line references in %q", ErrInvalidGridPlacement, s)
	}
}

func parseLineRef(s string) (LineRef, error) {
	fields := strings.Fields(strings.ToLower(s))
	switch len(fields) {
	case 1:
		if fields[0] == "auto" {
			return AutoLine(), nil
		}
		if n, err := strconv.Atoi(fields[0]); err == nil {
			return LineRef{Kind: LineIndex, Index: n}, nil
		}
		return LineRef{Kind: LineName, Name: fields[0]}, nil
	case 2:
		if fields[0] == "span" {
			n, err := strconv.Atoi(fields[1])
			if err == nil && n > 0 {
				return LineRef{Kind: LineIndex, Index: n, Span: true}, nil
			}
		}
	}
	return AutoLine(), fmt.Errorf("%w: bad line reference %q", ErrInvalidGridPlacement, s)
}
