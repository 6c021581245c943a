package style

import (
	"strings"
	"unicode"
)

// splitTopLevel splits s at runes matched by isSep, ignoring separators that
// occur inside parenthesis or bracket groups. Empty chunks are dropped, so a
// run of separators counts as one.
func splitTopLevel(s string, isSep func(rune) bool) []string {
	var (
		parts []string
		sb    strings.Builder
		depth int
	)
	for _, r := range s {
		switch {
		case r == '(' || r == '[':
			depth++
			sb.WriteRune(r)
		case r == ')' || r == ']':
			depth--
			sb.WriteRune(r)
		case depth == 0 && isSep(r):
			if sb.Len() > 0 {
				parts = append(parts, sb.String())
				sb.Reset()
			}
		default:
			sb.WriteRune(r)
		}
	}
	if sb.Len() > 0 {
		parts = append(parts, sb.String())
	}
	return parts
}

// splitArgs splits a function argument list on top-level commas, trimming
// surrounding whitespace from every argument.
func splitArgs(s string) []string {
	parts := splitTopLevel(s, func(r rune) bool { return r == ',' })
	args := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			args = append(args, p)
		}
	}
	return args
}

// splitFields splits on top-level whitespace. Unlike strings.Fields it keeps
// "rgb(255, 0, 0)" together as a single field.
func splitFields(s string) []string {
	return splitTopLevel(s, unicode.IsSpace)
}
