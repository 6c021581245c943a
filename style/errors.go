package style

import "errors"

// Typed parse failures. Callers branch on these with errors.Is, never on
// message text. Permissive parsers return both a usable fallback value and
// one of these errors as a diagnostic; strict parsers return the error alone.
var (
	ErrInvalidLength             = errors.New("invalid length")
	ErrInvalidColorComponent     = errors.New("invalid color component")
	ErrUnsupportedColorFormat    = errors.New("unsupported color format")
	ErrInvalidSidesCount         = errors.New("invalid sides count")
	ErrInvalidBoxShadow          = errors.New("invalid box shadow")
	ErrInvalidGradientSyntax     = errors.New("invalid gradient syntax")
	ErrInsufficientGradientStops = errors.New("insufficient gradient stops")
	ErrInvalidAspectRatio        = errors.New("invalid aspect ratio")
	ErrInvalidRepeatFunction     = errors.New("invalid repeat function")
	ErrInvalidGridPlacement      = errors.New("invalid grid placement")
)
