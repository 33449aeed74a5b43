package palette

import "errors"

var (
	// ErrInvalidColor is returned when a colour string cannot be parsed.
	ErrInvalidColor = errors.New("palette: invalid colour")
)
