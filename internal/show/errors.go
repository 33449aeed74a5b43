package show

import "errors"

var (
	// ErrInvalidShow is returned when a show file is malformed.
	ErrInvalidShow = errors.New("show: invalid")
)
