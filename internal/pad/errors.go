package pad

import "errors"

// Domain errors for the pad package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, pad.ErrUnknownKind) {
//	    // reject the show file entry
//	}
var (
	// ErrUnknownKind is returned when an action kind is not recognised.
	ErrUnknownKind = errors.New("pad: unknown action kind")

	// ErrUnknownTransport is returned when a transport command is not recognised.
	ErrUnknownTransport = errors.New("pad: unknown transport command")

	// ErrPadNotFound is returned when a pad index does not exist on the board.
	ErrPadNotFound = errors.New("pad: not found")
)
