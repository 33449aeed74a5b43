package audio

import "errors"

// Domain errors for the audio package.
var (
	// ErrDecode is returned when a clip cannot be decoded.
	ErrDecode = errors.New("audio: decode failed")

	// ErrOutput is returned when the output device cannot be opened.
	ErrOutput = errors.New("audio: output unavailable")
)
