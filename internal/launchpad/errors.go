package launchpad

import "errors"

var (
	// ErrPortNotFound is returned when no MIDI port matches the configured name.
	ErrPortNotFound = errors.New("launchpad: midi port not found")

	// ErrOpenFailed is returned when a matched port cannot be opened.
	ErrOpenFailed = errors.New("launchpad: open failed")
)
