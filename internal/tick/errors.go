package tick

import "errors"

// Domain errors for the tick package.
var (
	// ErrQueueFull is returned by Post when the loop inbox has no room.
	ErrQueueFull = errors.New("tick: inbox full")

	// ErrStopped is returned when posting to a runtime whose Run loop has exited.
	ErrStopped = errors.New("tick: runtime stopped")
)
