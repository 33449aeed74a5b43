package tick

import "time"

// PauseState reports whether the global pause is engaged.
type PauseState interface {
	IsPaused() bool
}

// Wait accumulates frame deltas until a target duration is reached.
//
// A pause-aware Wait only accumulates while its PauseState reports running,
// so wall time spent paused does not count. A wall Wait (nil PauseState)
// accumulates every delta.
type Wait struct {
	target  time.Duration
	elapsed time.Duration
	pause   PauseState
}

// NewPausableWait creates a Wait gated by the given pause state.
func NewPausableWait(target time.Duration, pause PauseState) *Wait {
	return &Wait{target: target, pause: pause}
}

// NewWallWait creates a Wait that ignores the pause state.
func NewWallWait(target time.Duration) *Wait {
	return &Wait{target: target}
}

// Advance adds dt (unless paused) and reports whether the target is reached.
func (w *Wait) Advance(dt time.Duration) bool {
	if w.pause == nil || !w.pause.IsPaused() {
		w.elapsed += dt
	}
	return w.Done()
}

// Done reports whether the accumulated time has reached the target.
func (w *Wait) Done() bool { return w.elapsed >= w.target }

// Reset restarts the wait with a new target, discarding any overshoot.
func (w *Wait) Reset(target time.Duration) {
	w.target = target
	w.elapsed = 0
}

// Elapsed returns the accumulated time.
func (w *Wait) Elapsed() time.Duration { return w.elapsed }

// Target returns the duration being waited for.
func (w *Wait) Target() time.Duration { return w.target }
