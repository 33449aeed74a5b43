package tick

import "time"

// Task is a unit of cooperative work advanced once per frame.
//
// Step receives the frame delta and reports whether the task has finished.
// The first Step happens synchronously inside Spawn with dt == 0, so a task
// runs up to its first suspension point before Spawn returns.
type Task interface {
	Step(dt time.Duration) (done bool)
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func(dt time.Duration) bool

// Step calls f(dt).
func (f TaskFunc) Step(dt time.Duration) bool { return f(dt) }

type handleState uint8

const (
	stateRunning handleState = iota
	stateDone
	stateCancelled
)

// Handle identifies a spawned task. It is only touched from the loop goroutine.
type Handle struct {
	id    uint64
	task  Task
	state handleState
}

// ID returns the runtime-unique task identifier.
func (h *Handle) ID() uint64 { return h.id }

// Alive reports whether the task will be stepped again.
func (h *Handle) Alive() bool { return h != nil && h.state == stateRunning }

// Cancel stops the task. It never receives another Step. Cancelling a
// finished or already cancelled task is a no-op and returns false.
func (h *Handle) Cancel() bool {
	if !h.Alive() {
		return false
	}
	h.state = stateCancelled
	return true
}
