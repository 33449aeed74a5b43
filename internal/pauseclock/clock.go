package pauseclock

import (
	"sync"
	"sync/atomic"
)

// Notifier is told about global pause transitions. The audio hub implements
// it to pause and resume every source it owns.
type Notifier interface {
	SetGlobalPause(paused bool)
}

// Listener is called after every pause transition.
type Listener func(paused bool)

// Logger is the logging interface used by the clock.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Clock holds the global paused flag read by every pause-aware wait.
//
// Thread Safety:
//   - IsPaused is safe from any goroutine.
//   - SetPaused serialises transitions; notifications run on the caller's
//     goroutine, which is the tick loop in a running system.
type Clock struct {
	paused    atomic.Bool
	mu        sync.Mutex
	notifier  Notifier
	listeners []Listener
	logger    Logger
}

// New creates a running (unpaused) clock. notifier may be nil.
func New(notifier Notifier) *Clock {
	return &Clock{
		notifier: notifier,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the clock.
func (c *Clock) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	c.mu.Lock()
	c.logger = logger
	c.mu.Unlock()
}

// SetNotifier replaces the pause notifier.
func (c *Clock) SetNotifier(n Notifier) {
	c.mu.Lock()
	c.notifier = n
	c.mu.Unlock()
}

// OnChange registers a listener called after each transition.
func (c *Clock) OnChange(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// IsPaused reports whether the global pause is engaged.
func (c *Clock) IsPaused() bool {
	return c.paused.Load()
}

// SetPaused engages or releases the global pause.
//
// Setting the current state again is a no-op: the notifier and listeners
// only hear about actual transitions.
//
// Returns:
//   - bool: true if the state changed
func (c *Clock) SetPaused(paused bool) bool {
	c.mu.Lock()
	if c.paused.Load() == paused {
		c.mu.Unlock()
		return false
	}
	c.paused.Store(paused)
	notifier := c.notifier
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	logger := c.logger
	c.mu.Unlock()

	if paused {
		logger.Info("action paused")
	} else {
		logger.Info("action resumed")
	}

	if notifier != nil {
		notifier.SetGlobalPause(paused)
	}
	for _, l := range listeners {
		l(paused)
	}
	return true
}

// Toggle flips the pause state and returns the new value.
func (c *Clock) Toggle() bool {
	next := !c.IsPaused()
	c.SetPaused(next)
	return next
}
