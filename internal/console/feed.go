package console

import (
	"sync/atomic"

	"github.com/nerrad567/cuepad-core/internal/surface"
)

// DefaultFeedSize is the buffered capacity of each Feed channel.
const DefaultFeedSize = 256

// Logger is the logging interface used by the console.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Feed carries engine changes from the tick loop to the model.
//
// It is a surface.Renderer and its PauseChanged has the signature of a
// pauseclock.Listener. Both are called on the loop and drop the update when
// the model is not keeping up.
type Feed struct {
	states  chan surface.PadState
	pause   chan bool
	dropped atomic.Int64
	logger  Logger
}

// NewFeed creates a feed. A size <= 0 uses DefaultFeedSize.
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{
		states: make(chan surface.PadState, size),
		pause:  make(chan bool, size),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger. Call before the loop starts.
func (f *Feed) SetLogger(logger Logger) {
	if logger != nil {
		f.logger = logger
	}
}

// RenderPad queues a pad state for the model.
func (f *Feed) RenderPad(st surface.PadState) {
	select {
	case f.states <- st:
	default:
		f.drop("pad", st.Index)
	}
}

// PauseChanged queues the new pause flag for the model.
func (f *Feed) PauseChanged(paused bool) {
	select {
	case f.pause <- paused:
	default:
		f.drop("pause", paused)
	}
}

// Dropped returns the number of updates discarded because the model lagged.
func (f *Feed) Dropped() int64 {
	return f.dropped.Load()
}

func (f *Feed) drop(kind string, value any) {
	n := f.dropped.Add(1)
	if n == 1 || n%100 == 0 {
		f.logger.Warn("console feed full, update dropped", kind, value, "dropped", n)
	}
}
