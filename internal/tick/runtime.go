package tick

import (
	"context"
	"time"
)

// DefaultInboxSize is the number of posted closures the runtime buffers.
const DefaultInboxSize = 256

// Logger is the logging interface used by the runtime.
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

// Runtime is a single-threaded cooperative task scheduler.
//
// Every task, and every closure handed in through Post or Do, executes on the
// goroutine that calls Tick (normally Run). State owned by tasks therefore
// needs no locking as long as other goroutines only reach it through Post/Do.
//
// Thread Safety:
//   - Post and Do are safe for concurrent use.
//   - Spawn, Tick and AfterTick must only be called on the loop goroutine.
type Runtime struct {
	tasks     []*Handle
	nextID    uint64
	inbox     chan func()
	stopped   chan struct{}
	afterTick []func()
	elapsed   time.Duration
	frames    uint64
	logger    Logger
}

// New creates a runtime with the given inbox size (DefaultInboxSize if <= 0).
func New(inboxSize int) *Runtime {
	if inboxSize <= 0 {
		inboxSize = DefaultInboxSize
	}
	return &Runtime{
		inbox:   make(chan func(), inboxSize),
		stopped: make(chan struct{}),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the runtime.
func (r *Runtime) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.logger = logger
}

// AfterTick registers a hook run at the end of every Tick and after every
// closure executed between frames. Surfaces use it to flush renderers.
func (r *Runtime) AfterTick(fn func()) {
	r.afterTick = append(r.afterTick, fn)
}

// Spawn starts a task and runs its first step synchronously with dt == 0.
// The returned handle is already finished if the task completed in that step.
func (r *Runtime) Spawn(t Task) *Handle {
	r.nextID++
	h := &Handle{id: r.nextID, task: t}
	if t.Step(0) {
		if h.state == stateRunning {
			h.state = stateDone
		}
		return h
	}
	if h.state == stateRunning {
		r.tasks = append(r.tasks, h)
	}
	return h
}

// Tick advances the runtime by one frame.
//
// Posted closures run first, then each task that was alive at the start of the
// frame is stepped once with dt. Tasks spawned during this frame have already
// taken their initial step and wait for the next frame.
func (r *Runtime) Tick(dt time.Duration) {
	r.drain()

	n := len(r.tasks)
	for i := 0; i < n; i++ {
		h := r.tasks[i]
		if h.state != stateRunning {
			continue
		}
		if h.task.Step(dt) && h.state == stateRunning {
			h.state = stateDone
		}
	}

	live := r.tasks[:0]
	for _, h := range r.tasks {
		if h.state == stateRunning {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(r.tasks); i++ {
		r.tasks[i] = nil
	}
	r.tasks = live

	r.elapsed += dt
	r.frames++
	r.flush()
}

// Len returns the number of live tasks.
func (r *Runtime) Len() int {
	count := 0
	for _, h := range r.tasks {
		if h.state == stateRunning {
			count++
		}
	}
	return count
}

// Elapsed returns the total frame time advanced so far.
func (r *Runtime) Elapsed() time.Duration { return r.elapsed }

// Frames returns the number of completed ticks.
func (r *Runtime) Frames() uint64 { return r.frames }

// Post queues fn for execution on the loop goroutine without waiting.
//
// Returns:
//   - ErrStopped if the Run loop has exited
//   - ErrQueueFull if the inbox is full
func (r *Runtime) Post(fn func()) error {
	select {
	case <-r.stopped:
		return ErrStopped
	default:
	}
	select {
	case r.inbox <- fn:
		return nil
	default:
		return ErrQueueFull
	}
}

// Do queues fn and waits until the loop has executed it.
//
// Parameters:
//   - ctx: Bounds both queueing and execution wait
//   - fn: Closure run on the loop goroutine
//
// Returns:
//   - error: ctx.Err(), or ErrStopped if the loop exits first
func (r *Runtime) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case r.inbox <- wrapped:
	case <-r.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-r.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives Tick from a ticker until ctx is cancelled.
//
// Each frame receives the measured wall time since the previous frame, so a
// slow frame is caught up rather than dropped. Posted closures arriving
// between frames run immediately and are followed by the AfterTick hooks.
func (r *Runtime) Run(ctx context.Context, interval time.Duration) error {
	defer close(r.stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("tick loop started", "interval", interval.String())
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("tick loop stopped", "frames", r.frames)
			return nil
		case fn := <-r.inbox:
			r.exec(fn)
			r.flush()
		case now := <-ticker.C:
			r.Tick(now.Sub(last))
			last = now
		}
	}
}

func (r *Runtime) drain() {
	for {
		select {
		case fn := <-r.inbox:
			r.exec(fn)
		default:
			return
		}
	}
}

// exec runs a posted closure, keeping the loop alive if it panics.
func (r *Runtime) exec(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic in posted closure", "panic", rec)
		}
	}()
	fn()
}

func (r *Runtime) flush() {
	for _, fn := range r.afterTick {
		fn()
	}
}
