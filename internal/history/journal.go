package history

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/nerrad567/cuepad-core/internal/pad"
)

// DefaultQueueSize is the journal buffer used when none is given.
const DefaultQueueSize = 256

// recordTimeout bounds a single insert so a stuck database cannot stall
// the drain on shutdown.
const recordTimeout = 2 * time.Second

// Logger is the logging surface used by the journal.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Journal records presses asynchronously. PadPressed is called on the tick
// loop and never blocks: when the queue is full the press is dropped and
// counted.
type Journal struct {
	repo    Repository
	queue   chan Press
	logger  Logger
	dropped atomic.Int64
}

// NewJournal creates a journal writing to repo.
func NewJournal(repo Repository, queueSize int) *Journal {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Journal{
		repo:   repo,
		queue:  make(chan Press, queueSize),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger. Call before Run.
func (j *Journal) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	j.logger = logger
}

// PadPressed queues a press. It satisfies pad.PressObserver.
func (j *Journal) PadPressed(ev pad.PressEvent) {
	select {
	case j.queue <- FromEvent(ev):
	default:
		if n := j.dropped.Add(1); n == 1 || n%100 == 0 {
			j.logger.Warn("press journal full, dropping", "dropped", n)
		}
	}
}

// Dropped returns how many presses were discarded because the queue was full.
func (j *Journal) Dropped() int64 {
	return j.dropped.Load()
}

// Run writes queued presses until ctx is cancelled, then drains what is
// already queued and returns nil.
func (j *Journal) Run(ctx context.Context) error {
	for {
		select {
		case p := <-j.queue:
			j.record(p)
		case <-ctx.Done():
			for {
				select {
				case p := <-j.queue:
					j.record(p)
				default:
					return nil
				}
			}
		}
	}
}

func (j *Journal) record(p Press) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := j.repo.Record(ctx, &p); err != nil {
		j.logger.Error("recording press", "pad", p.Pad, "error", err)
	}
}
