package lightcue

import (
	"sort"
	"time"

	"github.com/nerrad567/cuepad-core/internal/palette"
	"github.com/nerrad567/cuepad-core/internal/surface"
	"github.com/nerrad567/cuepad-core/internal/tick"
)

// Logger is the logging interface used by the scheduler.
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

// Stats is a snapshot of the scheduler's bookkeeping.
type Stats struct {
	ActiveCues  int   `json:"active_cues"`
	ActiveLoops int   `json:"active_loops"`
	CuePads     []int `json:"cue_pads"`
	LoopOrigins []int `json:"loop_origins"`
}

// Scheduler runs timed light cues and cue sequences on the tick loop.
//
// It keeps at most one cue task per pad and at most one sequence task per
// origin pad. Starting a new one for a key that is already busy cancels the
// old task first.
//
// Thread Safety: not safe for concurrent use. Every method must be called on
// the tick loop goroutine.
type Scheduler struct {
	rt         *tick.Runtime
	surface    *surface.Surface
	palette    *palette.Palette
	pause      tick.PauseState
	activeCue  map[int]*cueTask
	activeLoop map[int]*loopTask
	logger     Logger
}

// New creates a scheduler.
//
// Parameters:
//   - rt: Tick runtime the cue tasks run on
//   - surf: Pad surface whose appearances the cues change
//   - pal: Cue palette used to resolve slots
//   - pause: Global pause state gating every scheduler wait
func New(rt *tick.Runtime, surf *surface.Surface, pal *palette.Palette, pause tick.PauseState) *Scheduler {
	return &Scheduler{
		rt:         rt,
		surface:    surf,
		palette:    pal,
		pause:      pause,
		activeCue:  make(map[int]*cueTask),
		activeLoop: make(map[int]*loopTask),
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the scheduler.
func (s *Scheduler) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	s.logger = logger
}

// Palette returns the palette cues resolve against.
func (s *Scheduler) Palette() *palette.Palette { return s.palette }

// TriggerCue shows a palette slot on one pad.
//
// Any cue already running on the pad is cancelled and the pad is returned to
// its base appearance before the new cue starts. After delay (pause-aware) the
// pad takes the slot's appearance. A persistent cue also makes it the new base
// and ends there; otherwise the pad returns to base after duration
// (pause-aware). Unknown pads are ignored.
func (s *Scheduler) TriggerCue(pad, slot int, duration, delay time.Duration, persist bool) {
	if !s.surface.Has(pad) {
		s.logger.Debug("light cue for unknown pad ignored", "pad", pad)
		return
	}

	if old, ok := s.activeCue[pad]; ok {
		old.handle.Cancel()
		delete(s.activeCue, pad)
		s.surface.Restore(pad)
	}

	duration, delay = palette.ClampTiming(duration, delay)
	c := &cueTask{
		s:        s,
		pad:      pad,
		slot:     slot,
		duration: duration,
		persist:  persist,
		wait:     tick.NewPausableWait(delay, s.pause),
	}

	h := s.rt.Spawn(c)
	if h.Alive() {
		c.handle = h
		s.activeCue[pad] = c
	}
}

// TriggerSequence plays a cue sequence attributed to an origin pad.
//
// Any sequence already running for the origin is stopped first. Each
// iteration issues every step through TriggerCue, then waits for the latest
// step end (pause-aware) before repeating if loop is set. A nil sequence is
// ignored.
func (s *Scheduler) TriggerSequence(origin int, seq *palette.Sequence, loop bool) {
	if seq == nil {
		return
	}
	s.StopSequence(origin)

	l := &loopTask{
		s:      s,
		origin: origin,
		seq:    seq,
		loop:   loop,
		wait:   tick.NewPausableWait(0, s.pause),
	}
	h := s.rt.Spawn(l)
	if h.Alive() {
		l.handle = h
		s.activeLoop[origin] = l
	}
	s.logger.Debug("sequence started", "origin", origin, "sequence", seq.Name, "loop", loop)
}

// StopSequence stops the sequence running for origin, if any. Cues it has
// already issued finish on their own.
//
// Returns:
//   - bool: true if a sequence was stopped
func (s *Scheduler) StopSequence(origin int) bool {
	l, ok := s.activeLoop[origin]
	if !ok {
		return false
	}
	l.handle.Cancel()
	delete(s.activeLoop, origin)
	s.logger.Debug("sequence stopped", "origin", origin, "sequence", l.seq.Name)
	return true
}

// HasCue reports whether a cue task is active for pad.
func (s *Scheduler) HasCue(pad int) bool {
	_, ok := s.activeCue[pad]
	return ok
}

// HasLoop reports whether a sequence task is active for origin.
func (s *Scheduler) HasLoop(origin int) bool {
	_, ok := s.activeLoop[origin]
	return ok
}

// ActiveCues returns the number of active cue tasks.
func (s *Scheduler) ActiveCues() int { return len(s.activeCue) }

// ActiveLoops returns the number of active sequence tasks.
func (s *Scheduler) ActiveLoops() int { return len(s.activeLoop) }

// Stats returns a snapshot of active cue pads and sequence origins.
func (s *Scheduler) Stats() Stats {
	st := Stats{
		ActiveCues:  len(s.activeCue),
		ActiveLoops: len(s.activeLoop),
		CuePads:     make([]int, 0, len(s.activeCue)),
		LoopOrigins: make([]int, 0, len(s.activeLoop)),
	}
	for pad := range s.activeCue {
		st.CuePads = append(st.CuePads, pad)
	}
	for origin := range s.activeLoop {
		st.LoopOrigins = append(st.LoopOrigins, origin)
	}
	sort.Ints(st.CuePads)
	sort.Ints(st.LoopOrigins)
	return st
}
