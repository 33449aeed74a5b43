package lightcue

import (
	"time"

	"github.com/nerrad567/cuepad-core/internal/palette"
	"github.com/nerrad567/cuepad-core/internal/tick"
)

type cuePhase uint8

const (
	phaseDelay cuePhase = iota
	phaseHold
)

// cueTask drives one pad through delay, show and (unless persistent) restore.
type cueTask struct {
	s        *Scheduler
	handle   *tick.Handle
	pad      int
	slot     int
	duration time.Duration
	persist  bool
	phase    cuePhase
	wait     *tick.Wait
}

func (c *cueTask) Step(dt time.Duration) bool {
	switch c.phase {
	case phaseDelay:
		if !c.wait.Advance(dt) {
			return false
		}
		return c.show()
	default:
		if !c.wait.Advance(dt) {
			return false
		}
		c.s.surface.Restore(c.pad)
		c.release()
		return true
	}
}

func (c *cueTask) show() bool {
	a, ok := c.s.palette.Resolve(c.slot)
	if c.persist {
		if ok {
			c.s.surface.SetBase(c.pad, a)
		}
		c.release()
		return true
	}
	if ok {
		c.s.surface.Set(c.pad, a)
	}
	c.phase = phaseHold
	c.wait.Reset(c.duration)
	return false
}

func (c *cueTask) release() {
	if c.s.activeCue[c.pad] == c {
		delete(c.s.activeCue, c.pad)
	}
}

// loopTask issues a sequence's steps once per iteration.
type loopTask struct {
	s         *Scheduler
	handle    *tick.Handle
	origin    int
	seq       *palette.Sequence
	loop      bool
	started   bool
	yieldTick bool
	wait      *tick.Wait
}

func (l *loopTask) Step(dt time.Duration) bool {
	if !l.started {
		l.started = true
		l.issue()
		return false
	}

	if l.yieldTick {
		l.yieldTick = false
	} else if !l.wait.Advance(dt) {
		return false
	}

	if !l.loop {
		if l.s.activeLoop[l.origin] == l {
			delete(l.s.activeLoop, l.origin)
		}
		return true
	}
	l.issue()
	return false
}

func (l *loopTask) issue() {
	for _, step := range l.seq.Steps {
		c := step.Clamped()
		l.s.TriggerCue(c.Pad, c.Slot, c.Duration, c.Delay, c.Persist)
	}

	maxEnd := l.seq.MaxEnd()
	if maxEnd == 0 {
		l.yieldTick = true
		return
	}
	l.wait.Reset(maxEnd)
}
