package pad

import (
	"time"

	"github.com/nerrad567/cuepad-core/internal/palette"
	"github.com/nerrad567/cuepad-core/internal/tick"
)

// Audio is the sound collaborator a pad dispatches sample and transport
// actions to.
type Audio interface {
	// OneShot plays a clip once.
	OneShot(clip string, gain float64, affectable bool)

	// ToggleLoop starts a looping clip, or stops it if it is already playing.
	ToggleLoop(clip string, gain float64, affectable bool)

	// Transport controls the background music source.
	Transport(cmd TransportCommand)
}

// LightScheduler is the light-cue scheduler as seen by pads.
type LightScheduler interface {
	TriggerCue(pad, slot int, duration, delay time.Duration, persist bool)
	TriggerSequence(origin int, seq *palette.Sequence, loop bool)
	StopSequence(origin int) bool
}

// Feedback receives the press pulse scale for a pad.
type Feedback interface {
	SetScale(pad int, scale float64)
}

// Logger is the logging interface used by pads.
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

// Deps are the collaborators shared by every pad on a board.
type Deps struct {
	Runtime  *tick.Runtime  // required
	Lights   LightScheduler // required
	Audio    Audio          // optional; sample and transport actions are dropped when nil
	Feedback Feedback       // optional
	Logger   Logger         // optional
}

// Pad turns presses into actions.
//
// Each press fires every action of the profile under the cursor, pulses the
// pad, and advances the cursor to the next profile (wrapping).
//
// Thread Safety: not safe for concurrent use. Owned by the tick loop.
type Pad struct {
	index    int
	profiles []Profile
	cursor   int
	deps     Deps
	pulse    *tick.Handle
}

// New creates a pad. profiles may be empty, in which case presses only pulse.
func New(index int, profiles []Profile, deps Deps) *Pad {
	if deps.Logger == nil {
		deps.Logger = noopLogger{}
	}
	cpy := make([]Profile, len(profiles))
	copy(cpy, profiles)
	return &Pad{
		index:    index,
		profiles: cpy,
		deps:     deps,
	}
}

// Index returns the pad's grid index.
func (p *Pad) Index() int { return p.index }

// Cursor returns the index of the profile the next press will fire.
func (p *Pad) Cursor() int { return p.cursor }

// Info returns a summary of the pad.
func (p *Pad) Info() Info {
	names := make([]string, len(p.profiles))
	for i, prof := range p.profiles {
		names[i] = prof.Name
	}
	return Info{Index: p.index, Cursor: p.cursor, Profiles: names}
}

// Press handles a press with the given velocity (clamped to 0..1).
//
// It stops any sequence this pad started, fires the actions of the current
// profile (each after its own start delay), restarts the feedback pulse and
// advances the cursor.
//
// Returns:
//   - PressEvent: What was fired, for observers
func (p *Pad) Press(velocity float64) PressEvent {
	velocity = clampUnit(velocity)
	p.deps.Lights.StopSequence(p.index)

	ev := PressEvent{
		Pad:      p.index,
		Profile:  -1,
		Velocity: velocity,
		At:       time.Now().UTC(),
	}

	if len(p.profiles) == 0 {
		p.restartPulse()
		return ev
	}

	if p.cursor >= len(p.profiles) {
		p.cursor = 0
	}
	prof := p.profiles[p.cursor]
	ev.Profile = p.cursor
	ev.ProfileName = prof.Name
	ev.Actions = len(prof.Actions)

	for _, a := range prof.Actions {
		p.deps.Runtime.Spawn(&entryTask{
			pad:      p,
			action:   a,
			velocity: velocity,
			wait:     tick.NewWallWait(a.StartDelay),
		})
	}

	p.restartPulse()
	p.cursor = (p.cursor + 1) % len(p.profiles)

	p.deps.Logger.Debug("pad pressed",
		"pad", p.index,
		"profile", prof.Name,
		"velocity", velocity,
		"actions", len(prof.Actions),
	)
	return ev
}

// Release is called when the pad is let go. Nothing is bound to it yet.
func (p *Pad) Release() {
	p.deps.Logger.Debug("pad released", "pad", p.index)
}

func (p *Pad) dispatch(a Action, velocity float64) {
	switch a.Kind {
	case KindTransport:
		if p.deps.Audio == nil {
			return
		}
		p.deps.Audio.Transport(a.Transport)

	case KindSample:
		if p.deps.Audio == nil || a.Clip == "" {
			return
		}
		gain := a.Gain * velocity
		if a.Loop {
			p.deps.Audio.ToggleLoop(a.Clip, gain, a.Affectable)
		} else {
			p.deps.Audio.OneShot(a.Clip, gain, a.Affectable)
		}

	case KindLight:
		duration, delay := palette.ClampTiming(a.Duration, a.Delay)
		p.deps.Lights.TriggerCue(p.index, a.Slot, duration, delay, a.StayOn)

	case KindState:
		if a.Sequence == nil {
			return
		}
		p.deps.Lights.TriggerSequence(p.index, a.Sequence, a.LoopState)

	default:
		p.deps.Logger.Warn("unknown action kind", "pad", p.index, "kind", a.Kind)
	}
}

func (p *Pad) restartPulse() {
	if p.deps.Feedback == nil {
		return
	}
	if p.pulse.Cancel() {
		p.deps.Feedback.SetScale(p.index, RestScale)
	}
	p.pulse = p.deps.Runtime.Spawn(&pulseTask{pad: p.index, fb: p.deps.Feedback})
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// entryTask waits out an action's start delay on the wall clock, then
// dispatches it.
type entryTask struct {
	pad      *Pad
	action   Action
	velocity float64
	wait     *tick.Wait
}

func (e *entryTask) Step(dt time.Duration) bool {
	if !e.wait.Advance(dt) {
		return false
	}
	e.pad.dispatch(e.action, e.velocity)
	return true
}
