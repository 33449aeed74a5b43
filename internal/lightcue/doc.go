// Package lightcue schedules timed visual cues on pads.
//
// A light cue changes one pad to a palette slot after an optional delay and
// either holds it for a duration before restoring the pad's base appearance,
// or persists it as the new base. A cue sequence issues several cues at once
// and may loop, waiting for its longest step between iterations.
//
// Bookkeeping:
//
//	activeCue[pad]     at most one cue task per pad
//	activeLoop[origin] at most one sequence task per origin pad
//
// Retriggering a busy pad cancels the old cue and restores the base
// appearance synchronously, so the new cue always starts from a known state.
// Every wait owned by the scheduler stops counting while the global pause is
// engaged.
//
// Usage:
//
//	sched := lightcue.New(rt, surf, pal, clock)
//	sched.TriggerCue(5, 2, 500*time.Millisecond, 0, false)
//	sched.TriggerSequence(0, show.Sequences["chase"], true)
package lightcue
