// Package pad implements the pad dispatcher: pads, their profiles and the
// board that routes input to them.
//
// A press fires every action of the pad's current profile, then moves the
// cursor to the next profile so repeated presses step through them in order.
//
// # Action Kinds
//
//   - sample: one-shot or toggled looping audio clip, gain scaled by velocity
//   - light: light cue on the pressed pad
//   - state: cue sequence attributed to the pressed pad
//   - transport: background music control
//
// Each action waits out its own start delay before dispatch. Start delays run
// on the wall clock and keep counting while the global pause is engaged; the
// light cues they start are pause-aware.
//
// # Feedback
//
// Every press also pulses the pad's scale (1.0 → 1.06 → 1.0 over 300ms). A
// new press restarts the pulse instead of stacking another one.
//
// # Thread Safety
//
// Pads and the Board belong to the tick loop. Other goroutines reach them
// through tick.Runtime.Post or Do.
package pad
