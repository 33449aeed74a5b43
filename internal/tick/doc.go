// Package tick provides the cooperative frame loop that every timed effect in
// Cuepad Core runs on.
//
// Tasks are explicit state machines advanced once per frame. Nothing in a
// task blocks: waits are expressed as Wait values that accumulate frame
// deltas, optionally gated by the global pause.
//
// # Execution Model
//
//	goroutines (MQTT, HTTP, MIDI, console)
//	        │ Post / Do
//	        ▼
//	┌───────────────┐   Tick(dt)   ┌──────────────────────────┐
//	│ Runtime.Run   │─────────────▶│ 1. run posted closures   │
//	│ (ticker)      │              │ 2. step each live task   │
//	└───────────────┘              │ 3. drop finished tasks   │
//	                               │ 4. AfterTick hooks       │
//	                               └──────────────────────────┘
//
// Spawn runs a task's first step synchronously, so a task with nothing to
// wait for takes effect before Spawn returns. Cancel is immediate: a cancelled
// task never steps again.
//
// # Testing
//
// Tests drive the runtime deterministically by calling Tick with fixed
// deltas instead of starting Run.
package tick
