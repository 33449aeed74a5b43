// Package palette defines pad appearances, the cue palette and cue sequences.
//
// A palette maps small integer slots to appearances. Lookups never fail:
// an unknown slot resolves to slot 0, and an empty palette tells the caller
// to leave the pad untouched. Sequences are fixed lists of timed steps that
// the light-cue scheduler replays, possibly in a loop.
package palette
