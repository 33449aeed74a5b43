//go:build rtmidi

package main

// Registers the RtMidi driver so launchpad.Open can find hardware ports.
// Build with -tags rtmidi (requires cgo and the system RtMidi/ALSA headers).
import _ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
