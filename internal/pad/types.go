package pad

import (
	"fmt"
	"strings"
	"time"

	"github.com/nerrad567/cuepad-core/internal/palette"
)

// ActionKind selects which fields of an Action apply.
type ActionKind string

const (
	// KindSample plays an audio clip once or toggles it as a loop.
	KindSample ActionKind = "sample"

	// KindLight triggers a light cue on the pressed pad.
	KindLight ActionKind = "light"

	// KindState plays a cue sequence attributed to the pressed pad.
	KindState ActionKind = "state"

	// KindTransport sends a transport command to the background music.
	KindTransport ActionKind = "transport"
)

// ValidKinds lists every recognised action kind.
var ValidKinds = []ActionKind{KindSample, KindLight, KindState, KindTransport}

// ParseKind converts a string to an ActionKind.
func ParseKind(s string) (ActionKind, error) {
	k := ActionKind(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range ValidKinds {
		if k == v {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// TransportCommand controls the background music source.
type TransportCommand string

const (
	TransportTogglePlay TransportCommand = "toggle-play"
	TransportPlay       TransportCommand = "play"
	TransportPause      TransportCommand = "pause"
	TransportStop       TransportCommand = "stop"
	TransportRestart    TransportCommand = "restart"
)

// ValidTransports lists every recognised transport command.
var ValidTransports = []TransportCommand{
	TransportTogglePlay, TransportPlay, TransportPause, TransportStop, TransportRestart,
}

// ParseTransport converts a string to a TransportCommand.
func ParseTransport(s string) (TransportCommand, error) {
	c := TransportCommand(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range ValidTransports {
		if c == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTransport, s)
}

// Action is one timed effect fired by a press. Kind decides which of the
// remaining fields are read.
type Action struct {
	Kind ActionKind

	// StartDelay is wall-clock time between the press and dispatch.
	// It keeps running while the global pause is engaged.
	StartDelay time.Duration

	// Sample
	Clip       string
	Loop       bool
	Gain       float64
	Affectable bool

	// Light
	Slot     int
	Duration time.Duration
	Delay    time.Duration
	StayOn   bool

	// State; Sequence is nil when the show named a sequence that does not exist
	Sequence  *palette.Sequence
	LoopState bool

	// Transport
	Transport TransportCommand
}

// Profile is a named list of actions fired together by one press.
type Profile struct {
	Name    string
	Actions []Action
}

// PressEvent describes a handled press.
type PressEvent struct {
	Pad         int       `json:"pad"`
	Profile     int       `json:"profile"` // -1 when the pad has no profiles
	ProfileName string    `json:"profile_name,omitempty"`
	Velocity    float64   `json:"velocity"`
	Actions     int       `json:"actions"`
	At          time.Time `json:"at"`

	// Source names the input that produced the press ("api", "mqtt", ...).
	Source string `json:"source,omitempty"`
}

// Info is a read-only summary of a pad.
type Info struct {
	Index    int      `json:"index"`
	Cursor   int      `json:"cursor"`
	Profiles []string `json:"profiles"`
}
