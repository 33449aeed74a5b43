package show

// File is the on-disk YAML layout of a show.
type File struct {
	Name      string                  `yaml:"name"`
	Grid      GridSpec                `yaml:"grid"`
	Palette   []SlotSpec              `yaml:"palette"`
	Sequences map[string]SequenceSpec `yaml:"sequences"`
	Pads      []PadSpec               `yaml:"pads"`
}

// GridSpec describes the pads that exist even without profiles.
type GridSpec struct {
	// Size creates pads 0..Size-1.
	Size int `yaml:"size"`

	// Base is the initial colour of every pad that does not set its own.
	Base string `yaml:"base"`
}

// SlotSpec is one palette entry.
type SlotSpec struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// SequenceSpec is a named list of steps.
type SequenceSpec struct {
	Steps []StepSpec `yaml:"steps"`
}

// StepSpec is one cue of a sequence. Times are in seconds.
type StepSpec struct {
	Pad      int      `yaml:"pad"`
	Slot     int      `yaml:"slot"`
	Duration *float64 `yaml:"duration"`
	Delay    float64  `yaml:"delay"`
	Persist  bool     `yaml:"persist"`
}

// PadSpec configures one pad.
type PadSpec struct {
	Index    int           `yaml:"index"`
	Base     string        `yaml:"base"`
	Profiles []ProfileSpec `yaml:"profiles"`
}

// ProfileSpec is a named list of actions.
type ProfileSpec struct {
	Name    string       `yaml:"name"`
	Actions []ActionSpec `yaml:"actions"`
}

// ActionSpec is one action. Type selects which other fields apply.
type ActionSpec struct {
	Type       string   `yaml:"type"`
	StartDelay float64  `yaml:"start_delay"`
	Clip       string   `yaml:"clip"`
	Loop       bool     `yaml:"loop"`
	Gain       *float64 `yaml:"gain"`
	Affectable bool     `yaml:"affectable"`
	Slot       int      `yaml:"slot"`
	Duration   *float64 `yaml:"duration"`
	Delay      float64  `yaml:"delay"`
	StayOn     bool     `yaml:"stay_on"`
	Sequence   string   `yaml:"sequence"`
	LoopState  bool     `yaml:"loop_state"`
	Transport  string   `yaml:"transport"`
}
