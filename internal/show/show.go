package show

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/cuepad-core/internal/pad"
	"github.com/nerrad567/cuepad-core/internal/palette"
)

const (
	// DefaultLightDuration applies to light actions that omit a duration.
	DefaultLightDuration = 250 * time.Millisecond

	// DefaultStepDuration applies to sequence steps that omit a duration.
	DefaultStepDuration = time.Second

	// DefaultGain applies to sample actions that omit a gain.
	DefaultGain = 1.0

	defaultBase = "#000000"
)

// Pad is a resolved pad definition.
type Pad struct {
	Index    int
	Base     palette.Appearance
	Profiles []pad.Profile
}

// Show is a fully resolved show: palette, sequences and pads.
type Show struct {
	Name      string
	Palette   *palette.Palette
	Sequences map[string]*palette.Sequence
	Pads      []Pad

	// Warnings lists configuration gaps that were tolerated while loading,
	// such as references to sequences that do not exist.
	Warnings []string
}

// Load reads and resolves a show file.
//
// Parameters:
//   - path: Path to the YAML show file
//
// Returns:
//   - *Show: Resolved show
//   - error: If the file cannot be read or contains malformed entries
func Load(path string) (*Show, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading show file: %w", err)
	}
	return Parse(data)
}

// Parse resolves a show from YAML.
//
// Malformed entries (bad colours, unknown action types or transport commands)
// fail the load. Gaps the runtime tolerates anyway (unknown sequences,
// duplicate pads) are recorded in Show.Warnings instead.
func Parse(data []byte) (*Show, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShow, err)
	}
	return Resolve(&f)
}

// Resolve turns a decoded show file into a Show.
func Resolve(f *File) (*Show, error) {
	s := &Show{
		Name:      f.Name,
		Sequences: make(map[string]*palette.Sequence, len(f.Sequences)),
	}

	if f.Grid.Size < 0 {
		return nil, fmt.Errorf("%w: grid.size must not be negative", ErrInvalidShow)
	}

	slots := make([]palette.Appearance, 0, len(f.Palette))
	for i, spec := range f.Palette {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("slot-%d", i)
		}
		a, err := palette.ParseAppearance(name, spec.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: palette[%d]: %v", ErrInvalidShow, i, err)
		}
		slots = append(slots, a)
	}
	s.Palette = palette.New(slots...)

	names := make([]string, 0, len(f.Sequences))
	for name := range f.Sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.Sequences[name] = resolveSequence(name, f.Sequences[name])
	}

	gridBase, err := baseAppearance(f.Grid.Base, defaultBase)
	if err != nil {
		return nil, fmt.Errorf("%w: grid.base: %v", ErrInvalidShow, err)
	}

	byIndex := make(map[int]Pad)
	for i := 0; i < f.Grid.Size; i++ {
		byIndex[i] = Pad{Index: i, Base: gridBase}
	}

	seen := make(map[int]bool, len(f.Pads))
	for i, spec := range f.Pads {
		if seen[spec.Index] {
			s.warn("pads[%d]: duplicate pad index %d ignored", i, spec.Index)
			continue
		}
		seen[spec.Index] = true

		p, err := s.resolvePad(spec, gridBase)
		if err != nil {
			return nil, fmt.Errorf("%w: pads[%d]: %v", ErrInvalidShow, i, err)
		}
		byIndex[spec.Index] = p
	}

	indices := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		s.Pads = append(s.Pads, byIndex[idx])
	}

	for name, seq := range s.Sequences {
		for j, step := range seq.Steps {
			if _, ok := byIndex[step.Pad]; !ok {
				s.warn("sequence %q step %d targets unknown pad %d", name, j, step.Pad)
			}
		}
	}
	sort.Strings(s.Warnings)

	return s, nil
}

func resolveSequence(name string, spec SequenceSpec) *palette.Sequence {
	seq := &palette.Sequence{Name: name, Steps: make([]palette.Step, 0, len(spec.Steps))}
	for _, st := range spec.Steps {
		seq.Steps = append(seq.Steps, palette.Step{
			Pad:      st.Pad,
			Slot:     st.Slot,
			Duration: secondsOr(st.Duration, DefaultStepDuration),
			Delay:    seconds(st.Delay),
			Persist:  st.Persist,
		}.Clamped())
	}
	return seq
}

func (s *Show) resolvePad(spec PadSpec, gridBase palette.Appearance) (Pad, error) {
	base := gridBase
	if spec.Base != "" {
		a, err := palette.ParseAppearance("base", spec.Base)
		if err != nil {
			return Pad{}, err
		}
		base = a
	}

	p := Pad{Index: spec.Index, Base: base}
	for i, ps := range spec.Profiles {
		name := ps.Name
		if name == "" {
			name = fmt.Sprintf("Step %d", i+1)
		}
		prof := pad.Profile{Name: name, Actions: make([]pad.Action, 0, len(ps.Actions))}
		for j, as := range ps.Actions {
			a, err := s.resolveAction(spec.Index, as)
			if err != nil {
				return Pad{}, fmt.Errorf("profile %q action %d: %w", name, j, err)
			}
			prof.Actions = append(prof.Actions, a)
		}
		p.Profiles = append(p.Profiles, prof)
	}
	return p, nil
}

func (s *Show) resolveAction(padIndex int, as ActionSpec) (pad.Action, error) {
	kind, err := pad.ParseKind(as.Type)
	if err != nil {
		return pad.Action{}, err
	}

	a := pad.Action{Kind: kind, StartDelay: nonNegative(seconds(as.StartDelay))}
	switch kind {
	case pad.KindSample:
		a.Clip = as.Clip
		a.Loop = as.Loop
		a.Affectable = as.Affectable
		a.Gain = DefaultGain
		if as.Gain != nil {
			a.Gain = clampUnit(*as.Gain)
		}
		if a.Clip == "" {
			s.warn("pad %d: sample action without clip", padIndex)
		}

	case pad.KindLight:
		a.Slot = as.Slot
		a.Duration, a.Delay = palette.ClampTiming(secondsOr(as.Duration, DefaultLightDuration), seconds(as.Delay))
		a.StayOn = as.StayOn

	case pad.KindState:
		a.LoopState = as.LoopState
		if seq, ok := s.Sequences[as.Sequence]; ok {
			a.Sequence = seq
		} else {
			s.warn("pad %d: unknown sequence %q", padIndex, as.Sequence)
		}

	case pad.KindTransport:
		cmd, err := pad.ParseTransport(as.Transport)
		if err != nil {
			return pad.Action{}, err
		}
		a.Transport = cmd
	}
	return a, nil
}

// InitialAppearances returns each pad's starting appearance, keyed by index.
func (s *Show) InitialAppearances() map[int]palette.Appearance {
	out := make(map[int]palette.Appearance, len(s.Pads))
	for _, p := range s.Pads {
		out[p.Index] = p.Base
	}
	return out
}

// BuildBoard creates one pad.Pad per show pad, sharing deps.
func (s *Show) BuildBoard(deps pad.Deps) *pad.Board {
	pads := make([]*pad.Pad, 0, len(s.Pads))
	for _, p := range s.Pads {
		pads = append(pads, pad.New(p.Index, p.Profiles, deps))
	}
	b := pad.NewBoard(pads...)
	if deps.Logger != nil {
		b.SetLogger(deps.Logger)
	}
	return b
}

func (s *Show) warn(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

func baseAppearance(hex, fallback string) (palette.Appearance, error) {
	if hex == "" {
		hex = fallback
	}
	a, err := palette.ParseAppearance("base", hex)
	if err != nil {
		return palette.Appearance{}, err
	}
	if hex == defaultBase {
		a.Name = palette.Off.Name
	}
	return a, nil
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func secondsOr(v *float64, fallback time.Duration) time.Duration {
	if v == nil {
		return fallback
	}
	return seconds(*v)
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
