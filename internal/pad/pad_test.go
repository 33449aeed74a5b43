package pad

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/cuepad-core/internal/palette"
	"github.com/nerrad567/cuepad-core/internal/pauseclock"
	"github.com/nerrad567/cuepad-core/internal/tick"
)

const frame = 100 * time.Millisecond

// ─── Mock Dependencies ──────────────────────────────────────────────────────

type cueCall struct {
	Pad      int
	Slot     int
	Duration time.Duration
	Delay    time.Duration
	Persist  bool
}

type seqCall struct {
	Origin int
	Seq    *palette.Sequence
	Loop   bool
}

type mockLights struct {
	mu    sync.Mutex
	cues  []cueCall
	seqs  []seqCall
	stops []int
}

func (m *mockLights) TriggerCue(pad, slot int, duration, delay time.Duration, persist bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cues = append(m.cues, cueCall{pad, slot, duration, delay, persist})
}

func (m *mockLights) TriggerSequence(origin int, seq *palette.Sequence, loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seqs = append(m.seqs, seqCall{origin, seq, loop})
}

func (m *mockLights) StopSequence(origin int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops = append(m.stops, origin)
	return false
}

func (m *mockLights) getCues() []cueCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	cpy := make([]cueCall, len(m.cues))
	copy(cpy, m.cues)
	return cpy
}

type audioCall struct {
	Op         string
	Clip       string
	Gain       float64
	Affectable bool
	Transport  TransportCommand
}

type mockAudio struct {
	mu    sync.Mutex
	calls []audioCall
}

func (m *mockAudio) OneShot(clip string, gain float64, affectable bool) {
	m.record(audioCall{Op: "oneshot", Clip: clip, Gain: gain, Affectable: affectable})
}

func (m *mockAudio) ToggleLoop(clip string, gain float64, affectable bool) {
	m.record(audioCall{Op: "loop", Clip: clip, Gain: gain, Affectable: affectable})
}

func (m *mockAudio) Transport(cmd TransportCommand) {
	m.record(audioCall{Op: "transport", Transport: cmd})
}

func (m *mockAudio) record(c audioCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

func (m *mockAudio) getCalls() []audioCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	cpy := make([]audioCall, len(m.calls))
	copy(cpy, m.calls)
	return cpy
}

type mockFeedback struct {
	scales map[int][]float64
}

func (m *mockFeedback) SetScale(pad int, scale float64) {
	if m.scales == nil {
		m.scales = make(map[int][]float64)
	}
	m.scales[pad] = append(m.scales[pad], scale)
}

// ─── Helper ─────────────────────────────────────────────────────────────────

type harness struct {
	rt       *tick.Runtime
	lights   *mockLights
	audio    *mockAudio
	feedback *mockFeedback
}

func newHarness() *harness {
	return &harness{
		rt:       tick.New(0),
		lights:   &mockLights{},
		audio:    &mockAudio{},
		feedback: &mockFeedback{},
	}
}

func (h *harness) deps() Deps {
	return Deps{Runtime: h.rt, Lights: h.lights, Audio: h.audio, Feedback: h.feedback}
}

func (h *harness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.rt.Tick(frame)
	}
}

func lightProfile(name string, slot int) Profile {
	return Profile{Name: name, Actions: []Action{
		{Kind: KindLight, Slot: slot, Duration: 250 * time.Millisecond},
	}}
}

// ─── Press ──────────────────────────────────────────────────────────────────

func TestPress_CyclesProfiles(t *testing.T) {
	h := newHarness()
	p := New(2, []Profile{
		lightProfile("Step 1", 1),
		lightProfile("Step 2", 2),
		lightProfile("Step 3", 3),
	}, h.deps())

	wantSlots := []int{1, 2, 3, 1}
	wantCursor := []int{1, 2, 0, 1}
	for i := range wantSlots {
		ev := p.Press(1)
		if ev.Profile != (i % 3) {
			t.Errorf("press %d: event profile = %d, want %d", i, ev.Profile, i%3)
		}
		if p.Cursor() != wantCursor[i] {
			t.Errorf("press %d: Cursor() = %d, want %d", i, p.Cursor(), wantCursor[i])
		}
	}

	cues := h.lights.getCues()
	if len(cues) != len(wantSlots) {
		t.Fatalf("cues = %d, want %d", len(cues), len(wantSlots))
	}
	for i, c := range cues {
		if c.Slot != wantSlots[i] || c.Pad != 2 {
			t.Errorf("cue %d = pad %d slot %d, want pad 2 slot %d", i, c.Pad, c.Slot, wantSlots[i])
		}
	}
}

func TestPress_StopsOwnSequenceFirst(t *testing.T) {
	h := newHarness()
	p := New(6, nil, h.deps())

	p.Press(0.5)

	if len(h.lights.stops) != 1 || h.lights.stops[0] != 6 {
		t.Errorf("StopSequence calls = %v, want [6]", h.lights.stops)
	}
}

func TestPress_NoProfilesOnlyPulses(t *testing.T) {
	h := newHarness()
	p := New(1, nil, h.deps())

	ev := p.Press(1)

	if ev.Profile != -1 {
		t.Errorf("event profile = %d, want -1", ev.Profile)
	}
	if len(h.lights.getCues()) != 0 || len(h.audio.getCalls()) != 0 {
		t.Error("press without profiles dispatched actions")
	}
	if len(h.feedback.scales[1]) == 0 {
		t.Error("press without profiles did not pulse")
	}
	if p.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", p.Cursor())
	}
}

func TestPress_EmptyProfileAdvancesCursor(t *testing.T) {
	h := newHarness()
	p := New(1, []Profile{{Name: "empty"}, lightProfile("lit", 2)}, h.deps())

	p.Press(1)
	if p.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", p.Cursor())
	}
	p.Press(1)
	if cues := h.lights.getCues(); len(cues) != 1 || cues[0].Slot != 2 {
		t.Errorf("cues = %+v, want one cue on slot 2", cues)
	}
}

func TestPress_DispatchByKind(t *testing.T) {
	seq := &palette.Sequence{Name: "chase"}

	tests := []struct {
		name      string
		action    Action
		velocity  float64
		wantAudio []audioCall
		wantCues  int
		wantSeqs  int
	}{
		{
			name:      "one-shot sample gain scaled by velocity",
			action:    Action{Kind: KindSample, Clip: "kick", Gain: 0.8, Affectable: true},
			velocity:  0.5,
			wantAudio: []audioCall{{Op: "oneshot", Clip: "kick", Gain: 0.4, Affectable: true}},
		},
		{
			name:      "looping sample toggles",
			action:    Action{Kind: KindSample, Clip: "pad-loop", Loop: true, Gain: 1},
			velocity:  1,
			wantAudio: []audioCall{{Op: "loop", Clip: "pad-loop", Gain: 1}},
		},
		{
			name:     "sample without clip skipped",
			action:   Action{Kind: KindSample, Gain: 1},
			velocity: 1,
		},
		{
			name:      "transport",
			action:    Action{Kind: KindTransport, Transport: TransportRestart},
			velocity:  1,
			wantAudio: []audioCall{{Op: "transport", Transport: TransportRestart}},
		},
		{
			name:     "light cue",
			action:   Action{Kind: KindLight, Slot: 4, Duration: time.Second},
			velocity: 1,
			wantCues: 1,
		},
		{
			name:     "state sequence",
			action:   Action{Kind: KindState, Sequence: seq, LoopState: true},
			velocity: 1,
			wantSeqs: 1,
		},
		{
			name:     "state without sequence skipped",
			action:   Action{Kind: KindState, LoopState: true},
			velocity: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			p := New(3, []Profile{{Name: "p", Actions: []Action{tt.action}}}, h.deps())

			p.Press(tt.velocity)

			calls := h.audio.getCalls()
			if len(calls) != len(tt.wantAudio) {
				t.Fatalf("audio calls = %+v, want %+v", calls, tt.wantAudio)
			}
			for i := range calls {
				got, want := calls[i], tt.wantAudio[i]
				if got.Op != want.Op || got.Clip != want.Clip || got.Affectable != want.Affectable || got.Transport != want.Transport {
					t.Errorf("audio call %d = %+v, want %+v", i, got, want)
				}
				if math.Abs(got.Gain-want.Gain) > 1e-9 {
					t.Errorf("audio call %d gain = %v, want %v", i, got.Gain, want.Gain)
				}
			}
			if n := len(h.lights.getCues()); n != tt.wantCues {
				t.Errorf("cues = %d, want %d", n, tt.wantCues)
			}
			if n := len(h.lights.seqs); n != tt.wantSeqs {
				t.Errorf("sequences = %d, want %d", n, tt.wantSeqs)
			}
			if tt.wantSeqs > 0 {
				s := h.lights.seqs[0]
				if s.Origin != 3 || s.Seq != seq || !s.Loop {
					t.Errorf("sequence call = %+v, want origin 3 chase loop", s)
				}
			}
		})
	}
}

func TestPress_LightActionClamped(t *testing.T) {
	h := newHarness()
	p := New(0, []Profile{{Actions: []Action{
		{Kind: KindLight, Slot: 1, Duration: -time.Second, Delay: -time.Second, StayOn: true},
	}}}, h.deps())

	p.Press(1)

	cues := h.lights.getCues()
	if len(cues) != 1 {
		t.Fatalf("cues = %d, want 1", len(cues))
	}
	if cues[0].Duration != palette.MinDuration || cues[0].Delay != 0 || !cues[0].Persist {
		t.Errorf("cue = %+v, want clamped persist cue", cues[0])
	}
}

func TestPress_VelocityClamped(t *testing.T) {
	h := newHarness()
	p := New(0, []Profile{{Actions: []Action{{Kind: KindSample, Clip: "hat", Gain: 1}}}}, h.deps())

	if ev := p.Press(3.5); ev.Velocity != 1 {
		t.Errorf("Velocity = %v, want 1", ev.Velocity)
	}
	if ev := p.Press(-1); ev.Velocity != 0 {
		t.Errorf("Velocity = %v, want 0", ev.Velocity)
	}
	calls := h.audio.getCalls()
	if len(calls) != 2 || calls[0].Gain != 1 || calls[1].Gain != 0 {
		t.Errorf("gains = %+v, want 1 then 0", calls)
	}
}

func TestPress_StartDelayIgnoresPause(t *testing.T) {
	h := newHarness()
	clock := pauseclock.New(nil)
	clock.SetPaused(true)

	p := New(0, []Profile{{Actions: []Action{
		{Kind: KindSample, Clip: "snare", Gain: 1, StartDelay: 300 * time.Millisecond},
	}}}, h.deps())

	p.Press(1)
	h.ticks(2)
	if n := len(h.audio.getCalls()); n != 0 {
		t.Fatalf("dispatched after 0.2s: %d calls", n)
	}
	h.ticks(1)
	if n := len(h.audio.getCalls()); n != 1 {
		t.Errorf("calls after 0.3s wall time (paused) = %d, want 1", n)
	}
	if !clock.IsPaused() {
		t.Error("clock unexpectedly resumed")
	}
}

func TestPress_NilAudioDropsSamples(t *testing.T) {
	h := newHarness()
	deps := h.deps()
	deps.Audio = nil
	p := New(0, []Profile{{Actions: []Action{
		{Kind: KindSample, Clip: "kick", Gain: 1},
		{Kind: KindTransport, Transport: TransportPlay},
		{Kind: KindLight, Slot: 1, Duration: time.Second},
	}}}, deps)

	p.Press(1)

	if n := len(h.lights.getCues()); n != 1 {
		t.Errorf("cues = %d, want 1", n)
	}
}

// ─── Pulse ──────────────────────────────────────────────────────────────────

func TestPulseAt(t *testing.T) {
	tests := []struct {
		at       time.Duration
		want     float64
		wantDone bool
	}{
		{0, 1.0, false},
		{40 * time.Millisecond, 1.03, false},
		{PulseUp, PulseScale, false},
		{PulseUp + 110*time.Millisecond, 1.03, false},
		{PulseUp + PulseDown, RestScale, true},
		{time.Second, RestScale, true},
	}
	for _, tt := range tests {
		got, done := pulseAt(tt.at)
		if math.Abs(got-tt.want) > 1e-9 || done != tt.wantDone {
			t.Errorf("pulseAt(%v) = %v,%v want %v,%v", tt.at, got, done, tt.want, tt.wantDone)
		}
	}
}

func TestPulse_RestartNotStacked(t *testing.T) {
	h := newHarness()
	p := New(4, nil, h.deps())

	p.Press(1)
	p.Press(1)
	p.Press(1)

	if n := h.rt.Len(); n != 1 {
		t.Errorf("live tasks = %d, want 1 pulse", n)
	}

	h.ticks(3)
	if n := h.rt.Len(); n != 0 {
		t.Errorf("live tasks after 0.3s = %d, want 0", n)
	}
	scales := h.feedback.scales[4]
	if scales[len(scales)-1] != RestScale {
		t.Errorf("final scale = %v, want %v", scales[len(scales)-1], RestScale)
	}
}

// ─── Board ──────────────────────────────────────────────────────────────────

func TestBoard_PressRoutesAndNotifies(t *testing.T) {
	h := newHarness()
	b := NewBoard(
		New(1, []Profile{lightProfile("a", 1)}, h.deps()),
		New(0, nil, h.deps()),
		New(1, []Profile{lightProfile("dup", 9)}, h.deps()),
	)

	var events []PressEvent
	b.AddObserver(PressObserverFunc(func(ev PressEvent) { events = append(events, ev) }))

	if err := b.PressFrom(1, 0.7, "api"); err != nil {
		t.Fatalf("PressFrom(1) error = %v", err)
	}
	if err := b.Press(42, 1); !errors.Is(err, ErrPadNotFound) {
		t.Errorf("Press(42) error = %v, want ErrPadNotFound", err)
	}
	if err := b.Release(42); !errors.Is(err, ErrPadNotFound) {
		t.Errorf("Release(42) error = %v, want ErrPadNotFound", err)
	}
	if err := b.Release(1); err != nil {
		t.Errorf("Release(1) error = %v", err)
	}

	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Pad != 1 || events[0].ProfileName != "a" || events[0].Velocity != 0.7 || events[0].Actions != 1 || events[0].Source != "api" {
		t.Errorf("event = %+v", events[0])
	}

	infos := b.Infos()
	if len(infos) != 2 || infos[0].Index != 0 || infos[1].Index != 1 {
		t.Fatalf("Infos() = %+v", infos)
	}
	if infos[1].Cursor != 0 || len(infos[1].Profiles) != 1 || infos[1].Profiles[0] != "a" {
		t.Errorf("Infos()[1] = %+v, want first pad kept with cursor wrapped to 0", infos[1])
	}
}

func TestParseKindAndTransport(t *testing.T) {
	if k, err := ParseKind(" Light "); err != nil || k != KindLight {
		t.Errorf("ParseKind(Light) = %v, %v", k, err)
	}
	if _, err := ParseKind("video"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(video) error = %v, want ErrUnknownKind", err)
	}
	if c, err := ParseTransport("Toggle-Play"); err != nil || c != TransportTogglePlay {
		t.Errorf("ParseTransport(Toggle-Play) = %v, %v", c, err)
	}
	if _, err := ParseTransport("rewind"); !errors.Is(err, ErrUnknownTransport) {
		t.Errorf("ParseTransport(rewind) error = %v, want ErrUnknownTransport", err)
	}
}
