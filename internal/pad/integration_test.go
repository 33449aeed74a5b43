package pad

import (
	"testing"
	"time"

	"github.com/nerrad567/cuepad-core/internal/lightcue"
	"github.com/nerrad567/cuepad-core/internal/palette"
	"github.com/nerrad567/cuepad-core/internal/pauseclock"
	"github.com/nerrad567/cuepad-core/internal/surface"
	"github.com/nerrad567/cuepad-core/internal/tick"
)

// Exercises pads against the real scheduler and surface.

func TestIntegration_PressDrivesSurface(t *testing.T) {
	rt := tick.New(0)
	clock := pauseclock.New(nil)
	surf := surface.New(map[int]palette.Appearance{0: palette.Off, 1: palette.Off, 2: palette.Off})
	pal := palette.New(
		palette.MustAppearance("white", "#ffffff"),
		palette.MustAppearance("red", "#ff0000"),
	)
	sched := lightcue.New(rt, surf, pal, clock)

	chase := &palette.Sequence{Name: "chase", Steps: []palette.Step{
		{Pad: 1, Slot: 1, Duration: 200 * time.Millisecond},
		{Pad: 2, Slot: 1, Duration: 200 * time.Millisecond, Delay: 200 * time.Millisecond},
	}}

	deps := Deps{Runtime: rt, Lights: sched, Feedback: surf}
	p := New(0, []Profile{
		{Name: "Step 1", Actions: []Action{
			{Kind: KindLight, Slot: 1, Duration: 250 * time.Millisecond},
			{Kind: KindState, Sequence: chase, LoopState: true},
		}},
		{Name: "Step 2"},
	}, deps)
	board := NewBoard(p)

	if err := board.Press(0, 1); err != nil {
		t.Fatalf("Press() error = %v", err)
	}

	st0, _ := surf.State(0)
	st1, _ := surf.State(1)
	if st0.Appearance.Name != "red" || st1.Appearance.Name != "red" {
		t.Fatalf("after press: pad0=%v pad1=%v, want red/red", st0.Appearance, st1.Appearance)
	}
	if !sched.HasLoop(0) {
		t.Fatal("sequence not running after press")
	}

	rt.Tick(100 * time.Millisecond)
	st0, _ = surf.State(0)
	if st0.Scale <= surface.RestScale {
		t.Errorf("pad 0 scale = %v during pulse, want > 1", st0.Scale)
	}

	// second press lands on the empty profile and stops the sequence
	if err := board.Press(0, 1); err != nil {
		t.Fatalf("Press() error = %v", err)
	}
	if sched.HasLoop(0) {
		t.Error("second press did not stop the sequence")
	}

	for i := 0; i < 10; i++ {
		rt.Tick(100 * time.Millisecond)
	}
	for _, idx := range []int{0, 1, 2} {
		st, _ := surf.State(idx)
		if st.Appearance != palette.Off {
			t.Errorf("pad %d = %v after 1s, want off", idx, st.Appearance)
		}
		if st.Scale != surface.RestScale {
			t.Errorf("pad %d scale = %v after 1s, want rest", idx, st.Scale)
		}
	}
	if sched.ActiveCues() != 0 {
		t.Errorf("ActiveCues() = %d, want 0", sched.ActiveCues())
	}
}
