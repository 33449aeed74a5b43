package surface

import (
	"testing"

	"github.com/nerrad567/cuepad-core/internal/palette"
)

var (
	red   = palette.MustAppearance("red", "#ff0000")
	green = palette.MustAppearance("green", "#00ff00")
)

type recorder struct {
	states []PadState
}

func (r *recorder) RenderPad(st PadState) { r.states = append(r.states, st) }

func newTestSurface() (*Surface, *recorder) {
	s := New(map[int]palette.Appearance{2: palette.Off, 0: palette.Off, 1: red})
	rec := &recorder{}
	s.AddRenderer(rec)
	return s, rec
}

func TestNew_CapturesBase(t *testing.T) {
	s, _ := newTestSurface()

	st, ok := s.State(1)
	if !ok {
		t.Fatal("State(1) ok = false")
	}
	if st.Appearance != red || st.Base != red {
		t.Errorf("State(1) = %v/%v, want red/red", st.Appearance, st.Base)
	}
	if st.Scale != RestScale {
		t.Errorf("Scale = %v, want %v", st.Scale, RestScale)
	}

	idx := s.Indices()
	if len(idx) != 3 || idx[0] != 0 || idx[1] != 1 || idx[2] != 2 {
		t.Errorf("Indices() = %v, want [0 1 2]", idx)
	}
}

func TestSetAndRestore(t *testing.T) {
	s, _ := newTestSurface()

	s.Set(0, green)
	st, _ := s.State(0)
	if st.Appearance != green || st.Base != palette.Off {
		t.Errorf("after Set: %v/%v, want green/off", st.Appearance, st.Base)
	}

	s.Restore(0)
	st, _ = s.State(0)
	if st.Appearance != palette.Off {
		t.Errorf("after Restore: %v, want off", st.Appearance)
	}

	s.SetBase(0, green)
	s.Restore(0)
	st, _ = s.State(0)
	if st.Appearance != green || st.Base != green {
		t.Errorf("after SetBase+Restore: %v/%v, want green/green", st.Appearance, st.Base)
	}
}

func TestUnknownPadIgnored(t *testing.T) {
	s, rec := newTestSurface()
	s.Set(99, green)
	s.Flush()

	if s.Has(99) {
		t.Error("Has(99) = true")
	}
	if len(rec.states) != 0 {
		t.Errorf("renders = %d, want 0", len(rec.states))
	}
}

func TestFlush_Coalesces(t *testing.T) {
	s, rec := newTestSurface()

	// set then reset within a frame publishes nothing
	s.Set(0, green)
	s.Restore(0)
	s.Flush()
	if len(rec.states) != 0 {
		t.Fatalf("renders after set+restore = %d, want 0", len(rec.states))
	}

	s.Set(0, green)
	s.Set(0, red)
	s.Flush()
	if len(rec.states) != 1 {
		t.Fatalf("renders = %d, want 1", len(rec.states))
	}
	if rec.states[0].Index != 0 || rec.states[0].Appearance != red {
		t.Errorf("rendered %+v, want pad 0 red", rec.states[0])
	}

	s.Flush()
	if len(rec.states) != 1 {
		t.Errorf("renders after idle flush = %d, want 1", len(rec.states))
	}
}

func TestResync_PublishesAll(t *testing.T) {
	s, rec := newTestSurface()
	s.SetScale(2, 1.06)
	s.Resync()

	if len(rec.states) != 3 {
		t.Fatalf("renders = %d, want 3", len(rec.states))
	}
	if rec.states[2].Scale != 1.06 {
		t.Errorf("pad 2 scale = %v, want 1.06", rec.states[2].Scale)
	}

	s.Flush()
	if len(rec.states) != 3 {
		t.Errorf("Flush after Resync rendered again: %d", len(rec.states))
	}
}

func TestPadState_View(t *testing.T) {
	s, _ := newTestSurface()
	s.Set(0, green)
	s.SetScale(0, 1.06)

	st, _ := s.State(0)
	v := st.View()
	want := PadView{Index: 0, Appearance: "green", Color: "#00ff00", Base: "off", BaseColor: "#000000", Scale: 1.06}
	if v != want {
		t.Errorf("View() = %+v, want %+v", v, want)
	}
}
