package tick

import (
	"testing"
	"time"
)

type fakePause struct{ paused bool }

func (f *fakePause) IsPaused() bool { return f.paused }

func TestWait_Advance(t *testing.T) {
	tests := []struct {
		name   string
		target time.Duration
		deltas []time.Duration
		paused []bool
		want   bool
	}{
		{"zero target done immediately", 0, []time.Duration{0}, []bool{false}, true},
		{"accumulates to target", 300 * time.Millisecond, []time.Duration{frame, frame, frame}, []bool{false, false, false}, true},
		{"short of target", 300 * time.Millisecond, []time.Duration{frame, frame}, []bool{false, false}, false},
		{"paused frames do not count", 300 * time.Millisecond, []time.Duration{frame, frame, frame, frame}, []bool{false, true, true, false}, false},
		{"resumes after pause", 200 * time.Millisecond, []time.Duration{frame, frame, frame}, []bool{false, true, false}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePause{}
			w := NewPausableWait(tt.target, p)
			var got bool
			for i, dt := range tt.deltas {
				p.paused = tt.paused[i]
				got = w.Advance(dt)
			}
			if got != tt.want {
				t.Errorf("Advance() = %v, want %v (elapsed %v)", got, tt.want, w.Elapsed())
			}
		})
	}
}

func TestWallWait_IgnoresPause(t *testing.T) {
	w := NewWallWait(200 * time.Millisecond)
	w.Advance(frame)
	if !w.Advance(frame) {
		t.Errorf("Done() = false after 200ms, elapsed %v", w.Elapsed())
	}
}

func TestWait_Reset(t *testing.T) {
	w := NewWallWait(frame)
	w.Advance(150 * time.Millisecond)
	w.Reset(2 * frame)

	if w.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want 0", w.Elapsed())
	}
	if w.Target() != 2*frame {
		t.Errorf("Target() = %v, want %v", w.Target(), 2*frame)
	}
	if w.Done() {
		t.Error("Done() = true after Reset")
	}
}
