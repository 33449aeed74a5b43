package pauseclock

import (
	"sync"
	"testing"
)

type mockNotifier struct {
	mu    sync.Mutex
	calls []bool
}

func (m *mockNotifier) SetGlobalPause(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, paused)
}

func (m *mockNotifier) getCalls() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	cpy := make([]bool, len(m.calls))
	copy(cpy, m.calls)
	return cpy
}

func TestNew_StartsRunning(t *testing.T) {
	c := New(nil)
	if c.IsPaused() {
		t.Error("IsPaused() = true, want false")
	}
}

func TestSetPaused_NotifiesOnTransitionOnly(t *testing.T) {
	n := &mockNotifier{}
	c := New(n)

	steps := []struct {
		set         bool
		wantChanged bool
	}{
		{true, true},
		{true, false},
		{false, true},
		{false, false},
		{true, true},
	}
	for i, s := range steps {
		if got := c.SetPaused(s.set); got != s.wantChanged {
			t.Errorf("step %d: SetPaused(%v) = %v, want %v", i, s.set, got, s.wantChanged)
		}
		if c.IsPaused() != s.set {
			t.Errorf("step %d: IsPaused() = %v, want %v", i, c.IsPaused(), s.set)
		}
	}

	calls := n.getCalls()
	want := []bool{true, false, true}
	if len(calls) != len(want) {
		t.Fatalf("notifier calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestOnChange_Listeners(t *testing.T) {
	c := New(nil)
	var got []bool
	c.OnChange(func(p bool) { got = append(got, p) })

	c.SetPaused(true)
	c.SetPaused(true)
	c.Toggle()

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("listener calls = %v, want [true false]", got)
	}
}

func TestToggle(t *testing.T) {
	c := New(nil)
	if !c.Toggle() {
		t.Error("first Toggle() = false, want true")
	}
	if c.Toggle() {
		t.Error("second Toggle() = true, want false")
	}
}
