package audio

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/nerrad567/cuepad-core/internal/pad"
)

const testRate = beep.SampleRate(44100)

// level emits a constant sample value for a fixed number of samples.
type level struct {
	v    float64
	left int
}

func (l *level) Stream(samples [][2]float64) (int, bool) {
	if l.left <= 0 {
		return 0, false
	}
	n := len(samples)
	if n > l.left {
		n = l.left
	}
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{l.v, l.v}
	}
	l.left -= n
	return n, true
}

func (l *level) Err() error { return nil }

func testFormat() beep.Format {
	return beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
}

func newTestHub(t *testing.T, opts Options) *Hub {
	t.Helper()
	bank := NewBank(testRate)
	bank.Add("tone", &level{v: 0.5, left: 100}, testFormat())
	bank.Add("other", &level{v: 0.5, left: 100}, testFormat())
	bank.Add("music", &level{v: 0.25, left: 400}, testFormat())
	return NewHub(bank, opts)
}

// pull streams n samples from the hub and returns the left channel.
func pull(h *Hub, n int) []float64 {
	buf := make([][2]float64, n)
	filled, _ := h.Streamer().Stream(buf)
	out := make([]float64, filled)
	for i := 0; i < filled; i++ {
		out[i] = buf[i][0]
	}
	return out
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-3 }

func TestOneShot_PlaysWithGainThenFrees(t *testing.T) {
	h := newTestHub(t, Options{})

	h.OneShot("tone", 0.5, false)
	if st := h.Status(); st.Voices != 1 {
		t.Fatalf("Voices = %d, want 1", st.Voices)
	}

	out := pull(h, 50)
	if !approx(out[0], 0.25) {
		t.Errorf("sample = %v, want 0.25", out[0])
	}

	out = pull(h, 100)
	if !approx(out[49], 0.25) || !approx(out[50], 0) {
		t.Errorf("clip end: %v then %v, want 0.25 then 0", out[49], out[50])
	}
	if st := h.Status(); st.Voices != 0 {
		t.Errorf("Voices after clip end = %d, want 0", st.Voices)
	}
}

func TestOneShot_PoolFallback(t *testing.T) {
	h := newTestHub(t, Options{PoolSize: 2})

	h.OneShot("tone", 1, false)
	h.OneShot("tone", 1, false)
	h.OneShot("other", 1, false)

	if st := h.Status(); st.Voices != 2 {
		t.Errorf("Voices = %d, want 2", st.Voices)
	}
	if h.pool[0].clip != "other" {
		t.Errorf("pool[0] clip = %q, want other (fallback replaces first source)", h.pool[0].clip)
	}
}

func TestOneShot_UnknownClip(t *testing.T) {
	h := newTestHub(t, Options{})
	h.OneShot("nope", 1, false)
	if st := h.Status(); st.Voices != 0 {
		t.Errorf("Voices = %d, want 0", st.Voices)
	}
}

func TestToggleLoop(t *testing.T) {
	h := newTestHub(t, Options{})

	h.ToggleLoop("tone", 1, false)
	st := h.Status()
	if len(st.Loops) != 1 || st.Loops[0] != "tone" {
		t.Fatalf("Loops = %v, want [tone]", st.Loops)
	}

	out := pull(h, 250)
	if !approx(out[249], 0.5) {
		t.Errorf("looping sample past clip end = %v, want 0.5", out[249])
	}

	h.ToggleLoop("tone", 1, false)
	if st := h.Status(); len(st.Loops) != 0 {
		t.Errorf("Loops after second toggle = %v, want none", st.Loops)
	}
	if out := pull(h, 10); !approx(out[0], 0) {
		t.Errorf("sample after stop = %v, want 0", out[0])
	}

	h.ToggleLoop("tone", 1, false)
	if st := h.Status(); len(st.Loops) != 1 {
		t.Errorf("Loops after third toggle = %v, want [tone]", st.Loops)
	}
}

func TestGlobalPause(t *testing.T) {
	h := newTestHub(t, Options{})
	h.ToggleLoop("tone", 1, false)

	h.SetGlobalPause(true)
	if out := pull(h, 10); !approx(out[0], 0) {
		t.Errorf("sample while paused = %v, want 0", out[0])
	}

	h.OneShot("other", 1, false)
	h.ToggleLoop("tone", 1, false)
	st := h.Status()
	if st.Voices != 0 {
		t.Errorf("OneShot while paused started a voice")
	}
	if len(st.Loops) != 1 {
		t.Errorf("ToggleLoop while paused changed loops: %v", st.Loops)
	}
	if !st.Paused {
		t.Error("Status().Paused = false")
	}

	h.SetGlobalPause(false)
	if out := pull(h, 10); !approx(out[0], 0.5) {
		t.Errorf("sample after resume = %v, want 0.5", out[0])
	}
}

func TestTransport(t *testing.T) {
	h := newTestHub(t, Options{MusicClip: "music"})

	steps := []struct {
		cmd  pad.TransportCommand
		want string
	}{
		{pad.TransportPlay, MusicPlaying},
		{pad.TransportPause, MusicPaused},
		{pad.TransportTogglePlay, MusicPlaying},
		{pad.TransportTogglePlay, MusicPaused},
		{pad.TransportRestart, MusicPlaying},
		{pad.TransportStop, MusicIdle},
		{pad.TransportTogglePlay, MusicPlaying},
	}
	for i, s := range steps {
		h.Transport(s.cmd)
		if got := h.Status().Music; got != s.want {
			t.Errorf("step %d %s: Music = %q, want %q", i, s.cmd, got, s.want)
		}
	}

	if out := pull(h, 10); !approx(out[0], 0.25) {
		t.Errorf("music sample = %v, want 0.25", out[0])
	}
}

func TestTransport_WithoutMusicClip(t *testing.T) {
	h := newTestHub(t, Options{})
	h.Transport(pad.TransportPlay)
	if got := h.Status().Music; got != MusicIdle {
		t.Errorf("Music = %q, want idle", got)
	}
}

func TestTransport_PlayWhilePausedStaysHeld(t *testing.T) {
	h := newTestHub(t, Options{MusicClip: "music"})
	h.SetGlobalPause(true)
	h.Transport(pad.TransportPlay)

	if out := pull(h, 10); !approx(out[0], 0) {
		t.Errorf("music audible during global pause: %v", out[0])
	}
	h.SetGlobalPause(false)
	if out := pull(h, 10); !approx(out[0], 0.25) {
		t.Errorf("music after resume = %v, want 0.25", out[0])
	}
}

func TestAdjustVolume_AffectableOnly(t *testing.T) {
	h := newTestHub(t, Options{})
	h.ToggleLoop("tone", 1, true)
	h.ToggleLoop("other", 1, false)

	if n := h.AdjustVolume(-0.5); n != 1 {
		t.Fatalf("AdjustVolume() = %d, want 1", n)
	}
	if out := pull(h, 10); !approx(out[0], 0.25+0.5) {
		t.Errorf("mixed sample = %v, want 0.75", out[0])
	}

	h.AdjustVolume(-2)
	if out := pull(h, 10); !approx(out[0], 0.5) {
		t.Errorf("mixed sample after silencing = %v, want 0.5", out[0])
	}
}

func TestBank_LoadDir(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "kick.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := wav.Encode(f, &level{v: 0.5, left: 200}, testFormat()); err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}
	f.Close()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	bank := NewBank(testRate)
	n, err := bank.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if n != 1 || !bank.Has("kick") {
		t.Errorf("LoadDir() = %d, names %v, want [kick]", n, bank.Names())
	}
	if bank.Len("kick") != 200 {
		t.Errorf("Len(kick) = %d, want 200", bank.Len("kick"))
	}
}

func TestBank_LoadWAVInvalid(t *testing.T) {
	bank := NewBank(testRate)
	err := bank.LoadWAV("junk", bytes.NewReader([]byte("definitely not a wav file")))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("LoadWAV() error = %v, want ErrDecode", err)
	}
}

func TestBank_Resamples(t *testing.T) {
	bank := NewBank(testRate)
	half := beep.Format{SampleRate: testRate / 2, NumChannels: 2, Precision: 2}
	bank.Add("slow", &level{v: 0.5, left: 1000}, half)

	if got := bank.Len("slow"); got < 1900 || got > 2100 {
		t.Errorf("Len(slow) = %d, want about 2000", got)
	}
}
