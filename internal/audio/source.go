package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// source is a permanent mixer input that plays at most one clip at a time.
// When idle it streams silence, so it never leaves the mixer.
type source struct {
	clip       string
	ctrl       *beep.Ctrl
	vol        *effects.Volume
	seeker     beep.StreamSeeker
	gain       float64
	affectable bool
	stopped    bool // paused by transport
	held       bool // paused by the global pause
}

// start replaces whatever the source was playing.
func (s *source) start(clip string, seeker beep.StreamSeeker, loop bool, gain float64, affectable bool) {
	var stream beep.Streamer = seeker
	if loop {
		stream = beep.Loop(-1, seeker)
	}
	s.clip = clip
	s.seeker = seeker
	s.affectable = affectable
	s.stopped = false
	s.vol = &effects.Volume{Streamer: stream, Base: 2}
	s.ctrl = &beep.Ctrl{Streamer: s.vol}
	s.setGain(gain)
	s.applyPause()
}

func (s *source) stop() {
	s.clip = ""
	s.ctrl = nil
	s.vol = nil
	s.seeker = nil
	s.stopped = false
}

func (s *source) active() bool { return s.ctrl != nil }

// audible reports whether the source is producing sound right now.
func (s *source) audible() bool { return s.ctrl != nil && !s.ctrl.Paused }

func (s *source) setGain(gain float64) {
	s.gain = clampGain(gain)
	if s.vol == nil {
		return
	}
	if s.gain == 0 {
		s.vol.Silent = true
		s.vol.Volume = 0
		return
	}
	s.vol.Silent = false
	s.vol.Volume = math.Log2(s.gain)
}

func (s *source) applyPause() {
	if s.ctrl != nil {
		s.ctrl.Paused = s.stopped || s.held
	}
}

// Stream implements beep.Streamer.
func (s *source) Stream(samples [][2]float64) (int, bool) {
	n := 0
	if s.ctrl != nil {
		var ok bool
		n, ok = s.ctrl.Stream(samples)
		if !ok || n < len(samples) {
			s.stop()
		}
	}
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (s *source) Err() error { return nil }

func clampGain(g float64) float64 {
	switch {
	case g < 0 || math.IsNaN(g):
		return 0
	case g > 1:
		return 1
	default:
		return g
	}
}
