package audio

import (
	"sort"
	"sync"

	"github.com/gopxl/beep"

	"github.com/nerrad567/cuepad-core/internal/pad"
)

// DefaultPoolSize is the number of one-shot sources.
const DefaultPoolSize = 8

// Music states reported by Status.
const (
	MusicIdle    = "idle"
	MusicPlaying = "playing"
	MusicPaused  = "paused"
)

// Logger is the logging interface used by the hub.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options configures a Hub.
type Options struct {
	// PoolSize is the number of one-shot sources (DefaultPoolSize if <= 0).
	PoolSize int

	// MusicClip names the clip transport commands control. Empty disables
	// transport.
	MusicClip string

	// Locker guards hub state against the output goroutine. Use SpeakerLock
	// when playing through beep/speaker. Defaults to a private mutex.
	Locker sync.Locker

	Logger Logger
}

// Status is a snapshot of the hub.
type Status struct {
	Voices int      `json:"voices"`
	Loops  []string `json:"loops"`
	Music  string   `json:"music"`
	Paused bool     `json:"paused"`
}

// Hub is the audio collaborator: one-shot clips from a fixed pool, toggled
// loopers keyed by clip name, and a background music source driven by
// transport commands. All sources feed one beep.Mixer.
//
// Thread Safety: all methods are safe for concurrent use.
type Hub struct {
	mu        sync.Locker
	bank      *Bank
	mixer     *beep.Mixer
	pool      []*source
	loops     map[string]*source
	music     *source
	musicClip string
	paused    bool
	logger    Logger
}

// NewHub creates a hub playing clips from bank.
func NewHub(bank *Bank, opts Options) *Hub {
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.Locker == nil {
		opts.Locker = &sync.Mutex{}
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}

	h := &Hub{
		mu:        opts.Locker,
		bank:      bank,
		mixer:     &beep.Mixer{},
		loops:     make(map[string]*source),
		music:     &source{},
		musicClip: opts.MusicClip,
		logger:    opts.Logger,
	}
	for i := 0; i < opts.PoolSize; i++ {
		src := &source{}
		h.pool = append(h.pool, src)
		h.mixer.Add(src)
	}
	h.mixer.Add(h.music)
	return h
}

// Streamer returns the mixed output of every source.
func (h *Hub) Streamer() beep.Streamer { return h.mixer }

// OneShot plays a clip once on a free pool source, or on the first source if
// all are busy. Ignored while the global pause is engaged.
func (h *Hub) OneShot(clip string, gain float64, affectable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.paused {
		return
	}
	seeker, ok := h.bank.streamer(clip)
	if !ok {
		h.logger.Debug("unknown clip", "clip", clip)
		return
	}

	src := h.pool[0]
	for _, s := range h.pool {
		if !s.active() {
			src = s
			break
		}
	}
	src.start(clip, seeker, false, gain, affectable)
}

// ToggleLoop stops the looper for clip if it is playing, otherwise starts it.
// Ignored while the global pause is engaged.
func (h *Hub) ToggleLoop(clip string, gain float64, affectable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.paused {
		return
	}

	src, exists := h.loops[clip]
	if exists && src.active() {
		src.stop()
		h.logger.Debug("loop stopped", "clip", clip)
		return
	}

	seeker, ok := h.bank.streamer(clip)
	if !ok {
		h.logger.Debug("unknown clip", "clip", clip)
		return
	}
	if !exists {
		src = &source{}
		h.loops[clip] = src
		h.mixer.Add(src)
	}
	src.start(clip, seeker, true, gain, affectable)
	h.logger.Debug("loop started", "clip", clip)
}

// Transport applies a transport command to the background music.
func (h *Hub) Transport(cmd pad.TransportCommand) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.musicClip == "" || !h.bank.Has(h.musicClip) {
		h.logger.Debug("transport ignored, no music clip", "command", cmd)
		return
	}

	m := h.music
	switch cmd {
	case pad.TransportPlay:
		h.playMusic(false)
	case pad.TransportPause:
		if m.active() {
			m.stopped = true
			m.applyPause()
		}
	case pad.TransportTogglePlay:
		if m.active() && !m.stopped {
			m.stopped = true
			m.applyPause()
		} else {
			h.playMusic(false)
		}
	case pad.TransportStop:
		m.stop()
	case pad.TransportRestart:
		h.playMusic(true)
	default:
		h.logger.Warn("unknown transport command", "command", cmd)
	}
}

// playMusic resumes the music, starting it from the top if it is idle or
// restart is set. Caller holds h.mu.
func (h *Hub) playMusic(restart bool) {
	m := h.music
	if m.active() && !restart {
		m.stopped = false
		m.applyPause()
		return
	}
	seeker, ok := h.bank.streamer(h.musicClip)
	if !ok {
		return
	}
	m.start(h.musicClip, seeker, true, 1, false)
	m.held = h.paused
	m.applyPause()
}

// SetGlobalPause freezes or resumes every source.
func (h *Hub) SetGlobalPause(paused bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.paused = paused
	h.eachSource(func(s *source) {
		s.held = paused
		s.applyPause()
	})
	h.logger.Debug("audio global pause", "paused", paused)
}

// AdjustVolume shifts the gain of every playing affectable source by delta,
// clamped to 0..1.
//
// Returns:
//   - int: Number of sources adjusted
func (h *Hub) AdjustVolume(delta float64) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	h.eachSource(func(s *source) {
		if s.active() && s.affectable {
			s.setGain(s.gain + delta)
			count++
		}
	})
	return count
}

// Status returns a snapshot of what is playing.
func (h *Hub) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()

	st := Status{Paused: h.paused, Loops: []string{}, Music: MusicIdle}
	for _, s := range h.pool {
		if s.active() {
			st.Voices++
		}
	}
	for clip, s := range h.loops {
		if s.active() {
			st.Loops = append(st.Loops, clip)
		}
	}
	sort.Strings(st.Loops)
	if h.music.active() {
		st.Music = MusicPlaying
		if h.music.stopped {
			st.Music = MusicPaused
		}
	}
	return st
}

func (h *Hub) eachSource(fn func(s *source)) {
	for _, s := range h.pool {
		fn(s)
	}
	for _, s := range h.loops {
		fn(s)
	}
	fn(h.music)
}
