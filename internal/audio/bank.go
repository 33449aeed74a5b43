package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is the beep.Resample quality used when a clip's sample
// rate differs from the output rate.
const resampleQuality = 4

// Bank holds decoded clips in memory, all at the output sample rate.
//
// Thread Safety: populate the bank before handing it to a Hub; lookups are
// read-only afterwards.
type Bank struct {
	rate  beep.SampleRate
	clips map[string]*beep.Buffer
}

// NewBank creates an empty bank at the given output rate.
func NewBank(rate beep.SampleRate) *Bank {
	return &Bank{rate: rate, clips: make(map[string]*beep.Buffer)}
}

// Rate returns the bank's sample rate.
func (b *Bank) Rate() beep.SampleRate { return b.rate }

// Add buffers a streamer under name, resampling it if needed. An existing
// clip of the same name is replaced.
func (b *Bank) Add(name string, s beep.Streamer, format beep.Format) {
	if format.SampleRate != b.rate {
		s = beep.Resample(resampleQuality, format.SampleRate, b.rate, s)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: b.rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	b.clips[name] = buf
}

// LoadWAV decodes a WAV stream and adds it under name.
func (b *Bank) LoadWAV(name string, r io.Reader) error {
	s, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}
	defer s.Close()
	b.Add(name, s, format)
	return nil
}

// LoadDir adds every *.wav file in dir, named by its base name without
// extension.
//
// Returns:
//   - int: Number of clips loaded
//   - error: If the directory cannot be read or a file fails to decode
func (b *Bank) LoadDir(dir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.wav"))
	if err != nil {
		return 0, fmt.Errorf("listing clips: %w", err)
	}
	sort.Strings(matches)

	loaded := 0
	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := b.loadFile(name, path); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}

func (b *Bank) loadFile(name, path string) error {
	f, err := os.Open(path) //nolint:gosec // clip paths come from the operator's config
	if err != nil {
		return fmt.Errorf("opening clip %s: %w", name, err)
	}
	defer f.Close()
	return b.LoadWAV(name, f)
}

// Has reports whether a clip exists.
func (b *Bank) Has(name string) bool {
	_, ok := b.clips[name]
	return ok
}

// Names returns clip names in sorted order.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.clips))
	for name := range b.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the length of a clip in samples, or 0 if unknown.
func (b *Bank) Len(name string) int {
	buf, ok := b.clips[name]
	if !ok {
		return 0
	}
	return buf.Len()
}

func (b *Bank) streamer(name string) (beep.StreamSeeker, bool) {
	buf, ok := b.clips[name]
	if !ok {
		return nil, false
	}
	return buf.Streamer(0, buf.Len()), true
}
