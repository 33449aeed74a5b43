package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerLock adapts the global speaker lock to sync.Locker.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// SpeakerLock returns a Locker that serialises with the speaker goroutine.
func SpeakerLock() sync.Locker { return speakerLock{} }

// OpenSpeaker initialises the default output device and starts playing s.
//
// Parameters:
//   - rate: Output sample rate (must match the Bank)
//   - buffer: Output buffer length; larger is safer, smaller is snappier
//   - s: The stream to play, normally Hub.Streamer()
func OpenSpeaker(rate beep.SampleRate, buffer time.Duration, s beep.Streamer) error {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	speaker.Play(s)
	return nil
}

// CloseSpeaker stops playback and releases the output device.
func CloseSpeaker() {
	speaker.Clear()
	speaker.Close()
}
