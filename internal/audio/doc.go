// Package audio plays pad sounds through gopxl/beep.
//
// The Hub owns three kinds of sources, all mixed into one stream:
//
//   - a fixed pool of one-shot sources (a busy pool reuses the first source)
//   - loopers keyed by clip name, toggled on and off by repeated presses
//   - one background music source driven by transport commands
//
// Clips are decoded once into a Bank from WAV files and resampled to the
// output rate. New one-shots and loop toggles are ignored while the global
// pause is engaged; already playing sources freeze and resume with it.
//
// Usage:
//
//	bank := audio.NewBank(beep.SampleRate(44100))
//	if _, err := bank.LoadDir("clips"); err != nil {
//	    return err
//	}
//	hub := audio.NewHub(bank, audio.Options{MusicClip: "backing", Locker: audio.SpeakerLock()})
//	if err := audio.OpenSpeaker(bank.Rate(), 100*time.Millisecond, hub.Streamer()); err != nil {
//	    return err
//	}
package audio
