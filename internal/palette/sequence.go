package palette

import "time"

// MinDuration is the shortest light-cue duration. Shorter or negative
// durations are raised to it; negative delays are raised to zero.
const MinDuration = 10 * time.Millisecond

// Step is one cue inside a sequence.
type Step struct {
	Pad      int
	Slot     int
	Duration time.Duration
	Delay    time.Duration
	Persist  bool
}

// Clamped returns the step with its timing clamped.
func (s Step) Clamped() Step {
	s.Duration, s.Delay = ClampTiming(s.Duration, s.Delay)
	return s
}

// End returns the offset at which the clamped step has finished.
func (s Step) End() time.Duration {
	c := s.Clamped()
	return c.Delay + c.Duration
}

// ClampTiming applies the cue timing limits to a duration and delay.
func ClampTiming(duration, delay time.Duration) (time.Duration, time.Duration) {
	if duration < MinDuration {
		duration = MinDuration
	}
	if delay < 0 {
		delay = 0
	}
	return duration, delay
}

// Sequence is a named, ordered list of steps, possibly spanning many pads.
type Sequence struct {
	Name  string
	Steps []Step
}

// MaxEnd returns the latest step end offset, or 0 for an empty sequence.
// A looping sequence waits this long between iterations.
func (s *Sequence) MaxEnd() time.Duration {
	if s == nil {
		return 0
	}
	var maxEnd time.Duration
	for _, step := range s.Steps {
		if end := step.End(); end > maxEnd {
			maxEnd = end
		}
	}
	return maxEnd
}
