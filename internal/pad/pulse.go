package pad

import "time"

// Press pulse shape: scale up to PulseScale over PulseUp, then back to
// RestScale over PulseDown. The pulse runs on the wall clock.
const (
	RestScale  = 1.0
	PulseScale = 1.06
	PulseUp    = 80 * time.Millisecond
	PulseDown  = 220 * time.Millisecond
)

type pulseTask struct {
	pad     int
	fb      Feedback
	elapsed time.Duration
}

func (t *pulseTask) Step(dt time.Duration) bool {
	t.elapsed += dt
	scale, done := pulseAt(t.elapsed)
	t.fb.SetScale(t.pad, scale)
	return done
}

// pulseAt returns the pulse scale at offset d and whether the pulse is over.
func pulseAt(d time.Duration) (float64, bool) {
	switch {
	case d < PulseUp:
		return RestScale + (PulseScale-RestScale)*float64(d)/float64(PulseUp), false
	case d < PulseUp+PulseDown:
		return PulseScale - (PulseScale-RestScale)*float64(d-PulseUp)/float64(PulseDown), false
	default:
		return RestScale, true
	}
}
