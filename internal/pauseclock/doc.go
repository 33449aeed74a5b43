// Package pauseclock holds the single global pause flag.
//
// Light-cue waits consult the clock every frame and stop accumulating time
// while it is paused. The audio hub is notified of each transition so that
// playing sources freeze and resume together with the lights.
package pauseclock
