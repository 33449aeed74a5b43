// Package show loads a performance set from YAML: the palette, the cue
// sequences and every pad's profiles.
//
// Example:
//
//	name: "Demo"
//	grid:
//	  size: 64          # pads 0..63 exist even without profiles
//	  base: "#000000"
//	palette:
//	  - { name: white, color: "#ffffff" }
//	  - { name: red,   color: "#ff0000" }
//	sequences:
//	  chase:
//	    steps:
//	      - { pad: 3, slot: 1, duration: 1.0 }
//	      - { pad: 4, slot: 1, duration: 1.0, delay: 0.2 }
//	pads:
//	  - index: 0
//	    profiles:
//	      - name: "Step 1"
//	        actions:
//	          - { type: sample, clip: kick, gain: 0.9 }
//	          - { type: light, slot: 1, duration: 0.25 }
//	          - { type: state, sequence: chase, loop_state: true }
//
// All times are seconds. Gains default to 1.0 and light durations to 0.25s.
package show
