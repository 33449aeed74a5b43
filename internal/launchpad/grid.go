package launchpad

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/nerrad567/cuepad-core/internal/palette"
)

// GridSize is the number of rows and columns on the main grid.
const GridSize = 8

// NoteToIndex converts a programmer-mode note to a pad index.
// Notes outside the 8x8 grid return false.
func NoteToIndex(note uint8) (int, bool) {
	row := int(note/10) - 1 // 0 = bottom
	col := int(note%10) - 1
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return 0, false
	}
	return (GridSize-1-row)*GridSize + col, true
}

// IndexToNote converts a pad index to its programmer-mode note.
func IndexToNote(idx int) (uint8, bool) {
	if idx < 0 || idx >= GridSize*GridSize {
		return 0, false
	}
	row := GridSize - 1 - idx/GridSize
	col := idx % GridSize
	return uint8((row+1)*10 + col + 1), true
}

type swatch struct {
	velocity uint8
	color    colorful.Color
}

func hexSwatch(velocity uint8, hex string) swatch {
	c, _ := colorful.Hex(hex) //nolint:errcheck // literals below are valid
	return swatch{velocity: velocity, color: c}
}

// Approximate colours of the Launchpad X velocity palette.
var swatches = []swatch{
	hexSwatch(0, "#000000"),
	hexSwatch(1, "#1e1e1e"),
	hexSwatch(2, "#7f7f7f"),
	hexSwatch(3, "#ffffff"),
	hexSwatch(5, "#ff0000"),
	hexSwatch(7, "#590000"),
	hexSwatch(9, "#ff6400"),
	hexSwatch(11, "#5a2800"),
	hexSwatch(13, "#ffc800"),
	hexSwatch(15, "#595900"),
	hexSwatch(17, "#00b400"),
	hexSwatch(19, "#004c00"),
	hexSwatch(21, "#00ff00"),
	hexSwatch(33, "#00ffff"),
	hexSwatch(37, "#00c8c8"),
	hexSwatch(41, "#0064ff"),
	hexSwatch(43, "#283c78"),
	hexSwatch(45, "#0000ff"),
	hexSwatch(49, "#9600c8"),
	hexSwatch(53, "#ff00ff"),
	hexSwatch(56, "#ff5078"),
	hexSwatch(84, "#ff9632"),
	hexSwatch(87, "#96ff64"),
}

// Velocity returns the palette velocity closest to the appearance colour.
// The unlit appearance maps to 0.
func Velocity(a palette.Appearance) uint8 {
	if a == palette.Off {
		return 0
	}
	best := swatches[0]
	bestDist := a.Color.DistanceLab(best.color)
	for _, s := range swatches[1:] {
		if d := a.Color.DistanceLab(s.color); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best.velocity
}
