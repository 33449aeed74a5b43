package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Appearance is the visual state shown on a pad: a named colour.
// Appearances are comparable with ==.
type Appearance struct {
	Name  string
	Color colorful.Color
}

// Off is the unlit appearance.
var Off = Appearance{Name: "off"}

// ParseAppearance builds an appearance from a "#rrggbb" colour.
func ParseAppearance(name, hex string) (Appearance, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Appearance{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, hex, err)
	}
	return Appearance{Name: name, Color: c}, nil
}

// MustAppearance is ParseAppearance for literals known to be valid.
func MustAppearance(name, hex string) Appearance {
	a, err := ParseAppearance(name, hex)
	if err != nil {
		panic(err)
	}
	return a
}

// Hex returns the colour as "#rrggbb".
func (a Appearance) Hex() string {
	return a.Color.Clamped().Hex()
}

// RGB255 returns the colour as 8-bit channels.
func (a Appearance) RGB255() (r, g, b uint8) {
	return a.Color.Clamped().RGB255()
}

// String returns the appearance name, or its hex colour if unnamed.
func (a Appearance) String() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Hex()
}

// Palette is an indexed list of appearances, addressed by slot number.
// It is immutable after construction.
type Palette struct {
	slots []Appearance
}

// New creates a palette from the given slots, in order.
func New(slots ...Appearance) *Palette {
	cpy := make([]Appearance, len(slots))
	copy(cpy, slots)
	return &Palette{slots: cpy}
}

// Len returns the number of slots.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}

// Resolve returns the appearance for slot.
//
// A slot outside the palette falls back to slot 0. The second result is false
// only when the palette is empty, in which case callers leave the pad as is.
func (p *Palette) Resolve(slot int) (Appearance, bool) {
	if p.Len() == 0 {
		return Appearance{}, false
	}
	if slot < 0 || slot >= len(p.slots) {
		slot = 0
	}
	return p.slots[slot], true
}

// Slots returns a copy of the palette contents.
func (p *Palette) Slots() []Appearance {
	if p == nil {
		return nil
	}
	cpy := make([]Appearance, len(p.slots))
	copy(cpy, p.slots)
	return cpy
}
