package surface

import (
	"sort"

	"github.com/nerrad567/cuepad-core/internal/palette"
)

// RestScale is the feedback scale of a pad at rest.
const RestScale = 1.0

// PadState is the published view of one pad.
type PadState struct {
	Index      int
	Appearance palette.Appearance
	Base       palette.Appearance
	Scale      float64
}

// Renderer receives pad states whenever they change.
//
// RenderPad is called on the tick loop goroutine and must not block;
// implementations that talk to slow devices queue the update.
type Renderer interface {
	RenderPad(state PadState)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(state PadState)

// RenderPad calls f(state).
func (f RendererFunc) RenderPad(state PadState) { f(state) }

type cell struct {
	state     PadState
	published PadState
	dirty     bool
}

// Surface holds the current and base appearance of every pad in the grid.
//
// Mutations mark pads dirty; Flush publishes each dirty pad whose state
// actually differs from what renderers last saw. A pad set and reset within
// one frame therefore produces no output at all.
//
// Thread Safety: not safe for concurrent use. Owned by the tick loop.
type Surface struct {
	cells     map[int]*cell
	order     []int
	renderers []Renderer
}

// New creates a surface. Each pad's base appearance is captured from its
// initial appearance here, once.
func New(initial map[int]palette.Appearance) *Surface {
	s := &Surface{cells: make(map[int]*cell, len(initial))}
	for idx, a := range initial {
		st := PadState{Index: idx, Appearance: a, Base: a, Scale: RestScale}
		s.cells[idx] = &cell{state: st, published: st}
		s.order = append(s.order, idx)
	}
	sort.Ints(s.order)
	return s
}

// AddRenderer registers a renderer. It does not receive the current state
// until the next Resync.
func (s *Surface) AddRenderer(r Renderer) {
	s.renderers = append(s.renderers, r)
}

// Has reports whether a pad exists.
func (s *Surface) Has(idx int) bool {
	_, ok := s.cells[idx]
	return ok
}

// Indices returns pad indices in ascending order.
func (s *Surface) Indices() []int {
	cpy := make([]int, len(s.order))
	copy(cpy, s.order)
	return cpy
}

// State returns the current state of a pad.
func (s *Surface) State(idx int) (PadState, bool) {
	c, ok := s.cells[idx]
	if !ok {
		return PadState{}, false
	}
	return c.state, true
}

// States returns every pad state in index order.
func (s *Surface) States() []PadState {
	out := make([]PadState, 0, len(s.order))
	for _, idx := range s.order {
		out = append(out, s.cells[idx].state)
	}
	return out
}

// Set changes the current appearance of a pad.
func (s *Surface) Set(idx int, a palette.Appearance) {
	s.update(idx, func(st *PadState) { st.Appearance = a })
}

// SetBase changes both the current and the base appearance of a pad.
func (s *Surface) SetBase(idx int, a palette.Appearance) {
	s.update(idx, func(st *PadState) {
		st.Appearance = a
		st.Base = a
	})
}

// Restore returns a pad to its base appearance.
func (s *Surface) Restore(idx int) {
	s.update(idx, func(st *PadState) { st.Appearance = st.Base })
}

// SetScale sets the feedback scale of a pad.
func (s *Surface) SetScale(idx int, scale float64) {
	s.update(idx, func(st *PadState) { st.Scale = scale })
}

func (s *Surface) update(idx int, fn func(st *PadState)) {
	c, ok := s.cells[idx]
	if !ok {
		return
	}
	fn(&c.state)
	c.dirty = true
}

// Flush publishes changed pads to every renderer, in index order.
func (s *Surface) Flush() {
	for _, idx := range s.order {
		c := s.cells[idx]
		if !c.dirty {
			continue
		}
		c.dirty = false
		if c.state == c.published {
			continue
		}
		c.published = c.state
		for _, r := range s.renderers {
			r.RenderPad(c.state)
		}
	}
}

// Resync publishes every pad regardless of change, e.g. after a device
// reconnects.
func (s *Surface) Resync() {
	for _, idx := range s.order {
		c := s.cells[idx]
		c.dirty = false
		c.published = c.state
		for _, r := range s.renderers {
			r.RenderPad(c.state)
		}
	}
}
