package pad

import "sort"

// PressObserver is notified after every handled press. It runs on the tick
// loop and must not block.
type PressObserver interface {
	PadPressed(ev PressEvent)
}

// PressObserverFunc adapts a function to PressObserver.
type PressObserverFunc func(ev PressEvent)

// PadPressed calls f(ev).
func (f PressObserverFunc) PadPressed(ev PressEvent) { f(ev) }

// Board routes press and release input to pads by index.
//
// Thread Safety: not safe for concurrent use. Owned by the tick loop.
type Board struct {
	pads      map[int]*Pad
	order     []int
	observers []PressObserver
	logger    Logger
}

// NewBoard creates a board. If two pads share an index the first one wins.
func NewBoard(pads ...*Pad) *Board {
	b := &Board{
		pads:   make(map[int]*Pad, len(pads)),
		logger: noopLogger{},
	}
	for _, p := range pads {
		if _, exists := b.pads[p.index]; exists {
			continue
		}
		b.pads[p.index] = p
		b.order = append(b.order, p.index)
	}
	sort.Ints(b.order)
	return b
}

// SetLogger sets the logger for the board.
func (b *Board) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	b.logger = logger
}

// AddObserver registers a press observer.
func (b *Board) AddObserver(o PressObserver) {
	b.observers = append(b.observers, o)
}

// Pad returns the pad at idx.
func (b *Board) Pad(idx int) (*Pad, bool) {
	p, ok := b.pads[idx]
	return p, ok
}

// Len returns the number of pads.
func (b *Board) Len() int { return len(b.pads) }

// Infos returns a summary of every pad in index order.
func (b *Board) Infos() []Info {
	out := make([]Info, 0, len(b.order))
	for _, idx := range b.order {
		out = append(out, b.pads[idx].Info())
	}
	return out
}

// Press presses the pad at idx with no source attribution.
func (b *Board) Press(idx int, velocity float64) error {
	return b.PressFrom(idx, velocity, "")
}

// PressFrom presses the pad at idx and tags the event with the input source.
//
// Returns:
//   - error: ErrPadNotFound for an unknown index (the press is dropped)
func (b *Board) PressFrom(idx int, velocity float64, source string) error {
	p, ok := b.pads[idx]
	if !ok {
		b.logger.Debug("press on unknown pad ignored", "pad", idx, "source", source)
		return ErrPadNotFound
	}
	ev := p.Press(velocity)
	ev.Source = source
	for _, o := range b.observers {
		o.PadPressed(ev)
	}
	return nil
}

// Release releases the pad at idx.
func (b *Board) Release(idx int) error {
	p, ok := b.pads[idx]
	if !ok {
		return ErrPadNotFound
	}
	p.Release()
	return nil
}
