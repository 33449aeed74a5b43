package launchpad

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/nerrad567/cuepad-core/internal/infrastructure/config"
	"github.com/nerrad567/cuepad-core/internal/surface"
)

// Source is the press source tag for Launchpad input.
const Source = "launchpad"

// DefaultQueueSize is the LED update buffer.
const DefaultQueueSize = 256

// Novation SysEx bodies (without F0/F7) for the Launchpad X.
var (
	sysexProgrammerMode = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x0E, 0x01}
	sysexLiveMode       = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x0E, 0x00}
	sysexBrightnessMax  = []byte{0x00, 0x20, 0x29, 0x02, 0x0C, 0x08, 0x7F}
)

// Loop hands closures to the tick loop. *tick.Runtime satisfies it.
type Loop interface {
	Post(fn func()) error
}

// Board receives presses. *pad.Board satisfies it. Only called on the loop.
type Board interface {
	PressFrom(idx int, velocity float64, source string) error
	Release(idx int) error
}

// Logger is the logging surface used by the controller.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type ledUpdate struct {
	note     uint8
	velocity uint8
}

// Controller is a connected Launchpad.
type Controller struct {
	loop  Loop
	board Board

	sendMu sync.Mutex
	send   func(midi.Message) error

	inPort  drivers.In
	outPort drivers.Out
	stop    func()

	leds    chan ledUpdate
	lit     map[uint8]uint8 // last velocity sent per note; owned by Run
	dropped atomic.Int64
	logger  Logger
}

func newController(send func(midi.Message) error, loop Loop, board Board) *Controller {
	return &Controller{
		loop:   loop,
		board:  board,
		send:   send,
		leds:   make(chan ledUpdate, DefaultQueueSize),
		lit:    make(map[uint8]uint8),
		logger: noopLogger{},
	}
}

// Open finds the configured ports, switches the device to programmer mode
// and starts listening for pad input.
//
// A MIDI driver must be registered (see cmd/cuepad); without one no ports
// are found and ErrPortNotFound is returned.
func Open(cfg config.LaunchpadConfig, loop Loop, board Board, logger Logger) (*Controller, error) {
	in, err := findPort(midi.GetInPorts(), cfg.InPort)
	if err != nil {
		return nil, fmt.Errorf("input %q: %w", cfg.InPort, err)
	}
	out, err := findPort(midi.GetOutPorts(), cfg.OutPort)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", cfg.OutPort, err)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("%w: output %s: %w", ErrOpenFailed, out, err)
	}

	c := newController(send, loop, board)
	c.SetLogger(logger)
	c.inPort = in
	c.outPort = out

	if err := c.enterProgrammerMode(); err != nil {
		c.closePorts()
		return nil, err
	}

	stop, err := midi.ListenTo(in, c.handle, midi.HandleError(func(err error) {
		c.logger.Warn("launchpad input error", "port", in.String(), "error", err)
	}))
	if err != nil {
		c.closePorts()
		return nil, fmt.Errorf("%w: input %s: %w", ErrOpenFailed, in, err)
	}
	c.stop = stop

	c.logger.Info("launchpad connected", "in", in.String(), "out", out.String())
	return c, nil
}

func findPort[P interface{ String() string }](ports []P, name string) (P, error) {
	want := strings.ToLower(name)
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, nil
		}
	}
	var zero P
	return zero, ErrPortNotFound
}

// SetLogger sets the logger for the controller.
func (c *Controller) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	c.logger = logger
}

func (c *Controller) enterProgrammerMode() error {
	for _, body := range [][]byte{sysexProgrammerMode, sysexBrightnessMax} {
		if err := c.sendMsg(midi.SysEx(body)); err != nil {
			return fmt.Errorf("%w: programmer mode: %w", ErrOpenFailed, err)
		}
	}
	return nil
}

func (c *Controller) sendMsg(msg midi.Message) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.send(msg)
}

// handle runs on the listener goroutine.
func (c *Controller) handle(msg midi.Message, _ int32) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		idx, ok := NoteToIndex(key)
		if !ok {
			return
		}
		velocity := float64(vel) / 127
		c.post(func() {
			if err := c.board.PressFrom(idx, velocity, Source); err != nil {
				c.logger.Debug("launchpad press ignored", "pad", idx, "error", err)
			}
		})
	case msg.GetNoteEnd(&ch, &key):
		idx, ok := NoteToIndex(key)
		if !ok {
			return
		}
		c.post(func() {
			_ = c.board.Release(idx) //nolint:errcheck // unknown pads are ignored
		})
	}
}

func (c *Controller) post(fn func()) {
	if err := c.loop.Post(fn); err != nil {
		c.logger.Warn("launchpad input dropped", "error", err)
	}
}

// RenderPad queues an LED update. It satisfies surface.Renderer.
// Pads outside the 8x8 grid are not shown.
func (c *Controller) RenderPad(st surface.PadState) {
	note, ok := IndexToNote(st.Index)
	if !ok {
		return
	}
	select {
	case c.leds <- ledUpdate{note: note, velocity: Velocity(st.Appearance)}:
	default:
		if n := c.dropped.Add(1); n == 1 || n%100 == 0 {
			c.logger.Warn("launchpad led queue full, dropping", "pad", st.Index, "dropped", n)
		}
	}
}

// Dropped returns how many LED updates were discarded.
func (c *Controller) Dropped() int64 {
	return c.dropped.Load()
}

// Run sends queued LED updates until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case u := <-c.leds:
			c.light(u)
		}
	}
}

func (c *Controller) light(u ledUpdate) {
	if v, ok := c.lit[u.note]; ok && v == u.velocity {
		return
	}
	if err := c.sendMsg(midi.NoteOn(0, u.note, u.velocity)); err != nil {
		c.logger.Warn("launchpad led write failed", "note", u.note, "error", err)
		return
	}
	c.lit[u.note] = u.velocity
}

// Close clears the grid, returns the device to live mode and releases the
// ports. Call it after Run has returned. Safe on a nil controller.
func (c *Controller) Close() error {
	if c == nil {
		return nil
	}
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	for idx := 0; idx < GridSize*GridSize; idx++ {
		note, _ := IndexToNote(idx)
		_ = c.sendMsg(midi.NoteOn(0, note, 0)) //nolint:errcheck // best effort on shutdown
	}
	_ = c.sendMsg(midi.SysEx(sysexLiveMode)) //nolint:errcheck // best effort on shutdown
	c.closePorts()
	return nil
}

func (c *Controller) closePorts() {
	if c.inPort != nil {
		_ = c.inPort.Close() //nolint:errcheck // best effort
	}
	if c.outPort != nil {
		_ = c.outPort.Close() //nolint:errcheck // best effort
	}
}
