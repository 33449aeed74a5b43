package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nerrad567/cuepad-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/cuepad-core/internal/pad"
	"github.com/nerrad567/cuepad-core/internal/surface"
)

// Source is the press source tag for MQTT input.
const Source = "mqtt"

// DefaultQueueSize is the outbound buffer used when none is given.
const DefaultQueueSize = 512

// Broker is the MQTT surface the bridge needs. *mqtt.Client satisfies it.
type Broker interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Loop hands closures to the tick loop. *tick.Runtime satisfies it.
type Loop interface {
	Post(fn func()) error
}

// Pauser is the pause control. *pauseclock.Clock satisfies it.
type Pauser interface {
	SetPaused(paused bool) bool
	Toggle() bool
}

// Logger is the logging surface used by the bridge.
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

// PressPayload is the body of a press message. An empty body presses at
// full velocity.
type PressPayload struct {
	Velocity *float64 `json:"velocity,omitempty"`
}

// PausePayload is the body of a pause/set message.
// {"paused":true} sets the flag; {"toggle":true} flips it.
type PausePayload struct {
	Paused *bool `json:"paused,omitempty"`
	Toggle bool  `json:"toggle,omitempty"`
}

// PauseState is the retained pause/state body.
type PauseState struct {
	Paused    bool   `json:"paused"`
	Timestamp string `json:"timestamp"`
}

// PressedEvent is the body published after a handled press.
type PressedEvent struct {
	Pad         int     `json:"pad"`
	Profile     int     `json:"profile"`
	ProfileName string  `json:"profile_name,omitempty"`
	Velocity    float64 `json:"velocity"`
	Actions     int     `json:"actions"`
	Source      string  `json:"source,omitempty"`
	Timestamp   string  `json:"timestamp"`
}

type outbound struct {
	topic    string
	payload  any
	retained bool
}

// Bridge connects MQTT to the engine.
//
// Inbound messages are decoded on paho's goroutine and posted to the tick
// loop. Outbound updates (pad appearance, press events, pause state) arrive
// on the tick loop, are queued without blocking, and are published by Run.
type Bridge struct {
	broker Broker
	loop   Loop
	board  *pad.Board
	pause  Pauser
	qos    byte
	topics mqtt.Topics

	out     chan outbound
	dropped atomic.Int64
	logger  Logger
	now     func() time.Time
}

// New creates a bridge. board and pause are only touched on the loop.
func New(broker Broker, loop Loop, board *pad.Board, pause Pauser, qos byte) *Bridge {
	return &Bridge{
		broker: broker,
		loop:   loop,
		board:  board,
		pause:  pause,
		qos:    qos,
		out:    make(chan outbound, DefaultQueueSize),
		logger: noopLogger{},
		now:    time.Now,
	}
}

// SetLogger sets the logger for the bridge.
func (b *Bridge) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	b.logger = logger
}

// Subscribe registers the inbound topics with the broker.
func (b *Bridge) Subscribe() error {
	subs := []struct {
		topic   string
		handler mqtt.MessageHandler
	}{
		{b.topics.AllPadPresses(), b.handlePress},
		{b.topics.AllPadReleases(), b.handleRelease},
		{b.topics.PauseSet(), b.handlePause},
	}
	for _, s := range subs {
		if err := b.broker.Subscribe(s.topic, b.qos, s.handler); err != nil {
			return fmt.Errorf("subscribing %s: %w", s.topic, err)
		}
	}
	return nil
}

func (b *Bridge) handlePress(topic string, payload []byte) error {
	idx, verb, ok := mqtt.ParsePadTopic(topic)
	if !ok || verb != "press" {
		return fmt.Errorf("%w: %s", ErrBadTopic, topic)
	}

	velocity := 1.0
	if len(payload) > 0 {
		var p PressPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %w", ErrBadPayload, err)
		}
		if p.Velocity != nil {
			velocity = *p.Velocity
		}
	}

	return b.post(func() {
		if err := b.board.PressFrom(idx, velocity, Source); err != nil {
			b.logger.Debug("mqtt press ignored", "pad", idx, "error", err)
		}
	})
}

func (b *Bridge) handleRelease(topic string, _ []byte) error {
	idx, verb, ok := mqtt.ParsePadTopic(topic)
	if !ok || verb != "release" {
		return fmt.Errorf("%w: %s", ErrBadTopic, topic)
	}
	return b.post(func() {
		_ = b.board.Release(idx) //nolint:errcheck // unknown pads are ignored
	})
}

func (b *Bridge) handlePause(_ string, payload []byte) error {
	var p PausePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	switch {
	case p.Toggle:
		return b.post(func() { b.pause.Toggle() })
	case p.Paused != nil:
		paused := *p.Paused
		return b.post(func() { b.pause.SetPaused(paused) })
	default:
		return fmt.Errorf("%w: need paused or toggle", ErrBadPayload)
	}
}

func (b *Bridge) post(fn func()) error {
	if err := b.loop.Post(fn); err != nil {
		return fmt.Errorf("forwarding to engine: %w", err)
	}
	return nil
}

// RenderPad queues a retained appearance update. It satisfies surface.Renderer.
func (b *Bridge) RenderPad(st surface.PadState) {
	b.enqueue(outbound{topic: b.topics.PadAppearance(st.Index), payload: st.View(), retained: true})
}

// PadPressed queues a press event. It satisfies pad.PressObserver.
func (b *Bridge) PadPressed(ev pad.PressEvent) {
	b.enqueue(outbound{
		topic: b.topics.PadPressed(ev.Pad),
		payload: PressedEvent{
			Pad:         ev.Pad,
			Profile:     ev.Profile,
			ProfileName: ev.ProfileName,
			Velocity:    ev.Velocity,
			Actions:     ev.Actions,
			Source:      ev.Source,
			Timestamp:   ev.At.UTC().Format(time.RFC3339Nano),
		},
	})
}

// PauseChanged queues the retained pause state. It has the signature of a
// pauseclock.Listener.
func (b *Bridge) PauseChanged(paused bool) {
	b.enqueue(outbound{
		topic:    b.topics.PauseState(),
		payload:  PauseState{Paused: paused, Timestamp: b.now().UTC().Format(time.RFC3339)},
		retained: true,
	})
}

func (b *Bridge) enqueue(m outbound) {
	select {
	case b.out <- m:
	default:
		if n := b.dropped.Add(1); n == 1 || n%100 == 0 {
			b.logger.Warn("mqtt outbound queue full, dropping", "topic", m.topic, "dropped", n)
		}
	}
}

// Dropped returns how many outbound messages were discarded.
func (b *Bridge) Dropped() int64 {
	return b.dropped.Load()
}

// Run publishes queued messages until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-b.out:
			b.publish(m)
		}
	}
}

func (b *Bridge) publish(m outbound) {
	body, err := json.Marshal(m.payload)
	if err != nil {
		b.logger.Error("encoding mqtt message", "topic", m.topic, "error", err)
		return
	}
	if err := b.broker.Publish(m.topic, body, b.qos, m.retained); err != nil {
		if errors.Is(err, mqtt.ErrNotConnected) {
			b.logger.Debug("mqtt publish skipped while offline", "topic", m.topic)
			return
		}
		b.logger.Warn("mqtt publish failed", "topic", m.topic, "error", err)
	}
}
