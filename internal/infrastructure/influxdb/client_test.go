package influxdb

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/cuepad-core/internal/infrastructure/config"
	"github.com/nerrad567/cuepad-core/internal/pad"
)

// ─── Mock Dependencies ──────────────────────────────────────────────────────

type mockWriter struct {
	mu      sync.Mutex
	points  []*write.Point
	flushes int
}

func (w *mockWriter) WritePoint(p *write.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.points = append(w.points, p)
}

func (w *mockWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flushes++
}

func (w *mockWriter) getLines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.points))
	for i, p := range w.points {
		out[i] = write.PointToLineProtocol(p, time.Nanosecond)
	}
	return out
}

func (w *mockWriter) getFlushes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushes
}

var fixedNow = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func newTestClient() (*Client, *mockWriter) {
	w := &mockWriter{}
	c := newClient(w)
	c.now = func() time.Time { return fixedNow }
	return c, w
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(context.Background(), config.InfluxDBConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestPadPressed(t *testing.T) {
	c, w := newTestClient()

	c.PadPressed(pad.PressEvent{
		Pad:         3,
		Profile:     1,
		ProfileName: "Chorus",
		Velocity:    0.8,
		Actions:     2,
		At:          fixedNow.Add(time.Second),
		Source:      "mqtt",
	})

	lines := w.getLines()
	if len(lines) != 1 {
		t.Fatalf("points = %d, want 1", len(lines))
	}
	line := lines[0]
	for _, want := range []string{
		"pad_press,", "pad=3", "profile=Chorus", "source=mqtt",
		"velocity=0.8", "actions=2i", "profile_index=1i",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	wantTS := fixedNow.Add(time.Second).UnixNano()
	if !strings.HasSuffix(strings.TrimSpace(line), " "+strconv.FormatInt(wantTS, 10)) {
		t.Errorf("line %q, want timestamp %d", line, wantTS)
	}
}

func TestPadPressed_DefaultsSourceAndTime(t *testing.T) {
	c, w := newTestClient()
	c.PadPressed(pad.PressEvent{Pad: 0, Profile: -1, Velocity: 1})

	line := w.getLines()[0]
	if !strings.Contains(line, "source=unknown") {
		t.Errorf("line %q, want source=unknown", line)
	}
	if !strings.HasSuffix(strings.TrimSpace(line), " "+strconv.FormatInt(fixedNow.UnixNano(), 10)) {
		t.Errorf("line %q, want clock timestamp", line)
	}
}

func TestPauseChanged(t *testing.T) {
	c, w := newTestClient()
	c.PauseChanged(true)
	c.PauseChanged(false)

	lines := w.getLines()
	if len(lines) != 2 {
		t.Fatalf("points = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "pause paused=true") || !strings.HasPrefix(lines[1], "pause paused=false") {
		t.Errorf("lines = %q", lines)
	}
}

func TestClose_StopsWritesAndFlushes(t *testing.T) {
	c, w := newTestClient()

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if w.getFlushes() != 1 {
		t.Errorf("flushes = %d, want 1", w.getFlushes())
	}
	if c.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}

	c.PauseChanged(true)
	c.Flush()
	if len(w.getLines()) != 0 || w.getFlushes() != 1 {
		t.Error("write or flush after Close() reached the writer")
	}
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestClose_Nil(t *testing.T) {
	var c *Client
	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v", err)
	}
}

func TestForwardErrors(t *testing.T) {
	c, _ := newTestClient()
	got := make(chan error, 1)
	c.SetOnError(func(err error) { got <- err })

	errs := make(chan error, 1)
	errs <- errors.New("write rejected")
	close(errs)
	c.forwardErrors(errs)

	select {
	case err := <-got:
		if err.Error() != "write rejected" {
			t.Errorf("forwarded error = %v", err)
		}
	default:
		t.Fatal("error not forwarded")
	}
}
