package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/cuepad-core/internal/pad"
)

// Measurement names.
const (
	MeasurementPadPress = "pad_press"
	MeasurementPause    = "pause"
)

// PadPressed records a handled press. It satisfies pad.PressObserver.
//
// Tags: pad, profile, source. Fields: velocity, actions, profile_index.
func (c *Client) PadPressed(ev pad.PressEvent) {
	at := ev.At
	if at.IsZero() {
		at = c.now()
	}
	source := ev.Source
	if source == "" {
		source = "unknown"
	}
	c.WritePointAt(MeasurementPadPress,
		map[string]string{
			"pad":     strconv.Itoa(ev.Pad),
			"profile": ev.ProfileName,
			"source":  source,
		},
		map[string]interface{}{
			"velocity":      ev.Velocity,
			"actions":       ev.Actions,
			"profile_index": ev.Profile,
		},
		at)
}

// PauseChanged records a global pause transition. It has the signature of
// a pauseclock.Listener.
func (c *Client) PauseChanged(paused bool) {
	c.WritePoint(MeasurementPause, nil, map[string]interface{}{"paused": paused})
}

// WritePoint writes an arbitrary point stamped with the current time.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	c.WritePointAt(measurement, tags, fields, c.now())
}

// WritePointAt writes an arbitrary point with an explicit timestamp.
// Dropped silently when the client is closed.
func (c *Client) WritePointAt(measurement string, tags map[string]string, fields map[string]interface{}, at time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writer.WritePoint(write.NewPoint(measurement, tags, fields, at))
}
