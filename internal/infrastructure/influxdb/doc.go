// Package influxdb records performance telemetry in InfluxDB.
//
// Two measurements are written:
//
//	pad_press  tags pad, profile, source   fields velocity, actions, profile_index
//	pause      no tags                     field  paused
//
// The client is optional. When influxdb.enabled is false Connect returns
// ErrDisabled and the binary simply does not register it as an observer.
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	board.AddObserver(client)
//	pause.OnChange(client.PauseChanged)
//
// Writes are batched according to batch_size and flush_interval.
package influxdb
