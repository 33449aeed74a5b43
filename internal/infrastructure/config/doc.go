// Package config loads the runtime configuration of Cuepad Core.
//
// Load applies built-in defaults, then the YAML file, then CUEPAD_*
// environment variables, and finally runs Validate, which reports every
// problem at once. The result covers the engine tick rate, storage, the
// optional front ends (API, MQTT, Launchpad, console), audio output, metrics
// and auth.
//
// The show (palette, sequences, pads) is not part of this file. show.file
// points at it and the show package loads it.
//
// Secrets such as security.jwt.secret and the InfluxDB token are best
// supplied through CUEPAD_JWT_SECRET and CUEPAD_INFLUXDB_TOKEN.
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
//	interval := cfg.TickInterval()
package config
