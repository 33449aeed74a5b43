// Package logging builds the structured logger shared by every Cuepad
// component.
//
// A Logger is a thin layer over log/slog. Each entry carries the service name
// and build version, and components tag themselves with Component:
//
//	log := logging.New(cfg.Logging, version)
//	sched.SetLogger(log.Component("lightcue"))
//
// Output is JSON unless logging.format is "text". The destination is stdout,
// stderr or discard. When the terminal console is running it owns stdout, so
// the binary opens logging.file and passes it to NewWriter instead:
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stdout"
//	  file: "./data/cuepad.log"
//
// Engine packages declare their own four-method Logger interface. *Logger
// satisfies all of them.
//
// Tokens and the JWT secret must never be logged.
package logging
