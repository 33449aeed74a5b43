// Package api implements the HTTP REST API and WebSocket server.
//
// This package provides:
//   - REST endpoints for pads, cues, sequences, the global pause, scheduler
//     stats, the press history and the audio mixer
//   - A WebSocket hub broadcasting pad appearance, press and pause events
//   - Optional JWT authentication with ticket-based WebSocket auth
//   - Middleware stack (request ID, logging, recovery, CORS)
//   - A /metrics snapshot of runtime, hub and engine counters
//
// # Threading
//
// Engine state (board, surface, scheduler, pause clock) belongs to the tick
// loop. Every handler that touches it runs a closure through Loop.Do and
// waits for the result, bounded by the request context. A stopped loop, or
// one that outlasts the request, yields 503.
//
// # Security
//
// With security.jwt.secret empty the API is open. Otherwise every route
// except /health, /metrics and /ws needs a bearer token, and each route group needs a
// role permission (see package auth). WebSocket clients trade their token
// for a single-use ticket so it never appears in a URL.
package api
