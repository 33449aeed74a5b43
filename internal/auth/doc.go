// Package auth issues and checks operator tokens for the HTTP API.
//
// Tokens are HS256 JWTs carrying a subject and a role. There is no user
// store: whoever holds the signing secret mints tokens (cmd/cuepad-token),
// and the API checks signature, expiry and role permissions only.
//
// Roles:
//   - viewer: read pads, scheduler state, history; watch the WebSocket feed
//   - operator: viewer plus pressing pads and triggering cues
//   - director: operator plus pause, sequence stop and mixer control
package auth
