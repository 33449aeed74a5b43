// Package surface tracks what each pad currently shows.
//
// Every pad has a current appearance, a base appearance it returns to when a
// momentary cue ends, and a feedback scale used by the press pulse. Front ends
// (MQTT, WebSocket, Launchpad, console) subscribe as Renderers and receive
// coalesced changes once per frame.
package surface
