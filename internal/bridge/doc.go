// Package bridge connects the MQTT broker to the pad engine.
//
// Inbound:
//
//	cuepad/pad/{index}/press    {"velocity":0.8}   empty body = 1.0
//	cuepad/pad/{index}/release
//	cuepad/pause/set            {"paused":true} or {"toggle":true}
//
// Outbound:
//
//	cuepad/pad/{index}/appearance  retained, on every rendered change
//	cuepad/pad/{index}/pressed     after every handled press
//	cuepad/pause/state             retained, on every pause transition
//
// The bridge never touches engine state off the tick loop: inbound
// messages are posted to the loop, outbound updates are queued from it.
// A full queue drops messages rather than stalling the frame.
//
// After a reconnect the engine calls Surface.Resync so retained appearance
// topics reflect the current grid again.
package bridge
