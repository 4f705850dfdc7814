// Package server exposes the wheel over a websocket so a browser can act as
// the renderer.
//
// Every connection gets its own engine and tick loop. Clients send pointer
// events as JSON:
//
//	{"type": "down", "x": 120, "t": 1712.5}
//	{"type": "move", "x": 164, "t": 1722.5}
//	{"type": "up",   "x": 190, "t": 1732.5}
//	{"type": "flick", "velocity": 2.5, "direction": -1}
//
// where t is a client timestamp in milliseconds. The server replies with
// envelopes of the form {"type", "ts", "data"}: init, frame, gesture_start,
// gesture_update, gesture_end, settle and error. Frames are only sent when
// the angle changes. Frames and drag updates may be dropped for slow
// clients.
package server
