// Package relay fans mutation events out between live websocket connections.
//
// Every text frame a connection sends must be a JSON object of the form
//
//	{"event": "slide_created", "data": {...}}
//
// The hub forwards the frame bytes unchanged to every other registered
// connection and never back to the sender. Delivery is a non-blocking enqueue
// on the peer's outbound buffer: a full buffer drops the frame for that peer
// only. Nothing is persisted, acknowledged or replayed.
package relay
