// Package websocket provides WebSocket transport for the boggle solver.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Broadcasting of solve results to every client watching a session
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Registration, unregistration and broadcasts flow
// through the hub's event loop; each client has a dedicated writer goroutine
// and a reader goroutine that only keeps the connection alive.
//
// Message Protocol:
//
// Clients do not send commands. Outgoing messages are JSON objects:
//   - {"session_id": "ab12", "event": "solve_result", "result": {...}}
//   - {"session_id": "ab12", "event": "session_deleted"}
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12) when
// establishing the connection. Session IDs are matched case-insensitively.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastResult(sessionID, result)
//
// Backpressure:
//
// Broadcasts are queued without blocking the caller. When the queue is full
// the message is dropped and logged; a client whose send buffer is full is
// disconnected.
package websocket
