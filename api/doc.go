// Package api provides HTTP REST API handlers for the boggle solver.
//
// The api package implements:
//   - One-off board solving
//   - Session management endpoints
//   - Puzzle listing and lookup
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Solving:
//   - POST /api/solve - Solve a board given inline or by puzzle_id
//   - POST /api/sessions/{id}/solve - Solve a session's puzzle
//   - GET /api/sessions/{id}/words/{word} - Trace one word on a session board
//
// Session Management:
//   - POST /api/sessions - Create new session ({"puzzle_id": "..."} or {"puzzle": {...}})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Puzzles:
//   - GET /api/puzzles - List available puzzles
//   - GET /api/puzzles/{name} - Get a puzzle configuration
//
// Other:
//   - GET /ws?session={id} - Receive solve results for a session
//   - GET /health - Liveness probe
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A one-off solve looks like:
//
//	{
//	  "board": ["THIS", "ISAB"],
//	  "words": ["this", "is"],
//	  "workers": 4,          // optional, parallel start cells
//	  "max_nodes": 100000,   // optional, search budget
//	  "include_paths": true  // optional, one witness path per word
//	}
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status derived from the error:
//
//	{"error": "invalid puzzle: board: malformed board: row 2 has 3 cells, expected 4"}
//
// Malformed input maps to 400, unknown sessions and puzzles to 404, an
// exhausted search budget to 422.
package api
