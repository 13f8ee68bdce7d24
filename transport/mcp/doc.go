// Package mcp provides a Model Context Protocol server for the boggle solver.
//
// The mcp package implements a thin client: every tool call is translated into
// a request against the REST API (see package api) and the JSON response is
// rendered as plain text for the agent.
//
// MCP Tools:
//   - solve_board: Solve an inline board or a stored puzzle
//   - list_puzzles: List available puzzle configurations
//   - get_puzzle: Show a puzzle's board, dictionary and expected words
//   - create_session: Create a session for a puzzle
//   - list_sessions: List all active sessions
//   - get_session: Get session details and the last solve
//   - delete_session: Remove a session
//   - solve_session: Solve a session's puzzle
//   - check_word: Trace a single word on a session board
//   - solver_instructions: Board rules, coordinates and tuning options
//
// Transport Modes:
//
// The underlying server can be served over stdio with server.ServeStdio, or
// mounted on an HTTP endpoint by passing request bodies to HandleMessage.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
//
// Paths in tool output use the board's (rROW, cCOL) notation, zero-based from
// the top-left cell, matching the coordinates returned by the REST API.
package mcp
