// Package session provides session management for the boggle solver.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the session manager used by the service layer. Each session is a
// service.Session whose board and dictionary were built once from a puzzle
// configuration, along with creation time and last access time.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive. Generated IDs come from crypto/rand and are retried until
// an unused one is found.
//
// Lifetime:
//
// Sessions are kept in memory only. The server periodically calls
// CleanupExpiredSessions to drop sessions that have not been accessed for a
// while.
//
// Usage:
//
//	manager := session.NewManager()
//	sess, err := manager.Create("", engine.DefaultPuzzle())
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := sess.Solver.Solve(ctx)
package session
