// Package service provides the business logic layer for the boggle solver.
//
// The service package implements:
//   - Multi-session puzzle management
//   - Stateless one-off solves
//   - Single-word checks against a session's board
//   - Puzzle discovery and loading
//
// Core Interfaces:
//
// SolverService is the main service interface used by every transport.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads puzzle configurations.
//
// Architecture:
//
// The service layer sits between the transports (HTTP/WebSocket/MCP) and the
// engine. A session holds a board and dictionary built once from a puzzle;
// each solve creates a fresh engine.Solver over them with the requested
// options, so concurrent solves in one session never share search state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	svc := service.NewSolverService(sessionMgr, configMgr)
//
//	info, err := svc.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := svc.Solve(ctx, info.ID, service.SolveOptions{Workers: 4})
//
// Results:
//
// Every SolveResult carries a run ID (a UUID), the sorted word list and the
// search statistics. Witnessing paths and the dictionary words that were not
// found are included on request.
package service
