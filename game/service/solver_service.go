package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/bogglesolver/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPuzzleNotFound  = errors.New("puzzle not found")
	ErrInvalidRequest  = errors.New("invalid request")
)

// SolverService defines all solver operations exposed to transports
type SolverService interface {
	// Session Management
	CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error)
	CreateSessionFromPuzzle(ctx context.Context, puzzle *engine.PuzzleConfig) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Solving
	Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error)
	CheckWord(ctx context.Context, sessionID, word string) (*WordCheck, error)
	SolveBoard(ctx context.Context, req *SolveRequest) (*SolveResult, error)

	// Puzzles
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	LoadPuzzle(ctx context.Context, puzzleID string) (*engine.PuzzleConfig, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, puzzle *engine.PuzzleConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, puzzle *engine.PuzzleConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles puzzle configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.PuzzleConfig, error)
	ListConfigs() ([]*PuzzleInfo, error)
	GetDefault() *engine.PuzzleConfig
}

// Session is a prepared puzzle: the board and dictionary are built once and
// every solve in the session reuses them.
type Session struct {
	ID        string
	Solver    *engine.Solver
	Puzzle    *engine.PuzzleConfig
	CreatedAt time.Time

	mu           sync.Mutex
	lastAccessed time.Time
	lastResult   *SolveResult
	solveCount   int
}

// Touch marks the session as accessed now
func (s *Session) Touch() {
	s.TouchAt(time.Now())
}

// TouchAt sets the session's last access time
func (s *Session) TouchAt(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccessed = t
}

// LastAccessed returns when the session was last used
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccessed
}

// RecordSolve stores result as the session's latest solve
func (s *Session) RecordSolve(result *SolveResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = result
	s.solveCount++
}

// LastResult returns the latest solve, or nil if the session was never solved
func (s *Session) LastResult() *SolveResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// SolveCount returns how many solves completed in this session
func (s *Session) SolveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.solveCount
}
