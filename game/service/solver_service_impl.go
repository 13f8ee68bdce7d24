package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/bogglesolver/game/engine"
)

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewSolverService creates a new solver service instance
func NewSolverService(sessions SessionManager, configs ConfigManager) SolverService {
	return &solverServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getPuzzleID returns the puzzle_id for a given puzzle name, used for consistent API responses
func (s *solverServiceImpl) getPuzzleID(puzzleName string) string {
	available, err := s.configs.ListConfigs()
	if err == nil {
		for _, p := range available {
			if p.Name == puzzleName {
				return p.PuzzleID
			}
		}
	}
	if puzzleName == "" {
		return "default"
	}
	return puzzleName
}

// CreateSession creates a new session from a stored puzzle. An empty
// puzzleID selects the default puzzle.
func (s *solverServiceImpl) CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error) {
	var puzzle *engine.PuzzleConfig
	if puzzleID != "" {
		var err error
		puzzle, err = s.LoadPuzzle(ctx, puzzleID)
		if err != nil {
			return nil, err
		}
	} else {
		puzzle = s.configs.GetDefault()
	}

	info, err := s.CreateSessionFromPuzzle(ctx, puzzle)
	if err != nil {
		return nil, err
	}
	if puzzleID != "" {
		info.PuzzleID = puzzleID
	}
	return info, nil
}

// CreateSessionFromPuzzle creates a new session for an ad-hoc puzzle
func (s *solverServiceImpl) CreateSessionFromPuzzle(ctx context.Context, puzzle *engine.PuzzleConfig) (*SessionInfo, error) {
	if puzzle == nil {
		return nil, fmt.Errorf("%w: puzzle is required", ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", puzzle)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *solverServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions ordered by creation time
func (s *solverServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// DeleteSession removes a session
func (s *solverServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	return nil
}

// Solve runs the session's puzzle and stores the result on the session
func (s *solverServiceImpl) Solve(ctx context.Context, sessionID string, opts SolveOptions) (*SolveResult, error) {
	s.mu.RLock()
	sess, err := s.getSession(sessionID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	engineOpts := append([]engine.Option{engine.WithAlphabet(sess.Puzzle.Alphabet)}, solverOptions(opts)...)
	solver := engine.NewSolver(sess.Solver.Board(), sess.Solver.Dictionary(), engineOpts...)
	result, err := solver.Solve(ctx)
	if err != nil {
		return nil, fmt.Errorf("solve session %s: %w", sess.ID, err)
	}

	out := buildSolveResult(solver, sess.Puzzle, result, opts)
	out.SessionID = sess.ID
	out.PuzzleID = s.getPuzzleID(sess.Puzzle.Name)
	sess.RecordSolve(out)
	return out, nil
}

// CheckWord traces a single word on the session's board
func (s *solverServiceImpl) CheckWord(ctx context.Context, sessionID, word string) (*WordCheck, error) {
	if err := engine.CheckWordAlphabet(word, ""); err != nil {
		return nil, err
	}

	s.mu.RLock()
	sess, err := s.getSession(sessionID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	path, found := engine.Trace(sess.Solver.Board(), word)
	return &WordCheck{
		Word:         word,
		InDictionary: sess.Solver.Dictionary().Contains(word),
		OnBoard:      found,
		Path:         path,
	}, nil
}

// SolveBoard solves a board without creating a session
func (s *solverServiceImpl) SolveBoard(ctx context.Context, req *SolveRequest) (*SolveResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidRequest)
	}

	puzzle := &engine.PuzzleConfig{
		Name:     "adhoc",
		Board:    req.Board,
		Words:    req.Words,
		Alphabet: req.Alphabet,
	}
	if req.PuzzleID != "" {
		stored, err := s.LoadPuzzle(ctx, req.PuzzleID)
		if err != nil {
			return nil, err
		}
		puzzle.Name = stored.Name
		if len(puzzle.Board) == 0 {
			puzzle.Board = stored.Board
			puzzle.Expected = stored.Expected
		}
		if len(puzzle.Words) == 0 {
			puzzle.Words = stored.Words
		}
		if puzzle.Alphabet == "" {
			puzzle.Alphabet = stored.Alphabet
		}
	}
	if len(puzzle.Board) == 0 {
		return nil, fmt.Errorf("%w: board is required", ErrInvalidRequest)
	}

	solver, err := engine.NewSolverFromConfig(puzzle, solverOptions(req.SolveOptions)...)
	if err != nil {
		return nil, err
	}
	result, err := solver.Solve(ctx)
	if err != nil {
		return nil, err
	}

	out := buildSolveResult(solver, puzzle, result, req.SolveOptions)
	out.PuzzleID = req.PuzzleID
	return out, nil
}

// ListPuzzles returns all available puzzle configurations
func (s *solverServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	return s.configs.ListConfigs()
}

// LoadPuzzle loads a specific puzzle configuration
func (s *solverServiceImpl) LoadPuzzle(ctx context.Context, puzzleID string) (*engine.PuzzleConfig, error) {
	puzzle, err := s.configs.LoadConfig(puzzleID)
	if err != nil {
		if errors.Is(err, ErrPuzzleNotFound) {
			// Provide helpful error message with available options
			available, listErr := s.configs.ListConfigs()
			if listErr == nil && len(available) > 0 {
				ids := make([]string, 0, len(available))
				for _, p := range available {
					ids = append(ids, p.PuzzleID)
				}
				return nil, fmt.Errorf("%w: '%s'. Available puzzles: %v", ErrPuzzleNotFound, puzzleID, ids)
			}
			return nil, fmt.Errorf("%w: '%s'. Use /api/puzzles to list available puzzles", ErrPuzzleNotFound, puzzleID)
		}
		return nil, fmt.Errorf("failed to load puzzle %s: %w", puzzleID, err)
	}
	return puzzle, nil
}

// getSession looks up a session and marks it accessed. Callers hold s.mu.
func (s *solverServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *solverServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	board := sess.Solver.Board()
	return &SessionInfo{
		ID:             sess.ID,
		PuzzleID:       s.getPuzzleID(sess.Puzzle.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
		Board:          board.Layout(),
		Rows:           board.Rows(),
		Cols:           board.Cols(),
		DictionarySize: sess.Solver.Dictionary().Len(),
		SolveCount:     sess.SolveCount(),
		LastResult:     sess.LastResult(),
	}
}

func solverOptions(opts SolveOptions) []engine.Option {
	var out []engine.Option
	if opts.Workers > 1 {
		out = append(out, engine.WithWorkers(opts.Workers))
	}
	if opts.MaxNodes > 0 {
		out = append(out, engine.WithNodeBudget(opts.MaxNodes))
	}
	return out
}

func buildSolveResult(solver *engine.Solver, puzzle *engine.PuzzleConfig, result *engine.Result, opts SolveOptions) *SolveResult {
	board := solver.Board()
	dict := solver.Dictionary()

	out := &SolveResult{
		RunID:          uuid.NewString(),
		Words:          result.Words(),
		Count:          result.Len(),
		Rows:           board.Rows(),
		Cols:           board.Cols(),
		DictionarySize: dict.Len(),
		Stats:          result.Stats,
		SolvedAt:       time.Now(),
	}

	if opts.IncludePaths {
		out.Paths = result.Found
	}
	if opts.IncludeMissing {
		for _, word := range dict.Words() {
			if !result.Contains(word) {
				out.Missing = append(out.Missing, word)
			}
		}
	}
	if puzzle != nil {
		for _, word := range puzzle.Expected {
			if !result.Contains(word) {
				out.MissingExpected = append(out.MissingExpected, word)
			}
		}
	}
	return out
}
