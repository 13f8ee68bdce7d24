package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wricardo/mcp-training/bogglesolver/game/engine"
	"github.com/wricardo/mcp-training/bogglesolver/game/service"
	"github.com/wricardo/mcp-training/bogglesolver/game/session"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	mu       sync.Mutex
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, puzzle *engine.PuzzleConfig) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("t%03d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	solver, err := engine.NewSolverFromConfig(puzzle)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &service.Session{
		ID:        id,
		Solver:    solver,
		Puzzle:    puzzle,
		CreatedAt: now.Add(time.Duration(len(m.sessions)) * time.Millisecond),
	}
	sess.TouchAt(now)
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MockSessionManager) GetOrCreate(id string, puzzle *engine.PuzzleConfig) (*service.Session, error) {
	if sess, err := m.Get(id); err == nil {
		return sess, nil
	}
	return m.Create(id, puzzle)
}

func (m *MockSessionManager) List() []*service.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, exists := m.sessions[id]; exists {
		sess.Touch()
		return nil
	}
	return service.ErrSessionNotFound
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.PuzzleConfig
}

func NewMockConfigManager() *MockConfigManager {
	square := &engine.PuzzleConfig{
		Name:        "Square",
		Description: "Two by two board",
		Board:       []string{"ab", "cd"},
		Words:       []string{"abdc", "acdb", "abcd", "ad", "da", "aba"},
		Expected:    []string{"abdc", "ad"},
	}

	return &MockConfigManager{
		configs: map[string]*engine.PuzzleConfig{
			"sample": engine.DefaultPuzzle(),
			"square": square,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.PuzzleConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, service.ErrPuzzleNotFound
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.PuzzleInfo, error) {
	result := make([]*service.PuzzleInfo, 0, len(m.configs))
	for id, config := range m.configs {
		result = append(result, &service.PuzzleInfo{
			Filename:    id + ".json",
			PuzzleID:    id,
			Name:        config.Name,
			Description: config.Description,
			Rows:        len(config.Board),
			WordCount:   len(config.Words),
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.PuzzleConfig {
	return m.configs["sample"]
}

func newTestService() service.SolverService {
	return service.NewSolverService(NewMockSessionManager(), NewMockConfigManager())
}

// Test cases
func TestSolverService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	tests := []struct {
		name         string
		puzzleID     string
		wantPuzzleID string
		wantRows     int
		wantErr      bool
	}{
		{
			name:         "create with default puzzle",
			puzzleID:     "",
			wantPuzzleID: "sample",
			wantRows:     4,
		},
		{
			name:         "create with specific puzzle",
			puzzleID:     "square",
			wantPuzzleID: "square",
			wantRows:     2,
		},
		{
			name:     "create with unknown puzzle",
			puzzleID: "nonexistent",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.CreateSession(ctx, tt.puzzleID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, service.ErrPuzzleNotFound) {
					t.Errorf("Expected ErrPuzzleNotFound, got %v", err)
				}
				return
			}
			if len(info.ID) == 0 {
				t.Error("Expected a session ID")
			}
			if info.PuzzleID != tt.wantPuzzleID {
				t.Errorf("Expected puzzle ID %q, got %q", tt.wantPuzzleID, info.PuzzleID)
			}
			if info.Rows != tt.wantRows {
				t.Errorf("Expected %d rows, got %d", tt.wantRows, info.Rows)
			}
			if info.SolveCount != 0 || info.LastResult != nil {
				t.Error("New session should not have solve results")
			}
		})
	}
}

func TestSolverService_CreateSessionFromPuzzle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	info, err := svc.CreateSessionFromPuzzle(ctx, &engine.PuzzleConfig{
		Name:  "custom",
		Board: []string{"an"},
		Words: []string{"a", "an", "na"},
	})
	if err != nil {
		t.Fatalf("CreateSessionFromPuzzle failed: %v", err)
	}
	if info.PuzzleID != "custom" {
		t.Errorf("Expected puzzle ID 'custom', got %q", info.PuzzleID)
	}
	if info.DictionarySize != 3 {
		t.Errorf("Expected dictionary size 3, got %d", info.DictionarySize)
	}

	_, err = svc.CreateSessionFromPuzzle(ctx, &engine.PuzzleConfig{Name: "bad", Board: []string{"ab", "c"}})
	if !errors.Is(err, engine.ErrMalformedBoard) {
		t.Errorf("Expected ErrMalformedBoard, got %v", err)
	}

	_, err = svc.CreateSessionFromPuzzle(ctx, nil)
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got %v", err)
	}
}

func TestSolverService_Solve(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	info, err := svc.CreateSession(ctx, "square")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("default options", func(t *testing.T) {
		result, err := svc.Solve(ctx, info.ID, service.SolveOptions{})
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		want := []string{"abcd", "abdc", "acdb", "ad", "da"}
		if diff := cmp.Diff(want, result.Words); diff != "" {
			t.Errorf("Words mismatch (-want +got):\n%s", diff)
		}
		if result.Count != len(want) {
			t.Errorf("Expected count %d, got %d", len(want), result.Count)
		}
		if result.SessionID != info.ID || result.PuzzleID != "square" {
			t.Errorf("Unexpected ids: session=%q puzzle=%q", result.SessionID, result.PuzzleID)
		}
		if result.RunID == "" {
			t.Error("Expected a run ID")
		}
		if result.Paths != nil || result.Missing != nil {
			t.Error("Paths and missing words should be omitted by default")
		}
		if len(result.MissingExpected) != 0 {
			t.Errorf("Expected all expected words found, missing %v", result.MissingExpected)
		}
		if result.Rows != 2 || result.Cols != 2 || result.DictionarySize != 6 {
			t.Errorf("Unexpected dimensions: %dx%d dict=%d", result.Rows, result.Cols, result.DictionarySize)
		}
	})

	t.Run("paths and missing words", func(t *testing.T) {
		result, err := svc.Solve(ctx, info.ID, service.SolveOptions{
			Workers:        4,
			IncludePaths:   true,
			IncludeMissing: true,
		})
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		if diff := cmp.Diff([]string{"aba"}, result.Missing); diff != "" {
			t.Errorf("Missing mismatch (-want +got):\n%s", diff)
		}
		want := []engine.Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}}
		if diff := cmp.Diff(want, result.Paths["ad"]); diff != "" {
			t.Errorf("Path mismatch (-want +got):\n%s", diff)
		}
		if result.Stats.Workers != 4 {
			t.Errorf("Expected 4 workers, got %d", result.Stats.Workers)
		}
	})

	t.Run("budget exceeded", func(t *testing.T) {
		_, err := svc.Solve(ctx, info.ID, service.SolveOptions{MaxNodes: 1})
		if !errors.Is(err, engine.ErrBudgetExceeded) {
			t.Errorf("Expected ErrBudgetExceeded, got %v", err)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Solve(ctx, "nope", service.SolveOptions{})
		if !errors.Is(err, service.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("session records last result", func(t *testing.T) {
		got, err := svc.GetSession(ctx, info.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got.SolveCount != 2 {
			t.Errorf("Expected 2 completed solves, got %d", got.SolveCount)
		}
		if got.LastResult == nil || got.LastResult.Stats.Workers != 4 {
			t.Errorf("Expected last result from the parallel solve, got %+v", got.LastResult)
		}
	})
}

func TestSolverService_CheckWord(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	info, err := svc.CreateSession(ctx, "sample")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		word         string
		inDictionary bool
		onBoard      bool
	}{
		{"boggle", true, true},
		{"board", true, false},
		{"simplex", false, true},
		{"zebra", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			check, err := svc.CheckWord(ctx, info.ID, tt.word)
			if err != nil {
				t.Fatalf("CheckWord failed: %v", err)
			}
			if check.InDictionary != tt.inDictionary || check.OnBoard != tt.onBoard {
				t.Errorf("CheckWord(%q) = dict:%v board:%v, want dict:%v board:%v",
					tt.word, check.InDictionary, check.OnBoard, tt.inDictionary, tt.onBoard)
			}
			if check.OnBoard != (len(check.Path) == len([]rune(tt.word))) {
				t.Errorf("Unexpected path %v for %q", check.Path, tt.word)
			}
		})
	}

	if _, err := svc.CheckWord(ctx, info.ID, ""); !errors.Is(err, engine.ErrInvalidWord) {
		t.Errorf("Expected ErrInvalidWord for empty word, got %v", err)
	}
	if _, err := svc.CheckWord(ctx, "nope", "a"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestSolverService_SolveBoard(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	tests := []struct {
		name    string
		req     *service.SolveRequest
		want    []string
		wantErr error
	}{
		{
			name: "inline board and words",
			req: &service.SolveRequest{
				Board: []string{"aa"},
				Words: []string{"a", "aa", "aaa"},
			},
			want: []string{"a", "aa"},
		},
		{
			name: "stored puzzle",
			req:  &service.SolveRequest{PuzzleID: "sample"},
			want: []string{"a", "boggle", "is", "simple", "this"},
		},
		{
			name: "stored dictionary on a new board",
			req: &service.SolveRequest{
				PuzzleID: "sample",
				Board:    []string{"isa", "xxx"},
			},
			want: []string{"a", "is"},
		},
		{
			name: "empty dictionary",
			req:  &service.SolveRequest{Board: []string{"ab"}},
			want: []string{},
		},
		{
			name:    "missing board",
			req:     &service.SolveRequest{Words: []string{"a"}},
			wantErr: service.ErrInvalidRequest,
		},
		{
			name:    "ragged board",
			req:     &service.SolveRequest{Board: []string{"ab", "c"}, Words: []string{"a"}},
			wantErr: engine.ErrMalformedBoard,
		},
		{
			name:    "alphabet violation",
			req:     &service.SolveRequest{Board: []string{"ab"}, Words: []string{"a"}, Alphabet: "a"},
			wantErr: engine.ErrInvalidCharacter,
		},
		{
			name:    "unknown puzzle",
			req:     &service.SolveRequest{PuzzleID: "nope"},
			wantErr: service.ErrPuzzleNotFound,
		},
		{
			name:    "nil request",
			req:     nil,
			wantErr: service.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.SolveBoard(ctx, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SolveBoard failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, result.Words); diff != "" {
				t.Errorf("Words mismatch (-want +got):\n%s", diff)
			}
			if result.SessionID != "" {
				t.Errorf("Stateless solve should not carry a session ID, got %q", result.SessionID)
			}
		})
	}
}

func TestSolverService_ListAndDeleteSessions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first, err := svc.CreateSession(ctx, "sample")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	second, err := svc.CreateSession(ctx, "square")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != first.ID || sessions[1].ID != second.ID {
		t.Errorf("Expected sessions in creation order, got %s, %s", sessions[0].ID, sessions[1].ID)
	}

	if err := svc.DeleteSession(ctx, first.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, first.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
	if err := svc.DeleteSession(ctx, first.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestSolverService_Puzzles(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	puzzles, err := svc.ListPuzzles(ctx)
	if err != nil {
		t.Fatalf("ListPuzzles failed: %v", err)
	}
	if len(puzzles) != 2 {
		t.Errorf("Expected 2 puzzles, got %d", len(puzzles))
	}

	puzzle, err := svc.LoadPuzzle(ctx, "square")
	if err != nil {
		t.Fatalf("LoadPuzzle failed: %v", err)
	}
	if puzzle.Name != "Square" {
		t.Errorf("Expected 'Square', got %q", puzzle.Name)
	}

	_, err = svc.LoadPuzzle(ctx, "missing")
	if !errors.Is(err, service.ErrPuzzleNotFound) {
		t.Errorf("Expected ErrPuzzleNotFound, got %v", err)
	}
}

func TestSolverService_SolveEnforcesAlphabet(t *testing.T) {
	sessions := NewMockSessionManager()
	svc := service.NewSolverService(sessions, NewMockConfigManager())

	board, err := engine.NewBoard([]string{"aB"})
	if err != nil {
		t.Fatal(err)
	}
	dict, err := engine.BuildDictionary([]string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	sessions.sessions["lax"] = &service.Session{
		ID:     "lax",
		Solver: engine.NewSolver(board, dict),
		Puzzle: &engine.PuzzleConfig{Name: "lax", Board: []string{"aB"}, Words: []string{"a"}, Alphabet: "ab"},
	}

	_, err = svc.Solve(context.Background(), "lax", service.SolveOptions{Workers: 2})
	if !errors.Is(err, engine.ErrInvalidCharacter) {
		t.Errorf("Expected ErrInvalidCharacter, got %v", err)
	}
}

func TestSolverService_ConcurrentSessionAccess(t *testing.T) {
	manager := session.NewManager()
	svc := service.NewSolverService(manager, NewMockConfigManager())
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "sample")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := svc.GetSession(ctx, info.ID); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Add(2)
	go func() {
		defer wg.Done()
		for j := 0; j < 10; j++ {
			if _, err := svc.Solve(ctx, info.ID, service.SolveOptions{}); err != nil {
				errs <- err
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			manager.CleanupExpiredSessions(time.Hour)
			if _, err := svc.ListSessions(ctx); err != nil {
				errs <- err
				return
			}
		}
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent access failed: %v", err)
	}

	got, err := svc.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.SolveCount != 10 {
		t.Errorf("Expected 10 solves, got %d", got.SolveCount)
	}
	if got.LastAccessedAt.Before(info.LastAccessedAt) {
		t.Errorf("Last access went backwards: %s < %s", got.LastAccessedAt, info.LastAccessedAt)
	}
}
