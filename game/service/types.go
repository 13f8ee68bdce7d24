package service

import (
	"time"

	"github.com/wricardo/mcp-training/bogglesolver/game/engine"
)

// SessionInfo provides information about a solver session
type SessionInfo struct {
	ID             string       `json:"id"`
	PuzzleID       string       `json:"puzzle_id"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Board          []string     `json:"board"`
	Rows           int          `json:"rows"`
	Cols           int          `json:"cols"`
	DictionarySize int          `json:"dictionary_size"`
	SolveCount     int          `json:"solve_count"`
	LastResult     *SolveResult `json:"last_result,omitempty"`
}

// SolveOptions tunes a single solve
type SolveOptions struct {
	Workers        int   `json:"workers,omitempty"`   // <= 1 runs sequentially
	MaxNodes       int64 `json:"max_nodes,omitempty"` // 0 means unlimited
	IncludePaths   bool  `json:"include_paths,omitempty"`
	IncludeMissing bool  `json:"include_missing,omitempty"`
}

// SolveRequest describes a one-off solve without a session. When PuzzleID
// is set the stored puzzle supplies whatever Board or Words leave empty.
type SolveRequest struct {
	Board    []string `json:"board,omitempty"`
	Words    []string `json:"words,omitempty"`
	Alphabet string   `json:"alphabet,omitempty"`
	PuzzleID string   `json:"puzzle_id,omitempty"`
	SolveOptions
}

// SolveResult contains the outcome of a solve
type SolveResult struct {
	RunID           string                       `json:"run_id"`
	SessionID       string                       `json:"session_id,omitempty"`
	PuzzleID        string                       `json:"puzzle_id,omitempty"`
	Words           []string                     `json:"words"`
	Count           int                          `json:"count"`
	Paths           map[string][]engine.Position `json:"paths,omitempty"`
	Missing         []string                     `json:"missing,omitempty"`          // dictionary words not on the board
	MissingExpected []string                     `json:"missing_expected,omitempty"` // expected words the solve did not find
	Rows            int                          `json:"rows"`
	Cols            int                          `json:"cols"`
	DictionarySize  int                          `json:"dictionary_size"`
	Stats           engine.Stats                 `json:"stats"`
	SolvedAt        time.Time                    `json:"solved_at"`
}

// WordCheck reports whether a single word can be traced on a session's board
type WordCheck struct {
	Word         string            `json:"word"`
	InDictionary bool              `json:"in_dictionary"`
	OnBoard      bool              `json:"on_board"`
	Path         []engine.Position `json:"path,omitempty"`
}

// PuzzleInfo provides information about a puzzle configuration
type PuzzleInfo struct {
	Filename    string `json:"filename"`
	PuzzleID    string `json:"puzzle_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	WordCount   int    `json:"word_count"`
}
