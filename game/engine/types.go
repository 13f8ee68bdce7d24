package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrMalformedBoard   = errors.New("malformed board")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidWord      = errors.New("invalid word")
	ErrBudgetExceeded   = errors.New("search budget exceeded")
	ErrInvalidPuzzle    = errors.New("invalid puzzle")
	ErrPathDoesNotSpell = errors.New("path does not spell word")
	ErrPathNotAdjacent  = errors.New("path cells are not adjacent")
	ErrPathReusesCell   = errors.New("path reuses a cell")
	ErrPathOutOfBounds  = errors.New("path leaves the board")
)

const (
	// Validation limits for puzzle configs
	MaxBoardSize      = 64
	MaxDictionarySize = 500000

	// How many search steps run between context checks
	cancelCheckInterval = 1024
)

// Position is a cell coordinate on the board
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(r%d, c%d)", p.Row, p.Col)
}

// Translate returns p shifted by dr rows and dc columns
func (p Position) Translate(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Adjacent reports whether q is one of the 8 cells surrounding p
func (p Position) Adjacent(q Position) bool {
	dr := abs(p.Row - q.Row)
	dc := abs(p.Col - q.Col)
	return dr <= 1 && dc <= 1 && (dr != 0 || dc != 0)
}

// Stats describes the work done by one search
type Stats struct {
	Nodes      int64         `json:"nodes"`       // trie-matching steps taken
	StartCells int           `json:"start_cells"` // top-level searches run
	Workers    int           `json:"workers"`
	Duration   time.Duration `json:"duration_ns"`
}

// Result is the outcome of a search: every found word with one witnessing path
type Result struct {
	Found map[string][]Position `json:"found"`
	Stats Stats                 `json:"stats"`
}

// Words returns the found words in sorted order
func (r *Result) Words() []string {
	words := make([]string, 0, len(r.Found))
	for w := range r.Found {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Contains reports whether word was found
func (r *Result) Contains(word string) bool {
	_, ok := r.Found[word]
	return ok
}

// Len returns the number of distinct words found
func (r *Result) Len() int {
	return len(r.Found)
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
