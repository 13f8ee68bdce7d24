package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Board is an immutable rectangular grid of runes
type Board struct {
	cells [][]rune
	rows  int
	cols  int
}

// NewBoard builds a board from one string per row. Rows are split into
// runes, so multi-byte characters occupy a single cell.
func NewBoard(rows []string) (*Board, error) {
	cells := make([][]rune, len(rows))
	for i, row := range rows {
		cells[i] = []rune(row)
	}
	return NewBoardFromCells(cells)
}

// NewBoardFromCells builds a board from a grid of runes. The grid is copied.
// Zero rows, zero columns and ragged rows are rejected with ErrMalformedBoard.
func NewBoardFromCells(cells [][]rune) (*Board, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: board has no rows", ErrMalformedBoard)
	}

	cols := len(cells[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: row 1 is empty", ErrMalformedBoard)
	}

	grid := make([][]rune, len(cells))
	for i, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrMalformedBoard, i+1, len(row), cols)
		}
		grid[i] = append([]rune(nil), row...)
	}

	return &Board{cells: grid, rows: len(grid), cols: cols}, nil
}

// Rows returns the number of rows
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns
func (b *Board) Cols() int {
	return b.cols
}

// Size returns the number of cells
func (b *Board) Size() int {
	return b.rows * b.cols
}

// InBounds reports whether p lies on the board
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.rows && p.Col >= 0 && p.Col < b.cols
}

// At returns the rune at p. p must be in bounds.
func (b *Board) At(p Position) rune {
	return b.cells[p.Row][p.Col]
}

// Layout returns the board as one string per row
func (b *Board) Layout() []string {
	out := make([]string, b.rows)
	for i, row := range b.cells {
		out[i] = string(row)
	}
	return out
}

// Letters returns how often each rune occurs on the board
func (b *Board) Letters() map[rune]int {
	counts := make(map[rune]int)
	for _, row := range b.cells {
		for _, r := range row {
			counts[r]++
		}
	}
	return counts
}

// Spell returns the string read along path. Out-of-bounds cells are skipped.
func (b *Board) Spell(path []Position) string {
	var sb strings.Builder
	for _, p := range path {
		if b.InBounds(p) {
			sb.WriteRune(b.At(p))
		}
	}
	return sb.String()
}

// CheckAlphabet verifies that every cell holds a rune from alphabet.
// An empty alphabet accepts everything.
func (b *Board) CheckAlphabet(alphabet string) error {
	if alphabet == "" {
		return nil
	}
	for i, row := range b.cells {
		for j, r := range row {
			if !strings.ContainsRune(alphabet, r) {
				return fmt.Errorf("%w: '%c' at row %d, col %d", ErrInvalidCharacter, r, i+1, j+1)
			}
		}
	}
	return nil
}

func (b *Board) String() string {
	return strings.Join(b.Layout(), "\n")
}

// CheckWordAlphabet verifies that word only uses runes from alphabet.
func CheckWordAlphabet(word, alphabet string) error {
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidWord)
	}
	if !utf8.ValidString(word) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidWord, word)
	}
	if alphabet == "" {
		return nil
	}
	for _, r := range word {
		if !strings.ContainsRune(alphabet, r) {
			return fmt.Errorf("%w: '%c' in word %q", ErrInvalidCharacter, r, word)
		}
	}
	return nil
}
