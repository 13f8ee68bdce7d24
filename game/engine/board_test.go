package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBoard(t *testing.T) {
	board, err := NewBoard(sampleRows)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	if board.Rows() != 4 || board.Cols() != 7 {
		t.Errorf("Expected 4x7 board, got %dx%d", board.Rows(), board.Cols())
	}
	if board.Size() != 28 {
		t.Errorf("Expected 28 cells, got %d", board.Size())
	}
	if got := board.At(Position{3, 2}); got != 'g' {
		t.Errorf("Expected 'g' at (3, 2), got %q", got)
	}
	if diff := cmp.Diff(sampleRows, board.Layout()); diff != "" {
		t.Errorf("Layout mismatch (-want +got):\n%s", diff)
	}
	if board.String() != strings.Join(sampleRows, "\n") {
		t.Errorf("Unexpected String(): %q", board.String())
	}
}

func TestNewBoard_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		wantMsg string
	}{
		{"no rows", nil, "no rows"},
		{"empty first row", []string{""}, "row 1 is empty"},
		{"ragged", []string{"abc", "ab"}, "row 2 has 2 cells, expected 3"},
		{"ragged later row", []string{"ab", "cd", "efg"}, "row 3 has 3 cells"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.rows)
			if !errors.Is(err, ErrMalformedBoard) {
				t.Fatalf("Expected ErrMalformedBoard, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestNewBoard_MultiByteCells(t *testing.T) {
	board, err := NewBoard([]string{"éa", "ßz"})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	if board.Cols() != 2 {
		t.Errorf("Expected 2 columns, got %d", board.Cols())
	}
	if got := board.At(Position{1, 0}); got != 'ß' {
		t.Errorf("Expected 'ß', got %q", got)
	}
}

func TestNewBoardFromCells_Copies(t *testing.T) {
	cells := [][]rune{{'a', 'b'}, {'c', 'd'}}
	board, err := NewBoardFromCells(cells)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	cells[0][0] = 'z'
	if board.At(Position{0, 0}) != 'a' {
		t.Error("Board should not share storage with its input")
	}
}

func TestBoard_InBoundsAndSpell(t *testing.T) {
	board, err := NewBoard([]string{"ab", "cd"})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	if !board.InBounds(Position{1, 1}) {
		t.Error("Expected (1, 1) in bounds")
	}
	for _, p := range []Position{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if board.InBounds(p) {
			t.Errorf("Expected %s out of bounds", p)
		}
	}

	if got := board.Spell([]Position{{0, 0}, {1, 1}, {1, 0}}); got != "adc" {
		t.Errorf("Expected 'adc', got %q", got)
	}
}

func TestBoard_Letters(t *testing.T) {
	board, err := NewBoard([]string{"aab", "cba"})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	want := map[rune]int{'a': 3, 'b': 2, 'c': 1}
	if diff := cmp.Diff(want, board.Letters()); diff != "" {
		t.Errorf("Letters mismatch (-want +got):\n%s", diff)
	}
}

func TestBoard_CheckAlphabet(t *testing.T) {
	board, err := NewBoard([]string{"ab", "c!"})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	if err := board.CheckAlphabet(""); err != nil {
		t.Errorf("Empty alphabet should accept everything, got %v", err)
	}
	if err := board.CheckAlphabet("abc!"); err != nil {
		t.Errorf("Expected board to pass, got %v", err)
	}

	err = board.CheckAlphabet("abc")
	if !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("Expected ErrInvalidCharacter, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 2, col 2") {
		t.Errorf("Expected error to name the cell, got %v", err)
	}
}

func TestCheckWordAlphabet(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		alphabet string
		wantErr  error
	}{
		{"empty word", "", "", ErrInvalidWord},
		{"invalid utf8", "a\xffb", "", ErrInvalidWord},
		{"any alphabet", "NOTRE-PEATED", "", nil},
		{"inside alphabet", "cab", "abc", nil},
		{"outside alphabet", "cat", "abc", ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckWordAlphabet(tt.word, tt.alphabet)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
