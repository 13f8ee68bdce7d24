package engine

import (
	"context"
	"fmt"

	"github.com/wricardo/mcp-training/bogglesolver/game/trie"
)

// FindWords solves rows against words and returns the found words sorted.
// Duplicate words are collapsed; an empty word list yields an empty result.
func FindWords(rows []string, words []string) ([]string, error) {
	board, err := NewBoard(rows)
	if err != nil {
		return nil, err
	}

	dict, err := BuildDictionary(words)
	if err != nil {
		return nil, err
	}

	result, err := NewSolver(board, dict).Solve(context.Background())
	if err != nil {
		return nil, err
	}
	return result.Words(), nil
}

// BuildDictionary loads words into a new trie
func BuildDictionary(words []string) (*trie.Trie, error) {
	dict := trie.New()
	for i, word := range words {
		if err := dict.Insert(word); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidWord, i+1, err)
		}
	}
	return dict, nil
}

// Trace searches the board for a single path spelling word.
// It returns the first path in row-major, clockwise-neighbour order.
func Trace(b *Board, word string) ([]Position, bool) {
	target := []rune(word)
	if len(target) == 0 {
		return nil, false
	}

	visited := make([]bool, b.Size())
	path := make([]Position, 0, len(target))

	var follow func(p Position, i int) bool
	follow = func(p Position, i int) bool {
		idx := p.Row*b.cols + p.Col
		if visited[idx] || b.At(p) != target[i] {
			return false
		}
		visited[idx] = true
		path = append(path, p)
		if i == len(target)-1 {
			return true
		}

		var buf [8]Position
		for _, q := range AppendNeighbors(buf[:0], p, b.rows, b.cols) {
			if follow(q, i+1) {
				return true
			}
		}

		visited[idx] = false
		path = path[:len(path)-1]
		return false
	}

	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if follow(Position{Row: r, Col: c}, 0) {
				return path, true
			}
		}
	}
	return nil, false
}

// ValidatePath checks that path is a legal witness for word: every cell is
// on the board, consecutive cells touch, no cell repeats and the letters
// spell the word.
func ValidatePath(b *Board, word string, path []Position) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrPathDoesNotSpell)
	}
	seen := make(map[Position]bool, len(path))
	for i, p := range path {
		if !b.InBounds(p) {
			return fmt.Errorf("%w: step %d at %s", ErrPathOutOfBounds, i+1, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: step %d at %s", ErrPathReusesCell, i+1, p)
		}
		seen[p] = true
		if i > 0 && !path[i-1].Adjacent(p) {
			return fmt.Errorf("%w: %s -> %s", ErrPathNotAdjacent, path[i-1], p)
		}
	}

	if got := b.Spell(path); got != word {
		return fmt.Errorf("%w: got %q, want %q", ErrPathDoesNotSpell, got, word)
	}
	return nil
}
