// Command analyze prints quick, human-readable heuristics about puzzle files
// in the project's configs directory. It summarizes dimensions, dictionary
// size and letter coverage, flags dictionary words the board cannot possibly
// hold, and compares the words a real solve finds against the expected list.
//
// Usage:
//
//	go run ./cmd/analyze [puzzle.json ...]
//
// Without arguments every configs/*.json file is analyzed.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/wricardo/mcp-training/bogglesolver/game/engine"
)

// Analysis is the report for a single puzzle file
type Analysis struct {
	Name            string
	Rows, Cols      int
	DictionarySize  int
	BoardLetters    int      // distinct characters on the board
	Impossible      []string // words needing more of some character than the board has
	TooLong         []string // words longer than the number of cells
	Found           []string
	Missing         []string // possible by letter counts but not traceable
	MissingExpected []string
	Nodes           int64
}

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		matches, err := filepath.Glob(filepath.Join("configs", "*.json"))
		if err != nil {
			fmt.Printf("Error listing configs: %v\n", err)
			os.Exit(1)
		}
		sort.Strings(matches)
		paths = matches
	}

	for _, path := range paths {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(path))
		analysis, err := analyzePuzzle(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analysis)
	}
}

// analyzePuzzle loads, validates and solves the puzzle at path
func analyzePuzzle(path string) (*Analysis, error) {
	puzzle, err := engine.LoadPuzzleConfig(path)
	if err != nil {
		return nil, err
	}

	solver, err := engine.NewSolverFromConfig(puzzle)
	if err != nil {
		return nil, err
	}
	result, err := solver.Solve(context.Background())
	if err != nil {
		return nil, err
	}

	board := solver.Board()
	counts := letterCounts(board)

	a := &Analysis{
		Name:           puzzle.Name,
		Rows:           board.Rows(),
		Cols:           board.Cols(),
		DictionarySize: solver.Dictionary().Len(),
		BoardLetters:   len(counts),
		Found:          result.Words(),
		Nodes:          result.Stats.Nodes,
	}

	for _, word := range solver.Dictionary().Words() {
		switch {
		case result.Contains(word):
		case utf8.RuneCountInString(word) > board.Size():
			a.TooLong = append(a.TooLong, word)
		case !coveredBy(word, counts):
			a.Impossible = append(a.Impossible, word)
		default:
			a.Missing = append(a.Missing, word)
		}
	}

	for _, word := range puzzle.Expected {
		if !result.Contains(word) {
			a.MissingExpected = append(a.MissingExpected, word)
		}
	}
	return a, nil
}

// letterCounts returns how many cells hold each character
func letterCounts(b *engine.Board) map[rune]int {
	counts := make(map[rune]int)
	for _, row := range b.Layout() {
		for _, r := range row {
			counts[r]++
		}
	}
	return counts
}

// coveredBy reports whether the board has enough of every character in word
func coveredBy(word string, counts map[rune]int) bool {
	need := make(map[rune]int)
	for _, r := range word {
		need[r]++
		if need[r] > counts[r] {
			return false
		}
	}
	return true
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Board: %d x %d (%d distinct letters)\n", a.Rows, a.Cols, a.BoardLetters)
	fmt.Fprintf(w, "Dictionary: %d words\n", a.DictionarySize)
	fmt.Fprintf(w, "Found: %d words in %d search steps\n", len(a.Found), a.Nodes)

	if len(a.Found) > 0 {
		fmt.Fprintf(w, "   %s\n", strings.Join(a.Found, ", "))
	}

	if len(a.TooLong) > 0 {
		fmt.Fprintf(w, "⚠️  %d words are longer than the board has cells: %s\n",
			len(a.TooLong), strings.Join(a.TooLong, ", "))
	}
	if len(a.Impossible) > 0 {
		fmt.Fprintf(w, "⚠️  %d words need letters the board does not have: %s\n",
			len(a.Impossible), strings.Join(a.Impossible, ", "))
	}
	if len(a.Missing) > 0 {
		fmt.Fprintf(w, "   %d words have the letters but no path: %s\n",
			len(a.Missing), strings.Join(a.Missing, ", "))
	}

	if len(a.MissingExpected) > 0 {
		fmt.Fprintf(w, "⚠️  CRITICAL: %d expected words were not found: %s\n",
			len(a.MissingExpected), strings.Join(a.MissingExpected, ", "))
	} else {
		fmt.Fprintf(w, "✅ All expected words were found\n")
	}
}
