// Command validate provides a small CLI that validates puzzle configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board shape: non-empty, rectangular, within size limits
//   - Allowed characters when the puzzle declares an alphabet
//   - Word list file resolution and word validity
//   - Expected words are part of the dictionary
//   - Solvability: every expected word is actually found on the board
//
// Unlike the loader, which stops at the first problem, validate reports every
// problem it finds in a file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/wricardo/mcp-training/bogglesolver/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single puzzle JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var puzzle engine.PuzzleConfig
	if err := json.Unmarshal(data, &puzzle); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if puzzle.Name == "" {
		result.fail("Name is required")
	}

	// Validate board
	cols := validateBoard(&result, puzzle.Board, puzzle.Alphabet)

	// Resolve and validate words
	if puzzle.WordsFile != "" {
		path := puzzle.WordsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(filePath), path)
		}
		words, err := engine.ReadWordListFile(path)
		if err != nil {
			result.fail("Failed to read words_file %s: %v", puzzle.WordsFile, err)
		}
		puzzle.Words = append(puzzle.Words, words...)
		puzzle.WordsFile = ""
	}

	if len(puzzle.Words) > engine.MaxDictionarySize {
		result.fail("Dictionary has %d words, limit is %d", len(puzzle.Words), engine.MaxDictionarySize)
	}

	dictionary := make(map[string]bool, len(puzzle.Words))
	duplicates := 0
	for i, word := range puzzle.Words {
		if err := engine.CheckWordAlphabet(word, puzzle.Alphabet); err != nil {
			result.fail("Word %d: %v", i+1, err)
			continue
		}
		if dictionary[word] {
			duplicates++
		}
		dictionary[word] = true
	}

	for _, word := range puzzle.Expected {
		if !dictionary[word] {
			result.fail("Expected word %q is not in the dictionary", word)
		}
	}

	// Solvability validation - only meaningful once the puzzle itself is sound
	if result.Valid {
		solveResult := validateExpected(&puzzle)
		if !solveResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, solveResult.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", puzzle.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", len(puzzle.Board), cols))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Dictionary: %d words", len(dictionary)))
		if duplicates > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Duplicate words ignored: %d", duplicates))
		}
		if puzzle.Alphabet != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Alphabet: %d characters", utf8.RuneCountInString(puzzle.Alphabet)))
		}
	}

	return result
}

// validateBoard checks the board shape and characters, recording every
// problem on result. It returns the width of the first row.
func validateBoard(result *ValidationResult, board []string, alphabet string) int {
	if len(board) == 0 {
		result.fail("Board is empty")
		return 0
	}
	if len(board) > engine.MaxBoardSize {
		result.fail("Board has %d rows, limit is %d", len(board), engine.MaxBoardSize)
	}

	width := utf8.RuneCountInString(board[0])
	if width == 0 {
		result.fail("Board rows must not be empty")
	}
	if width > engine.MaxBoardSize {
		result.fail("Board has %d columns, limit is %d", width, engine.MaxBoardSize)
	}

	for i, row := range board {
		if !utf8.ValidString(row) {
			result.fail("Row %d is not valid UTF-8", i+1)
			continue
		}
		if n := utf8.RuneCountInString(row); n != width {
			result.fail("Inconsistent board width at row %d: expected %d, got %d", i+1, width, n)
		}
		if alphabet == "" {
			continue
		}
		for j, char := range []rune(row) {
			if !strings.ContainsRune(alphabet, char) {
				result.fail("Invalid character '%c' at position [%d,%d]", char, i+1, j+1)
			}
		}
	}
	return width
}

// validateExpected solves the puzzle and reports expected words that the
// solve did not find.
func validateExpected(puzzle *engine.PuzzleConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	solver, err := engine.NewSolverFromConfig(puzzle)
	if err != nil {
		result.fail("Cannot solve puzzle: %v", err)
		return result
	}
	found, err := solver.Solve(context.Background())
	if err != nil {
		result.fail("Solve failed: %v", err)
		return result
	}

	var unfound []string
	for _, word := range puzzle.Expected {
		if !found.Contains(word) {
			unfound = append(unfound, word)
		}
	}

	if len(unfound) > 0 {
		result.fail("Solvability failure: %d/%d expected words not found", len(unfound), len(puzzle.Expected))
		for _, word := range unfound {
			result.Errors = append(result.Errors, fmt.Sprintf("Not found: %s", word))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Solvability: %d words found, all %d expected words present", found.Len(), len(puzzle.Expected)))
	}

	return result
}

// main scans ../configs (or the directory given as the first argument) for
// *.json files and validates each one, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
