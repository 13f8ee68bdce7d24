package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/wricardo/mcp-training/bogglesolver/game/trie"
)

// PuzzleConfig describes a board together with the dictionary to search it with
type PuzzleConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Board       []string `json:"board"`
	Words       []string `json:"words,omitempty"`
	WordsFile   string   `json:"words_file,omitempty"` // relative to the config file
	Alphabet    string   `json:"alphabet,omitempty"`   // empty allows any rune
	Expected    []string `json:"expected,omitempty"`   // words a solve must find
}

// ValidatePuzzleConfig validates a puzzle configuration before any search runs
func ValidatePuzzleConfig(config *PuzzleConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidPuzzle)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPuzzle)
	}

	// Validate board shape
	if len(config.Board) > MaxBoardSize {
		return fmt.Errorf("%w: board must have at most %d rows, got %d",
			ErrInvalidPuzzle, MaxBoardSize, len(config.Board))
	}
	board, err := NewBoard(config.Board)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPuzzle, err)
	}
	if board.Cols() > MaxBoardSize {
		return fmt.Errorf("%w: board must have at most %d columns, got %d",
			ErrInvalidPuzzle, MaxBoardSize, board.Cols())
	}
	if err := board.CheckAlphabet(config.Alphabet); err != nil {
		return fmt.Errorf("%w: board: %w", ErrInvalidPuzzle, err)
	}

	// Validate dictionary
	if len(config.Words) > MaxDictionarySize {
		return fmt.Errorf("%w: dictionary must have at most %d words, got %d",
			ErrInvalidPuzzle, MaxDictionarySize, len(config.Words))
	}
	words := make(map[string]bool, len(config.Words))
	for i, word := range config.Words {
		if err := CheckWordAlphabet(word, config.Alphabet); err != nil {
			return fmt.Errorf("%w: word %d: %w", ErrInvalidPuzzle, i+1, err)
		}
		words[word] = true
	}

	for _, word := range config.Expected {
		if !words[word] {
			return fmt.Errorf("%w: expected word %q is not in the dictionary", ErrInvalidPuzzle, word)
		}
	}

	return nil
}

// LoadPuzzleConfig loads and validates a puzzle configuration from a JSON file.
// A words_file is read relative to the config file and appended to words.
func LoadPuzzleConfig(filename string) (*PuzzleConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle file '%s': %w", filename, err)
	}

	if config.WordsFile != "" {
		wordsPath := config.WordsFile
		if !filepath.IsAbs(wordsPath) {
			wordsPath = filepath.Join(filepath.Dir(filename), wordsPath)
		}
		words, err := ReadWordListFile(wordsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read words file '%s': %w", config.WordsFile, err)
		}
		config.Words = append(config.Words, words...)
	}

	if err := ValidatePuzzleConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ReadWordList reads one word per line. Surrounding whitespace is trimmed;
// blank lines and lines starting with '#' are skipped.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if !utf8.ValidString(word) {
			return nil, fmt.Errorf("%w: line %d is not valid UTF-8", ErrInvalidWord, line)
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadWordListFile reads a word list from disk
func ReadWordListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWordList(f)
}

// DefaultPuzzle returns the built-in sample puzzle
func DefaultPuzzle() *PuzzleConfig {
	return &PuzzleConfig{
		Name:        "sample",
		Description: "Four-row sample board where most of the dictionary can be traced",
		Board: []string{
			"thisisa",
			"simplex",
			"bxxxxeb",
			"xogglxo",
		},
		Words:    []string{"this", "is", "not", "a", "simple", "boggle", "board"},
		Expected: []string{"a", "boggle", "is", "simple", "this"},
	}
}

// Build constructs the board and dictionary described by the config
func (c *PuzzleConfig) Build() (*Board, *trie.Trie, error) {
	if err := ValidatePuzzleConfig(c); err != nil {
		return nil, nil, err
	}

	board, err := NewBoard(c.Board)
	if err != nil {
		return nil, nil, err
	}

	dict, err := BuildDictionary(c.Words)
	if err != nil {
		return nil, nil, err
	}
	return board, dict, nil
}

// NewSolverFromConfig builds the config and wraps it in a Solver that
// enforces the config's alphabet.
func NewSolverFromConfig(c *PuzzleConfig, opts ...Option) (*Solver, error) {
	board, dict, err := c.Build()
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithAlphabet(c.Alphabet)}, opts...)
	return NewSolver(board, dict, opts...), nil
}
