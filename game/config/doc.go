// Package config provides puzzle configuration management for the boggle solver.
//
// The config package handles:
//   - Loading puzzle configurations from JSON files
//   - Configuration validation
//   - Default puzzle management
//   - Puzzle discovery and listing
//
// Configuration Format:
//
// Puzzles are stored as JSON files in the configs directory. Each puzzle
// defines:
//   - board: one string per row, all rows the same length
//   - words: the dictionary, and/or words_file pointing at a word list
//     (one word per line, '#' comments) relative to the JSON file
//   - alphabet: optional set of allowed characters
//   - expected: optional words a solve must find
//
// Available Configurations:
//
//   - sample: the four-row sample board, also built in as the fallback default
//   - classic: the full nine-row board with mixed case and punctuation
//   - letters: a 4x4 board checked against a word list file
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	puzzle, err := manager.LoadConfig("classic")
//	defaultPuzzle := manager.GetDefault()
//	puzzles, err := manager.ListConfigs()
//
// Caching:
//
// Loaded puzzles are cached by name. RefreshCache drops the cache so edited
// files are picked up again.
package config
