// Package engine provides the core word search for the boggle solver.
//
// The engine package implements:
//   - Board construction and validation (rectangular rune grids)
//   - 8-connected neighbour enumeration
//   - Depth-first backtracking search driven by a dictionary trie
//   - Witnessing paths for found words and single-word tracing
//   - Puzzle configuration loading and validation
//
// Core Types:
//
// Board is an immutable grid of runes. Solver walks a Board together with a
// trie.Trie and collects every dictionary word that can be spelled by a path
// of distinct, pairwise adjacent cells. Result maps each found word to one
// witnessing path. PuzzleConfig describes a board plus dictionary loaded from
// JSON files.
//
// Usage:
//
//	board, err := engine.NewBoard([]string{"thisisa", "simplex", "bxxxxeb", "xogglxo"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	dict, err := trie.FromWords([]string{"this", "is", "a", "simple", "boggle"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := engine.NewSolver(board, dict).Solve(ctx)
//	words := result.Words() // sorted
//
// Search Rules:
//
// Every cell is a starting point. A path may move to any of the 8
// surrounding cells but may not reuse a cell. Different words may share
// cells. Visitation is marked on entry to a cell and always cleared on exit,
// so sibling branches and later starting cells see a clean grid.
//
// Concurrency:
//
// WithWorkers fans the starting cells out over a bounded errgroup. Each task
// owns its own visited grid; partial results are merged in start order, so
// parallel and sequential runs report the same words and paths.
package engine
