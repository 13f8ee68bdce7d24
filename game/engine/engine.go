package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wricardo/mcp-training/bogglesolver/game/trie"
)

// Option configures a Solver
type Option func(*Solver)

// WithWorkers runs the starting cells on up to n goroutines.
// n <= 1 keeps the search on the calling goroutine.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithNodeBudget aborts the search with ErrBudgetExceeded after n
// trie-matching steps. n <= 0 means unlimited.
func WithNodeBudget(n int64) Option {
	return func(s *Solver) {
		s.budget = n
	}
}

// WithAlphabet makes Solve reject boards and dictionary words that use a
// rune outside alphabet.
func WithAlphabet(alphabet string) Option {
	return func(s *Solver) {
		s.alphabet = alphabet
	}
}

// Solver finds every dictionary word that can be traced on a board.
// Board and dictionary are only read, so one Solver may run concurrently.
type Solver struct {
	board    *Board
	dict     *trie.Trie
	workers  int
	budget   int64
	alphabet string
}

// NewSolver creates a solver over board and dict
func NewSolver(board *Board, dict *trie.Trie, opts ...Option) *Solver {
	s := &Solver{
		board:   board,
		dict:    dict,
		workers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Board returns the board being searched
func (s *Solver) Board() *Board {
	return s.board
}

// Dictionary returns the trie being matched
func (s *Solver) Dictionary() *trie.Trie {
	return s.dict
}

// Workers returns the configured parallelism
func (s *Solver) Workers() int {
	return s.workers
}

// Solve starts one search per board cell and returns every word found.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if err := s.checkAlphabet(); err != nil {
		return nil, err
	}

	start := time.Now()

	var (
		found map[string][]Position
		nodes int64
		err   error
	)
	if s.workers > 1 {
		found, nodes, err = s.solveParallel(ctx)
	} else {
		found, nodes, err = s.solveSequential(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Found: found,
		Stats: Stats{
			Nodes:      nodes,
			StartCells: s.board.Size(),
			Workers:    s.workers,
			Duration:   time.Since(start),
		},
	}, nil
}

func (s *Solver) checkAlphabet() error {
	if s.alphabet == "" {
		return nil
	}
	if err := s.board.CheckAlphabet(s.alphabet); err != nil {
		return err
	}
	for _, word := range s.dict.Words() {
		if err := CheckWordAlphabet(word, s.alphabet); err != nil {
			return err
		}
	}
	return nil
}

func (s *Solver) solveSequential(ctx context.Context) (map[string][]Position, int64, error) {
	w := s.newWalker(ctx, new(atomic.Int64))

	for r := 0; r < s.board.rows; r++ {
		for c := 0; c < s.board.cols; c++ {
			if err := ctx.Err(); err != nil {
				return nil, w.nodes, err
			}
			if err := w.explore(Position{Row: r, Col: c}, trie.Root); err != nil {
				return nil, w.nodes, err
			}
		}
	}
	return w.found, w.nodes, nil
}

// solveParallel searches starting cells concurrently and merges the partial
// results in row-major start order. Walkers are recycled between start
// cells; a finished search leaves visited clear and path empty.
func (s *Solver) solveParallel(ctx context.Context) (map[string][]Position, int64, error) {
	size := s.board.Size()
	partials := make([]map[string][]Position, size)
	counts := make([]int64, size)
	spent := new(atomic.Int64)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	walkers := sync.Pool{
		New: func() any { return s.newWalker(gctx, spent) },
	}

	for idx := 0; idx < size; idx++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w := walkers.Get().(*walker)
			defer walkers.Put(w)
			w.found, w.nodes = nil, 0

			p := Position{Row: idx / s.board.cols, Col: idx % s.board.cols}
			err := w.explore(p, trie.Root)
			partials[idx] = w.found
			counts[idx] = w.nodes
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	found := make(map[string][]Position)
	var nodes int64
	for idx, partial := range partials {
		nodes += counts[idx]
		for word, path := range partial {
			if _, ok := found[word]; !ok {
				found[word] = path
			}
		}
	}
	return found, nodes, nil
}

// walker holds the state of one active search path
type walker struct {
	ctx     context.Context
	board   *Board
	dict    *trie.Trie
	visited []bool
	path    []Position
	found   map[string][]Position
	nodes   int64
	budget  int64
	spent   *atomic.Int64
}

func (s *Solver) newWalker(ctx context.Context, spent *atomic.Int64) *walker {
	return &walker{
		ctx:     ctx,
		board:   s.board,
		dict:    s.dict,
		visited: make([]bool, s.board.Size()),
		found:   make(map[string][]Position),
		budget:  s.budget,
		spent:   spent,
	}
}

// visitGuard undoes one enter call
type visitGuard struct {
	w   *walker
	idx int
}

// enter marks p visited and pushes it on the path. The returned guard must
// be released when the branch rooted at p is done.
func (w *walker) enter(p Position) visitGuard {
	idx := p.Row*w.board.cols + p.Col
	w.visited[idx] = true
	w.path = append(w.path, p)
	return visitGuard{w: w, idx: idx}
}

func (g visitGuard) leave() {
	g.w.visited[g.idx] = false
	g.w.path = g.w.path[:len(g.w.path)-1]
}

func (w *walker) isVisited(p Position) bool {
	return w.visited[p.Row*w.board.cols+p.Col]
}

// explore extends the current path into p, having matched the prefix
// ending at trie node n.
func (w *walker) explore(p Position, n trie.NodeID) error {
	if w.isVisited(p) {
		return nil
	}
	next, ok := w.dict.Child(n, w.board.At(p))
	if !ok {
		return nil
	}

	defer w.enter(p).leave()

	if err := w.step(); err != nil {
		return err
	}

	if word, ok := w.dict.Terminal(next); ok {
		w.record(word)
	}
	if !w.dict.HasChildren(next) {
		return nil
	}

	var buf [8]Position
	for _, q := range AppendNeighbors(buf[:0], p, w.board.rows, w.board.cols) {
		if w.isVisited(q) {
			continue
		}
		if err := w.explore(q, next); err != nil {
			return err
		}
	}
	return nil
}

// record keeps the first witnessing path seen for word
func (w *walker) record(word string) {
	if _, ok := w.found[word]; ok {
		return
	}
	if w.found == nil {
		w.found = make(map[string][]Position)
	}
	w.found[word] = append([]Position(nil), w.path...)
}

func (w *walker) step() error {
	w.nodes++
	if w.budget > 0 && w.spent.Add(1) > w.budget {
		return fmt.Errorf("%w: limit %d", ErrBudgetExceeded, w.budget)
	}
	if w.nodes%cancelCheckInterval == 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
