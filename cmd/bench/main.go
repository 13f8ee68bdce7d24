// Command bench drives a running solver server over its REST API. For each
// stored puzzle it opens a session, solves it repeatedly and reports timing
// and search statistics, failing when an expected word goes missing.
//
// Usage:
//
//	go run ./cmd/bench --url http://localhost:8080 --runs 10 --workers 4
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/bogglesolver/game/service"
)

// Client talks to the solver REST API
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) ListPuzzles(ctx context.Context) ([]service.PuzzleInfo, error) {
	var puzzles []service.PuzzleInfo
	err := c.do(ctx, http.MethodGet, "/api/puzzles", nil, &puzzles)
	return puzzles, err
}

func (c *Client) CreateSession(ctx context.Context, puzzleID string) (*service.SessionInfo, error) {
	var info service.SessionInfo
	body := map[string]string{"puzzle_id": puzzleID}
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) Solve(ctx context.Context, sessionID string, opts service.SolveOptions) (*service.SolveResult, error) {
	var result service.SolveResult
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/solve", opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+sessionID, nil, nil)
}

// Report summarizes repeated solves of one puzzle
type Report struct {
	PuzzleID        string
	Runs            int
	Words           int
	Nodes           int64
	Fastest         time.Duration
	Slowest         time.Duration
	Total           time.Duration
	MissingExpected []string
	Inconsistent    bool // a later run found a different word count than the first
}

// Mean returns the average server-side solve time
func (r *Report) Mean() time.Duration {
	if r.Runs == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Runs)
}

// benchPuzzle opens a session for puzzleID, solves it runs times and closes
// the session again.
func benchPuzzle(ctx context.Context, c *Client, puzzleID string, runs int, opts service.SolveOptions) (*Report, error) {
	session, err := c.CreateSession(ctx, puzzleID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := c.DeleteSession(context.WithoutCancel(ctx), session.ID); err != nil {
			log.Printf("Failed to delete session %s: %v", session.ID, err)
		}
	}()

	report := &Report{PuzzleID: puzzleID}
	for i := 0; i < runs; i++ {
		result, err := c.Solve(ctx, session.ID, opts)
		if err != nil {
			return report, fmt.Errorf("run %d: %w", i+1, err)
		}

		took := result.Stats.Duration
		if report.Runs == 0 {
			report.Words = result.Count
			report.Nodes = result.Stats.Nodes
			report.MissingExpected = result.MissingExpected
			report.Fastest, report.Slowest = took, took
		} else if result.Count != report.Words {
			report.Inconsistent = true
		}
		report.Fastest = min(report.Fastest, took)
		report.Slowest = max(report.Slowest, took)
		report.Total += took
		report.Runs++
	}
	return report, nil
}

func printReport(w io.Writer, r *Report) {
	fmt.Fprintf(w, "%-16s runs=%d words=%d nodes=%d mean=%s fastest=%s slowest=%s\n",
		r.PuzzleID, r.Runs, r.Words, r.Nodes, r.Mean(), r.Fastest, r.Slowest)
	if len(r.MissingExpected) > 0 {
		fmt.Fprintf(w, "  ❌ missing expected: %s\n", strings.Join(r.MissingExpected, ", "))
	}
	if r.Inconsistent {
		fmt.Fprintf(w, "  ❌ word count changed between runs\n")
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Solve stored puzzles repeatedly against a running server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Value:   "http://localhost:8080",
				Usage:   "Solver server URL",
				Sources: cli.EnvVars("BOGGLE_URL"),
			},
			&cli.StringSliceFlag{
				Name:  "puzzle",
				Usage: "Puzzle to benchmark (repeatable, default all stored puzzles)",
			},
			&cli.IntFlag{
				Name:  "runs",
				Value: 5,
				Usage: "Solves per puzzle",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 1,
				Usage: "Start cells searched in parallel on the server",
			},
			&cli.Int64Flag{
				Name:  "max-nodes",
				Usage: "Search step budget per solve (0 for unlimited)",
			},
		},
		Action: runBench,
	}
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	client := NewClient(cmd.String("url"))
	out := cmd.Root().Writer

	puzzleIDs := cmd.StringSlice("puzzle")
	if len(puzzleIDs) == 0 {
		puzzles, err := client.ListPuzzles(ctx)
		if err != nil {
			return err
		}
		for _, p := range puzzles {
			puzzleIDs = append(puzzleIDs, p.PuzzleID)
		}
	}

	opts := service.SolveOptions{
		Workers:  cmd.Int("workers"),
		MaxNodes: cmd.Int64("max-nodes"),
	}

	failed := 0
	for _, id := range puzzleIDs {
		report, err := benchPuzzle(ctx, client, id, cmd.Int("runs"), opts)
		if err != nil {
			fmt.Fprintf(out, "%-16s ❌ %v\n", id, err)
			failed++
			continue
		}
		printReport(out, report)
		if len(report.MissingExpected) > 0 || report.Inconsistent {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d puzzles failed", failed, len(puzzleIDs))
	}
	return nil
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
