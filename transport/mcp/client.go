package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/bogglesolver/game/engine"
	"github.com/wricardo/mcp-training/bogglesolver/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Boggle Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Boggle Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

WHAT IT DOES:
Given a rectangular letter grid and a dictionary, finds every dictionary word
that can be traced through 8-way adjacent cells without reusing a cell.

AVAILABLE TOOLS:
- solve_board: Solve an inline board, or a stored puzzle by puzzle_id
- list_puzzles: List stored puzzles
- get_puzzle: Show a stored puzzle's board and dictionary
- create_session: Prepare a puzzle once for repeated solves
- list_sessions: List all active sessions
- get_session: Get session details and the last solve
- solve_session: Solve a session's puzzle
- check_word: Trace one word on a session's board
- delete_session: Remove a session
- solver_instructions: Rules, coordinates and tuning options`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	solveOptions := map[string]interface{}{
		"workers": map[string]interface{}{
			"type":        "integer",
			"description": "Number of start cells searched in parallel (optional, default sequential)",
		},
		"max_nodes": map[string]interface{}{
			"type":        "integer",
			"description": "Abort after this many search steps (optional, default unlimited)",
		},
		"include_paths": map[string]interface{}{
			"type":        "boolean",
			"description": "Return one cell path per found word",
		},
		"include_missing": map[string]interface{}{
			"type":        "boolean",
			"description": "List dictionary words that are not on the board",
		},
	}

	// Solving
	solveBoardProps := map[string]interface{}{
		"board": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Board rows, one string per row, all the same length",
		},
		"words": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Dictionary words to search for",
		},
		"puzzle_id": map[string]interface{}{
			"type":        "string",
			"description": "Stored puzzle supplying board and/or words when omitted",
		},
	}
	for k, v := range solveOptions {
		solveBoardProps[k] = v
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_board",
		Description: "Find every dictionary word on a board without creating a session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: solveBoardProps,
		},
	}, c.handleSolveBoard)

	// Puzzles
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List available puzzle configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_puzzle",
		Description: "Show a stored puzzle's board, dictionary and expected words",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle ID from list_puzzles",
				},
			},
			Required: []string{"puzzle_id"},
		},
	}, c.handleGetPuzzle)

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new solver session with optional puzzle selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the puzzle to use (optional, default puzzle otherwise)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active solver sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a solver session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to delete",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Session operations
	solveSessionProps := map[string]interface{}{
		"session_id": map[string]interface{}{
			"type":        "string",
			"description": "Session ID",
		},
	}
	for k, v := range solveOptions {
		solveSessionProps[k] = v
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_session",
		Description: "Find every dictionary word on a session's board",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: solveSessionProps,
			Required:   []string{"session_id"},
		},
	}, c.handleSolveSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "check_word",
		Description: "Check whether one word is in the session dictionary and can be traced on its board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Word to trace",
				},
			},
			Required: []string{"session_id", "word"},
		},
	}, c.handleCheckWord)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solver_instructions",
		Description: "Get the board rules, coordinate system and tuning options",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool call arguments, or an empty map when the
// client sent none.
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func stringList(v interface{}) []string {
	raw, _ := v.([]interface{})
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func solveOptionsFrom(args map[string]interface{}) service.SolveOptions {
	var opts service.SolveOptions
	if workers, ok := args["workers"].(float64); ok {
		opts.Workers = int(workers)
	}
	if maxNodes, ok := args["max_nodes"].(float64); ok {
		opts.MaxNodes = int64(maxNodes)
	}
	opts.IncludePaths, _ = args["include_paths"].(bool)
	opts.IncludeMissing, _ = args["include_missing"].(bool)
	return opts
}

// Tool handlers

func (c *Client) handleSolveBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	puzzleID, _ := args["puzzle_id"].(string)

	req := service.SolveRequest{
		Board:        stringList(args["board"]),
		Words:        stringList(args["words"]),
		PuzzleID:     puzzleID,
		SolveOptions: solveOptionsFrom(args),
	}
	if len(req.Board) == 0 && puzzleID == "" {
		return mcp.NewToolResultError("either board or puzzle_id is required"), nil
	}

	var result service.SolveResult
	if err := c.apiCall(ctx, "POST", "/api/solve", req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var puzzles []service.PuzzleInfo
	if err := c.apiCall(ctx, "GET", "/api/puzzles", nil, &puzzles); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Puzzles:\n\n")
	for _, p := range puzzles {
		fmt.Fprintf(&result, "• %s\n  %s\n  Board: %dx%d, Words: %d\n\n",
			p.PuzzleID, p.Description, p.Rows, p.Cols, p.WordCount)
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	puzzleID, _ := args["puzzle_id"].(string)

	var puzzle engine.PuzzleConfig
	if err := c.apiCall(ctx, "GET", "/api/puzzles/"+url.PathEscape(puzzleID), nil, &puzzle); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPuzzle(&puzzle)), nil
}

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	puzzleID, _ := args["puzzle_id"].(string)

	body := map[string]string{}
	if puzzleID != "" {
		body["puzzle_id"] = puzzleID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPuzzle: %s\n\n%s", session.ID, session.PuzzleID, formatBoard(session.Board))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&result, "- %s (Puzzle: %s, %dx%d, Solves: %d, Created: %s)\n",
			s.ID, s.PuzzleID, s.Rows, s.Cols, s.SolveCount, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", "/api/sessions/"+url.PathEscape(sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string `json:"message"`
	}
	if err := c.apiCall(ctx, "DELETE", "/api/sessions/"+url.PathEscape(sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message), nil
}

func (c *Client) handleSolveSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	var result service.SolveResult
	path := fmt.Sprintf("/api/sessions/%s/solve", url.PathEscape(sessionID))
	if err := c.apiCall(ctx, "POST", path, solveOptionsFrom(args), &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleCheckWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	word, _ := args["word"].(string)
	if word == "" {
		return mcp.NewToolResultError("word is required"), nil
	}

	var check service.WordCheck
	path := fmt.Sprintf("/api/sessions/%s/words/%s", url.PathEscape(sessionID), url.PathEscape(word))
	if err := c.apiCall(ctx, "GET", path, nil, &check); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatWordCheck(&check)), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Boggle Solver - Instructions

BOARD:
• A board is a list of rows, each row a string of single-character cells
• Every row must have the same number of characters
• Cells are compared exactly: 'A' and 'a' are different letters

WORDS:
• A word is found when its letters can be read along a path of cells
• Consecutive cells must touch horizontally, vertically or diagonally
• A cell can be used at most once within the same word
• Single-letter words count; duplicates in the dictionary are ignored

COORDINATES:
• Paths are reported as (rROW, cCOL), zero-based from the top-left cell
• Only one path is reported per word even when several exist

TUNING:
• workers: search start cells in parallel; results are identical either way
• max_nodes: stop with an error once the search takes this many steps
• include_missing: list dictionary words that could not be traced

TYPICAL FLOW:
1. list_puzzles to see stored boards, or call solve_board with your own
2. create_session to reuse a puzzle across several calls
3. solve_session, then check_word to inspect individual words`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

// formatBoard renders rows with column and row indices for reading paths
func formatBoard(rows []string) string {
	if len(rows) == 0 {
		return "(empty board)"
	}

	var b strings.Builder
	cols := len([]rune(rows[0]))
	b.WriteString("    ")
	for c := 0; c < cols; c++ {
		fmt.Fprintf(&b, "%-3d", c)
	}
	b.WriteString("\n")
	for r, row := range rows {
		fmt.Fprintf(&b, "%2d  ", r)
		for _, ch := range row {
			fmt.Fprintf(&b, "%-3c", ch)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatPath(path []engine.Position) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return strings.Join(parts, " -> ")
}

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nPuzzle: %s\nCreated: %s\nBoard: %dx%d, Dictionary: %d words, Solves: %d\n\n",
		session.ID, session.PuzzleID,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.Rows, session.Cols, session.DictionarySize, session.SolveCount)
	b.WriteString(formatBoard(session.Board))
	if session.LastResult != nil {
		fmt.Fprintf(&b, "\nLast solve: %d words (%s)\n",
			session.LastResult.Count, strings.Join(session.LastResult.Words, ", "))
	}
	return b.String()
}

func formatPuzzle(puzzle *engine.PuzzleConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Puzzle: %s\n", puzzle.Name)
	if puzzle.Description != "" {
		fmt.Fprintf(&b, "%s\n", puzzle.Description)
	}
	b.WriteString("\n")
	b.WriteString(formatBoard(puzzle.Board))
	fmt.Fprintf(&b, "\nDictionary (%d): %s\n", len(puzzle.Words), strings.Join(puzzle.Words, ", "))
	if len(puzzle.Expected) > 0 {
		fmt.Fprintf(&b, "Expected (%d): %s\n", len(puzzle.Expected), strings.Join(puzzle.Expected, ", "))
	}
	if puzzle.Alphabet != "" {
		fmt.Fprintf(&b, "Alphabet: %s\n", puzzle.Alphabet)
	}
	return b.String()
}

func formatSolveResult(result *service.SolveResult) string {
	var b strings.Builder

	if result.SessionID != "" {
		fmt.Fprintf(&b, "Session: %s\n", result.SessionID)
	}
	if result.PuzzleID != "" {
		fmt.Fprintf(&b, "Puzzle: %s\n", result.PuzzleID)
	}
	fmt.Fprintf(&b, "Board: %dx%d, Dictionary: %d words\n", result.Rows, result.Cols, result.DictionarySize)
	fmt.Fprintf(&b, "Found %d word(s): %s\n", result.Count, strings.Join(result.Words, ", "))

	if len(result.Paths) > 0 {
		b.WriteString("\nPaths:\n")
		words := make([]string, 0, len(result.Paths))
		for w := range result.Paths {
			words = append(words, w)
		}
		sort.Strings(words)
		for _, w := range words {
			fmt.Fprintf(&b, "  %s: %s\n", w, formatPath(result.Paths[w]))
		}
	}

	if len(result.MissingExpected) > 0 {
		fmt.Fprintf(&b, "\nExpected but not found: %s\n", strings.Join(result.MissingExpected, ", "))
	}
	if len(result.Missing) > 0 {
		fmt.Fprintf(&b, "\nNot on board (%d): %s\n", len(result.Missing), strings.Join(result.Missing, ", "))
	}

	fmt.Fprintf(&b, "\nSearch: %d steps, %d worker(s), %s\n",
		result.Stats.Nodes, result.Stats.Workers, result.Stats.Duration)
	return b.String()
}

func formatWordCheck(check *service.WordCheck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s\n", check.Word)
	if check.InDictionary {
		b.WriteString("Dictionary: yes\n")
	} else {
		b.WriteString("Dictionary: no\n")
	}
	if check.OnBoard {
		fmt.Fprintf(&b, "On board: yes\nPath: %s\n", formatPath(check.Path))
	} else {
		b.WriteString("On board: no\n")
	}
	return b.String()
}
