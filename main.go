// Command bogglesolver finds dictionary words on letter grids.
//
// It supports three commands:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "solve" – solves one board from the command line and prints the words found
//
// Flags control host/port, puzzle directory, debug logging, version output,
// and optional ngrok tunneling for easy external access during development.
// Every server flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/bogglesolver/api"
	"github.com/wricardo/mcp-training/bogglesolver/game/config"
	"github.com/wricardo/mcp-training/bogglesolver/game/engine"
	"github.com/wricardo/mcp-training/bogglesolver/game/service"
	"github.com/wricardo/mcp-training/bogglesolver/game/session"
	"github.com/wricardo/mcp-training/bogglesolver/transport/mcp"
	"github.com/wricardo/mcp-training/bogglesolver/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Boggle Solver Server"
)

const (
	sessionMaxAge   = 24 * time.Hour
	cleanupInterval = time.Hour
)

// main loads .env, then hands the command line to the command tree.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree. Root flags are inherited by every command.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "bogglesolver",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing puzzle configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint (default)",
				Action:  runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server, starting an internal HTTP server if needed",
				Action:  runMCP,
			},
			solveCommand(),
		},
	}
}

func setupLogging(debug bool) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// initializeServices wires session/config managers and the solver service.
func initializeServices(configDir string) (service.SolverService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	return service.NewSolverService(sessionManager, configManager), sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge. It returns when ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			manager.CleanupExpiredSessions(sessionMaxAge)
		}
	}
}

// newRouter combines the REST API with the /mcp JSON-RPC endpoint
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))
	log.Printf("Starting %s v%s (mode: serve)", AppName, Version)

	solverService, sessionManager, err := initializeServices(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessionCleanupRoutine(ctx, sessionManager, cleanupInterval)

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	handler := newRouter(api.NewServer(solverService, hub), mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), handler)
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	default:
		return nil
	}
}

// runNgrok serves handler through an ngrok tunnel until ctx is done
func runNgrok(ctx context.Context, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	// Closing the tunnel unblocks http.Serve
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runMCP runs an MCP stdio server. It reuses an API already listening on
// host:port; otherwise it starts an internal HTTP API on a random loopback
// port and targets that.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))
	log.Printf("Starting %s v%s (mode: mcp)", AppName, Version)

	externalURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), cmd.Int("port"))
	baseURL := externalURL

	log.Printf("Checking for external API server at %s...", externalURL)
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		solverService, sessionManager, err := initializeServices(cmd.String("config-dir"))
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		go sessionCleanupRoutine(ctx, sessionManager, cleanupInterval)

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()
		defer hub.Stop()

		httpServer := &http.Server{Handler: api.NewServer(solverService, hub)}
		defer httpServer.Close()

		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// solveCommand solves one board from the command line
func solveCommand() *cli.Command {
	return &cli.Command{
		Name:  "solve",
		Usage: "Solve a board and print the words found, one per line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "puzzle",
				Usage: "Stored puzzle to start from (from --config-dir)",
			},
			&cli.StringFlag{
				Name:  "board",
				Usage: "File with one board row per line",
			},
			&cli.StringSliceFlag{
				Name:  "row",
				Usage: "Board row (repeat for each row)",
			},
			&cli.StringFlag{
				Name:  "words",
				Usage: "File with one dictionary word per line",
			},
			&cli.StringSliceFlag{
				Name:  "word",
				Usage: "Dictionary word (repeatable)",
			},
			&cli.StringFlag{
				Name:  "alphabet",
				Usage: "Restrict board and words to these characters",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 1,
				Usage: "Start cells searched in parallel",
			},
			&cli.Int64Flag{
				Name:  "max-nodes",
				Usage: "Abort after this many search steps (0 for unlimited)",
			},
			&cli.BoolFlag{
				Name:  "paths",
				Usage: "Print the cell path after each word",
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "Write a profile of the solve: cpu or mem",
			},
			&cli.StringFlag{
				Name:  "profile-dir",
				Value: ".",
				Usage: "Directory for profile output",
			},
		},
		Action: runSolve,
	}
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))

	puzzle, err := puzzleFromFlags(cmd)
	if err != nil {
		return err
	}

	if mode := cmd.String("profile"); mode != "" {
		kind, err := profileMode(mode)
		if err != nil {
			return err
		}
		defer profile.Start(kind, profile.ProfilePath(cmd.String("profile-dir")), profile.NoShutdownHook).Stop()
	}

	opts := []engine.Option{engine.WithWorkers(cmd.Int("workers"))}
	if maxNodes := cmd.Int64("max-nodes"); maxNodes > 0 {
		opts = append(opts, engine.WithNodeBudget(maxNodes))
	}

	solver, err := engine.NewSolverFromConfig(puzzle, opts...)
	if err != nil {
		return err
	}
	result, err := solver.Solve(ctx)
	if err != nil {
		return err
	}

	log.Printf("[SOLVE] puzzle=%s %dx%d dict=%d found=%d nodes=%d workers=%d took=%s",
		puzzle.Name, solver.Board().Rows(), solver.Board().Cols(), solver.Dictionary().Len(),
		result.Len(), result.Stats.Nodes, result.Stats.Workers, result.Stats.Duration)

	return writeSolveResult(cmd.Root().Writer, result, cmd.Bool("paths"))
}

// puzzleFromFlags starts from --puzzle (if any) and overlays the board,
// words and alphabet given on the command line.
func puzzleFromFlags(cmd *cli.Command) (*engine.PuzzleConfig, error) {
	puzzle := &engine.PuzzleConfig{Name: "cli"}

	if name := cmd.String("puzzle"); name != "" {
		configManager, err := config.NewManager(cmd.String("config-dir"))
		if err != nil {
			return nil, err
		}
		stored, err := configManager.LoadConfig(name)
		if err != nil {
			return nil, err
		}
		// Copy so overrides never touch the cached puzzle
		copied := *stored
		puzzle = &copied
	}

	var rows []string
	if path := cmd.String("board"); path != "" {
		fileRows, err := engine.ReadWordListFile(path)
		if err != nil {
			return nil, fmt.Errorf("board file: %w", err)
		}
		rows = append(rows, fileRows...)
	}
	rows = append(rows, cmd.StringSlice("row")...)
	if len(rows) > 0 {
		puzzle.Board = rows
		puzzle.Expected = nil
	}

	var words []string
	if path := cmd.String("words"); path != "" {
		fileWords, err := engine.ReadWordListFile(path)
		if err != nil {
			return nil, fmt.Errorf("words file: %w", err)
		}
		words = append(words, fileWords...)
	}
	words = append(words, cmd.StringSlice("word")...)
	if len(words) > 0 {
		puzzle.Words = words
		puzzle.Expected = nil
	}

	if alphabet := cmd.String("alphabet"); alphabet != "" {
		puzzle.Alphabet = alphabet
	}

	if len(puzzle.Board) == 0 {
		return nil, fmt.Errorf("no board given: use --puzzle, --board or --row")
	}
	return puzzle, nil
}

func profileMode(mode string) (func(*profile.Profile), error) {
	switch strings.ToLower(mode) {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q (use cpu or mem)", mode)
	}
}

// writeSolveResult prints the found words in sorted order, one per line
func writeSolveResult(w io.Writer, result *engine.Result, withPaths bool) error {
	for _, word := range result.Words() {
		line := word
		if withPaths {
			cells := make([]string, 0, len(result.Found[word]))
			for _, p := range result.Found[word] {
				cells = append(cells, p.String())
			}
			line = fmt.Sprintf("%s\t%s", word, strings.Join(cells, " "))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
