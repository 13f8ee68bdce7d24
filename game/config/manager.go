package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/wricardo/mcp-training/bogglesolver/game/engine"
	"github.com/wricardo/mcp-training/bogglesolver/game/service"
)

var (
	ErrConfigNotFound = service.ErrPuzzleNotFound
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Name of the puzzle used when no puzzle is requested
const DefaultPuzzleName = "sample"

// Manager handles puzzle configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.PuzzleConfig
	configs       map[string]*engine.PuzzleConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.PuzzleConfig),
	}

	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a puzzle by name. The .json extension is optional.
func (m *Manager) LoadConfig(name string) (*engine.PuzzleConfig, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	// Names are plain file stems; anything else cannot live in configDir
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, ErrConfigNotFound
	}

	configPath := filepath.Join(m.configDir, name+".json")
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := engine.LoadPuzzleConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
	}

	// Cache the config
	m.configs[name] = config
	return config, nil
}

// ListConfigs returns information about all valid puzzles in the config directory
func (m *Manager) ListConfigs() ([]*service.PuzzleInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.PuzzleInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		// Remove .json extension for config name
		name := strings.TrimSuffix(entry.Name(), ".json")

		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			log.Printf("Warning: skipping puzzle %s: %v", entry.Name(), err)
			continue
		}

		configs = append(configs, &service.PuzzleInfo{
			Filename:    entry.Name(),
			PuzzleID:    name, // This is the identifier to use for session creation
			Name:        config.Name,
			Description: config.Description,
			Rows:        len(config.Board),
			Cols:        utf8.RuneCountInString(config.Board[0]),
			WordCount:   len(config.Words),
		})
	}

	return configs, nil
}

// GetDefault returns the default puzzle
func (m *Manager) GetDefault() *engine.PuzzleConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default puzzle by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops all cached puzzles and reloads the default from disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.PuzzleConfig)
	m.mu.Unlock()

	m.loadDefaultConfig()
}

// ValidateConfig validates a puzzle without loading it into the cache
func (m *Manager) ValidateConfig(config *engine.PuzzleConfig) error {
	if err := engine.ValidatePuzzleConfig(config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// loadDefaultConfig uses sample.json when present and valid, otherwise the
// built-in sample puzzle.
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig(DefaultPuzzleName)
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			log.Printf("Warning: %v; using built-in sample puzzle", err)
		}
		config = engine.DefaultPuzzle()
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}
