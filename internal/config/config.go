package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/justyntemme/plane/internal/debug"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Home    string        `json:"home,omitempty"` // Overrides the user's home directory
	Tags    TagsConfig    `json:"tags"`
	History HistoryConfig `json:"history"`
	PathBar PathBarConfig `json:"pathBar"`
	TagView TagViewConfig `json:"tagView"`
	Watch   WatchConfig   `json:"watch"`
	Store   StoreConfig   `json:"store"`
	Tabs    TabsConfig    `json:"tabs"`
	Trash   TrashConfig   `json:"trash"`
}

// TagsConfig locates the tag file
type TagsConfig struct {
	File string `json:"file"` // Defaults to ~/.hyperplane
}

// HistoryConfig bounds navigation history per tab
type HistoryConfig struct {
	MaxEntries int `json:"maxEntries"`
}

// PathBarConfig holds path bar settings
type PathBarConfig struct {
	TransitionMs int    `json:"transitionMs"`
	HomeLabel    string `json:"homeLabel"`
}

// TagViewConfig controls how tag folders are collected
type TagViewConfig struct {
	Ignore   []string `json:"ignore"`   // Glob patterns matched against folder names
	MaxDepth int      `json:"maxDepth"` // Deepest tag folder nesting considered
}

// WatchConfig controls reloading the tag file after outside edits
type WatchConfig struct {
	Enabled    bool `json:"enabled"`
	DebounceMs int  `json:"debounceMs"`
}

// StoreConfig locates the window state database
type StoreConfig struct {
	Path string `json:"path"`
}

// TabsConfig holds tab-related settings
type TabsConfig struct {
	RestoreOnStart bool   `json:"restoreOnStart"`
	NewTabLocation string `json:"newTabLocation"` // "current" | "home" | custom path
}

// TrashConfig holds trash behavior
type TrashConfig struct {
	UndoDepth int `json:"undoDepth"`
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager for the file at path.
// An empty path uses ConfigPath.
func NewManager(path string) *Manager {
	if path == "" {
		path = ConfigPath()
	}
	return &Manager{
		config: DefaultConfig(),
		path:   path,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{MaxEntries: 100},
		PathBar: PathBarConfig{TransitionMs: 250, HomeLabel: "Home"},
		TagView: TagViewConfig{
			Ignore:   []string{".*", "node_modules", "__pycache__"},
			MaxDepth: 8,
		},
		Watch: WatchConfig{Enabled: true, DebounceMs: 200},
		Tabs:  TabsConfig{RestoreOnStart: true, NewTabLocation: "current"},
		Trash: TrashConfig{UndoDepth: 20},
	}
}

// ConfigPath returns the config file path: ~/.config/plane/config.json
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "plane", "config.json")
}

// Load reads the configuration from the config file
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		debug.Error(debug.CONFIG, "failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		debug.Log(debug.CONFIG, "creating default config at %s", m.path)
		m.config = DefaultConfig()
		return m.saveUnlocked()
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	// Start from defaults so missing sections keep sane values
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		debug.Error(debug.CONFIG, "JSON parse error in %s: %v", m.path, err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil
	}

	debug.Log(debug.CONFIG, "loaded from %s", m.path)
	m.config = cfg
	return nil
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// Path returns the config file location
func (m *Manager) Path() string { return m.path }

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// HomeDir returns the configured home, falling back to the user's.
func (c Config) HomeDir() string {
	if c.Home != "" {
		return filepath.Clean(c.Home)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return string(filepath.Separator)
	}
	return home
}

// TagFile returns the tag file path, ~/.hyperplane unless configured.
func (c Config) TagFile() string {
	if c.Tags.File != "" {
		return c.Tags.File
	}
	return filepath.Join(c.HomeDir(), ".hyperplane")
}

// StorePath returns the window state database path.
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "plane", "state.db")
}

// Transition returns the path bar transition duration.
func (c Config) Transition() time.Duration {
	if c.PathBar.TransitionMs < 0 {
		return 0
	}
	return time.Duration(c.PathBar.TransitionMs) * time.Millisecond
}
