package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
)

const fileMode = 0o600

// Refresh bounds for live views.
const (
	MinRefresh = time.Second
	MaxRefresh = time.Minute
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no duewatch board found (run 'duewatch init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the board configuration.
type Config struct {
	Version      int              `yaml:"version"`
	Board        BoardConfig      `yaml:"board"`
	TasksDir     string           `yaml:"tasks_dir"`
	Categories   []CategoryConfig `yaml:"categories"`
	Defaults     DefaultsConfig   `yaml:"defaults"`
	LocationName string           `yaml:"location,omitempty"`
	TUI          TUIConfig        `yaml:"tui,omitempty"`

	// dir is the absolute path to the board directory (not serialized).
	dir string `yaml:"-"`
}

// BoardConfig holds board metadata.
type BoardConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DefaultsConfig holds default values for new tasks and the acting user.
type DefaultsConfig struct {
	Category string `yaml:"category"`
	Priority string `yaml:"priority"`
	User     string `yaml:"user,omitempty"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	// Refresh is how often the board re-evaluates urgency, e.g. "30s".
	Refresh string `yaml:"refresh,omitempty"`
	// HideCompleted drops completed tasks from category columns.
	HideCompleted bool `yaml:"hide_completed,omitempty"`
}

// CategoryConfig is one entry in the category catalog.
type CategoryConfig struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Icon  string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Dir returns the absolute path to the board directory.
func (c *Config) Dir() string {
	return c.dir
}

// TasksPath returns the absolute path to the tasks directory.
func (c *Config) TasksPath() string {
	return filepath.Join(c.dir, c.TasksDir)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// UsersPath returns the absolute path to the user registry.
func (c *Config) UsersPath() string {
	return filepath.Join(c.dir, UsersFileName)
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version:      CurrentVersion,
		Board:        BoardConfig{Name: name},
		TasksDir:     DefaultTasksDir,
		Categories:   append([]CategoryConfig{}, DefaultCategories...),
		LocationName: DefaultLocation,
		TUI:          TUIConfig{Refresh: DefaultRefresh},
		Defaults: DefaultsConfig{
			Category: DefaultCategory,
			Priority: DefaultPriority,
		},
	}
}

// SetDir sets the board directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// CategoryIDs returns the catalog ids in configured order.
func (c *Config) CategoryIDs() []string {
	ids := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		ids[i] = cat.ID
	}
	return ids
}

// CategoryByID returns the catalog entry for id, or nil if not found.
func (c *Config) CategoryByID(id string) *CategoryConfig {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// CategoryIndex returns the index of a category in the configured order, or -1.
func (c *Config) CategoryIndex(id string) int {
	return IndexOf(c.CategoryIDs(), id)
}

// Location resolves the configured location. "Local" and "" mean time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.LocationName == "" || c.LocationName == DefaultLocation {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.LocationName)
	if err != nil {
		return nil, fmt.Errorf("%w: location %q: %w", ErrInvalid, c.LocationName, err)
	}
	return loc, nil
}

// RefreshInterval returns the TUI refresh interval, or the default when
// unset or unparseable.
func (c *Config) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.TUI.Refresh)
	if err != nil {
		d, _ = time.ParseDuration(DefaultRefresh)
	}
	return d
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Board.Name == "" {
		return fmt.Errorf("%w: board.name is required", ErrInvalid)
	}
	if c.TasksDir == "" {
		return fmt.Errorf("%w: tasks_dir is required", ErrInvalid)
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	if !contains(Priorities, c.Defaults.Priority) {
		return fmt.Errorf("%w: default priority %q not in priorities list", ErrInvalid, c.Defaults.Priority)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return c.validateTUI()
}

func (c *Config) validateCategories() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: at least 1 category is required", ErrInvalid)
	}
	ids := c.CategoryIDs()
	for i, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: categories[%d].id is required", ErrInvalid, i)
		}
	}
	if hasDuplicates(ids) {
		return fmt.Errorf("%w: categories contain duplicate ids", ErrInvalid)
	}
	if !contains(ids, c.Defaults.Category) {
		return fmt.Errorf("%w: default category %q not in categories list", ErrInvalid, c.Defaults.Category)
	}
	return nil
}

func (c *Config) validateTUI() error {
	if c.TUI.Refresh == "" {
		return nil
	}
	d, err := time.ParseDuration(c.TUI.Refresh)
	if err != nil {
		return fmt.Errorf("%w: invalid tui.refresh %q: %w", ErrInvalid, c.TUI.Refresh, err)
	}
	if d < MinRefresh || d > MaxRefresh {
		return fmt.Errorf("%w: tui.refresh must be between %s and %s", ErrInvalid, MinRefresh, MaxRefresh)
	}
	return nil
}

// Init creates a new board in the given directory with default settings.
// It creates the board directory, tasks subdirectory, and config file.
func Init(dir, name string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)

	if err := os.MkdirAll(cfg.TasksPath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating tasks directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	log.WithField("dir", absDir).Debug("board initialized")
	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given board directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		log.WithFields(log.Fields{"from": oldVersion, "to": cfg.Version}).Info("migrated config")
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a board directory
// containing config.yml. Returns the absolute path to the board directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the board directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.BoardNotFound,
				"no duewatch board found (run 'duewatch init' to create one)")
		}
		dir = parent
	}
}

func contains(slice []string, item string) bool {
	return IndexOf(slice, item) >= 0
}

// IndexOf returns the index of item in slice, or -1 if not found.
func IndexOf(slice []string, item string) int {
	for i, s := range slice {
		if s == item {
			return i
		}
	}
	return -1
}

func hasDuplicates(slice []string) bool {
	seen := make(map[string]bool, len(slice))
	for _, s := range slice {
		if seen[s] {
			return true
		}
		seen[s] = true
	}
	return false
}
