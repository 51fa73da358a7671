// Package config handles loading and saving user configuration for symbols.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/recent"
)

const (
	// FileName is the config file inside the config directory.
	FileName = "symbols.yaml"

	// MemoryStorage disables persistence when used as the storage setting.
	MemoryStorage = "memory"

	starterSetPath = "sets/default.json"
)

//go:embed starter/default.json
var starterSet []byte

// StarterSet returns the bundled character set written by `symbols init`.
func StarterSet() []byte {
	return starterSet
}

// SetConfig registers one character set. Exactly one of Source and Path is
// set: sources are fetched on first use, paths are loaded at startup.
type SetConfig struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source,omitempty"` // http(s) URL or file locator, fetched lazily
	Path   string `yaml:"path,omitempty"`   // local file, loaded eagerly
}

// Config holds all user configuration.
type Config struct {
	Host         string        `yaml:"host"`          // namespaces persisted state
	DefaultSet   string        `yaml:"default_set"`   // set opened by the picker
	FallbackSet  string        `yaml:"fallback_set"`  // pads the recent list; empty disables
	RecentLimit  int           `yaml:"recent_limit"`  // entries kept in the recent list
	Storage      string        `yaml:"storage"`       // sqlite file relative to the config dir, or "memory"
	Columns      int           `yaml:"columns"`       // grid width in cells
	FetchTimeout time.Duration `yaml:"fetch_timeout"` // per-request timeout for remote sets
	Sets         []SetConfig   `yaml:"sets"`
}

// Default returns the configuration written by `symbols init`.
func Default() *Config {
	return &Config{
		Host:         "localhost",
		DefaultSet:   "default",
		FallbackSet:  "default",
		RecentLimit:  recent.DefaultLimit,
		Storage:      "symbols.db",
		Columns:      8,
		FetchTimeout: 10 * time.Second,
		Sets: []SetConfig{
			{Name: "default", Path: starterSetPath},
		},
	}
}

// Load reads the config file at path. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	cfg.Sets = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, returning Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate reports the first problem with cfg.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("config: host must not be empty")
	}
	if c.RecentLimit < 1 {
		return fmt.Errorf("config: recent_limit must be at least 1, got %d", c.RecentLimit)
	}
	if c.Columns < 1 {
		return fmt.Errorf("config: columns must be at least 1, got %d", c.Columns)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("config: fetch_timeout must not be negative")
	}

	seen := make(map[string]bool, len(c.Sets))
	for i, set := range c.Sets {
		if strings.TrimSpace(set.Name) == "" {
			return fmt.Errorf("config: sets[%d] has no name", i)
		}
		if seen[set.Name] {
			return fmt.Errorf("config: set %q is listed twice", set.Name)
		}
		seen[set.Name] = true
		if (set.Source == "") == (set.Path == "") {
			return fmt.Errorf("config: set %q needs exactly one of source or path", set.Name)
		}
	}
	return nil
}

// StoragePath returns the sqlite file for persisted state, or "" when
// persistence is disabled.
func (c *Config) StoragePath(dir string) string {
	if c.Storage == "" || c.Storage == MemoryStorage {
		return ""
	}
	if filepath.IsAbs(c.Storage) {
		return c.Storage
	}
	return filepath.Join(dir, c.Storage)
}

// Register adds every configured set to store. Path sets are read now and
// relative paths resolve against dir; source sets are only recorded.
func (c *Config) Register(store *charset.Store, dir string) error {
	for _, set := range c.Sets {
		if set.Source != "" {
			store.RegisterSource(set.Name, set.Source)
			continue
		}
		path := set.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		entries, err := charset.LoadFile(path)
		if err != nil {
			return fmt.Errorf("loading set %q: %w", set.Name, err)
		}
		if err := store.RegisterInline(set.Name, entries); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDir returns the default configuration directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "symbols"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}

// WriteStarter writes the default config file and the bundled set into dir.
// Existing files are kept unless force is set. It returns the files written.
func WriteStarter(dir string, force bool) ([]string, error) {
	if err := EnsureDir(filepath.Join(dir, filepath.Dir(starterSetPath))); err != nil {
		return nil, err
	}

	var written []string
	cfgPath := filepath.Join(dir, FileName)
	if force || !exists(cfgPath) {
		if err := Save(cfgPath, Default()); err != nil {
			return written, err
		}
		written = append(written, FileName)
	}

	setPath := filepath.Join(dir, starterSetPath)
	if force || !exists(setPath) {
		if err := os.WriteFile(setPath, starterSet, 0o644); err != nil {
			return written, fmt.Errorf("writing starter set: %w", err)
		}
		written = append(written, starterSetPath)
	}
	return written, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
