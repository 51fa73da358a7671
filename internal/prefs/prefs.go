// Package prefs persists picker UI preferences between runs.
// Preferences are stored as prefs.toml in the config directory.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/f3rmion/symbols/internal/facet"
)

// FileName is the preferences file inside the config directory.
const FileName = "prefs.toml"

// Prefs holds what the picker restores on the next launch.
type Prefs struct {
	Sort      string `toml:"sort"`       // facet order: name or range
	LastSet   string `toml:"last_set"`   // set shown last
	LastLabel string `toml:"last_label"` // facet that was active
	LastQuery string `toml:"last_query"` // search text
}

// Default returns preferences for a first run.
func Default() Prefs {
	return Prefs{Sort: facet.ByName.String()}
}

// Path returns the preferences file in dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads preferences from path. A missing or unreadable file yields
// the defaults.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil // Graceful degradation
	}

	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), nil // Graceful degradation
	}
	if _, err := facet.ParseSortOrder(p.Sort); err != nil || p.Sort == "" {
		p.Sort = facet.ByName.String()
	}
	return p, nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// SortOrder returns the parsed facet order.
func (p Prefs) SortOrder() facet.SortOrder {
	order, _ := facet.ParseSortOrder(p.Sort)
	return order
}
