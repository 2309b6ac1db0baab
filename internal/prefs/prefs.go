// Package prefs handles ingot user preferences persistence.
// Preferences are stored in ~/.config/ingot/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/ingot/internal/config"
)

// Prefs holds user preferences toggled from the UI.
type Prefs struct {
	Theme string `toml:"theme"`
	// PauseInBackground overrides the config file when set.
	PauseInBackground *bool `toml:"pause_in_background,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/ingot/prefs.toml"
	defaultTheme     = "Bullion"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Apply overlays the preferences onto cfg.
func (p Prefs) Apply(cfg config.Config) config.Config {
	if p.PauseInBackground != nil {
		cfg.PauseInBackground = *p.PauseInBackground
	}
	return cfg
}

// WithPauseInBackground returns a copy with the override set to v.
func (p Prefs) WithPauseInBackground(v bool) Prefs {
	p.PauseInBackground = &v
	return p
}

// Load reads preferences from the given path, falling back to defaults if
// the file is missing or unreadable.
func Load(path string) Prefs {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs
		}
		return prefs // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}

	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.ExpandPath(defaultPrefsPath)
	}
	return config.ExpandPath(path)
}
