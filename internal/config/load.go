package config

import (
	"errors"
	"fmt"
	"os"
)

// Loaded captures the resolved settings path, parsed values, and non-fatal warnings.
type Loaded struct {
	Path     string
	Store    *Store
	Warnings []Warning
	Exists   bool
}

// Warning is a non-fatal load message.
type Warning struct {
	Message string
}

// Load resolves the settings path, applies defaults, and overlays the file.
func Load(explicitPath string) (Loaded, error) {
	path := explicitPath
	if path == "" {
		path = DefaultSettingsPath()
	}

	store := &Store{path: path, values: Default()}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Loaded{
				Path:  path,
				Store: store,
				Warnings: []Warning{{
					Message: fmt.Sprintf("settings file %q not found; using defaults", path),
				}},
				Exists: false,
			}, nil
		}
		return Loaded{}, fmt.Errorf("read settings %q: %w", path, err)
	}

	store.overlay(string(content))

	return Loaded{
		Path:   path,
		Store:  store,
		Exists: true,
	}, nil
}
