package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader locates and loads the settings file.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Explicit path, e.g. from CROPTAG_SETTINGS
}

// NewLoader creates a new Loader.
func NewLoader(version, overridePath string) *Loader {
	if overridePath == "" {
		overridePath = os.Getenv("CROPTAG_SETTINGS")
	}
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load reads settings from the first file SettingsPath finds, or returns
// the defaults when no file exists.
func (l *Loader) Load() (*Settings, error) {
	path := l.SettingsPath()
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SettingsPath returns the path to the settings file, or an empty string
// when none is found. Precedence: override path, the working directory,
// then the XDG config directory.
func (l *Loader) SettingsPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	wd, _ := os.Getwd()
	localPath := filepath.Join(wd, "settings.yaml")
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	home, _ := os.UserHomeDir()
	xdgPath := filepath.Join(home, ".config", "croptag", "settings.yaml")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ""
}
