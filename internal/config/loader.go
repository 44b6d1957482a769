package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Loader locates the configuration file.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
	Home         string
	WorkDir      string
}

// NewLoader creates a new Loader for the current user and directory.
func NewLoader(version string, overridePath string) *Loader {
	home, _ := os.UserHomeDir()
	wd, _ := os.Getwd()
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
		Home:         home,
		WorkDir:      wd,
	}
}

// candidates lists the places a config file may live, most specific first.
func (l *Loader) candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" && l.WorkDir != "" {
		paths = append(paths, filepath.Join(l.WorkDir, ".drafterrc"))
	}
	if l.Home != "" {
		paths = append(paths, l.DefaultPath())
	}
	return paths
}

// DefaultPath is where a new config file is written.
func (l *Loader) DefaultPath() string {
	return filepath.Join(l.Home, ".config", "drafter", "config.rc")
}

// Path returns the config file in use, or "" when there is none.
func (l *Loader) Path() string {
	for _, p := range l.candidates() {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// Load parses the config file in use, or returns defaults when there is
// none.
func (l *Loader) Load() (*Config, error) {
	path := l.Path()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to the config file in use, or to DefaultPath, and returns
// the path written.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.Path()
	if path == "" {
		if l.Home == "" {
			return "", errors.New("no home directory to save the config in")
		}
		path = l.DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
