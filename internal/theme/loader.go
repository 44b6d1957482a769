package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned by Loader.Load for a name no source knows.
var ErrNotFound = errors.New("theme not found")

const ext = ".theme"

// Loader resolves theme names. Sources are tried in order: themes defined
// in the config file, a path to a theme file, the embedded themes, the user
// theme directory and the system theme directory.
type Loader struct {
	Custom    map[string]*Theme
	ConfigDir string
	SystemDir string
}

// NewLoader returns a Loader using the standard directories.
func NewLoader(custom map[string]*Theme) *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		Custom:    custom,
		ConfigDir: filepath.Join(home, ".config", "drafter", "themes"),
		SystemDir: "/usr/share/drafter/themes",
	}
}

// Load returns the named theme. The empty name is the default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if t, ok := l.Custom[name]; ok {
		cp := *t
		return &cp, nil
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	file := strings.TrimSuffix(name, ext) + ext
	if t, err := parseFile(EmbeddedThemes, path.Join("defaults", file)); err == nil {
		return t, nil
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		t, err := parseFile(os.DirFS(dir), file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return t, err
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return t, nil
}

// Names lists every theme the loader can find by name, sorted.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	for name := range l.Custom {
		seen[name] = true
	}
	add := func(fsys fs.FS, dir string) {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
				seen[strings.TrimSuffix(e.Name(), ext)] = true
			}
		}
	}
	add(EmbeddedThemes, "defaults")
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			add(os.DirFS(dir), ".")
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
