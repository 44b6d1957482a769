// Package config reads and writes the drafter RC file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/drafter/internal/theme"
)

// Canvas holds the size of the drawing area.
type Canvas struct {
	Width  int
	Height int
	Grid   int
}

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Load   bool
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Tool            string
	Color           string
	Width           int
	StoreDir        string
	Theme           string
	ShowAnnotations bool
	Canvas          Canvas
	Notify          Notify
	Themes          map[string]*theme.Theme
}

// New creates a new Config with defaults. Empty strings leave the choice to
// the environment or the built-in default.
func New() *Config {
	return &Config{
		ShowAnnotations: true,
		Canvas: Canvas{
			Width:  800,
			Height: 600,
			Grid:   20,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Environment variables consulted by ApplyEnv.
const (
	EnvTheme    = "DRAFTER_THEME"
	EnvStoreDir = "DRAFTER_STORE_DIR"
)

// ApplyEnv overrides fields from the environment. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := getenv(EnvStoreDir); v != "" {
		c.StoreDir = v
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Tool != "" {
		fmt.Fprintf(&sb, "tool = %s\n", c.Tool)
	}
	if c.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Color)
	}
	if c.Width != 0 {
		fmt.Fprintf(&sb, "width = %d\n", c.Width)
	}
	if c.StoreDir != "" {
		fmt.Fprintf(&sb, "store_dir = %s\n", c.StoreDir)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "show_annotations = %v\n\n", c.ShowAnnotations)

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "grid = %d\n\n", c.Canvas.Grid)

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "load = %v\n", c.Notify.Load)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\n[theme.%s]\n", name)
		// Writing to a strings.Builder does not fail.
		_ = c.Themes[name].Format(&sb)
	}

	return sb.String()
}
