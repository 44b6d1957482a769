package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/drafter/internal/theme"
)

// Parse reads configuration from an io.Reader. Unknown keys and sections
// are ignored.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			raw := strings.TrimSpace(line[1 : len(line)-1])
			section = strings.ToLower(raw)
			current = nil
			if strings.HasPrefix(section, "theme.") {
				// missing keys keep the default colours
				name := raw[len("theme."):]
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitEntry(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "canvas":
			err = setCanvasField(&cfg.Canvas, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			where := "root section"
			if section != "" {
				where = "[" + section + "]"
			}
			return nil, fmt.Errorf("line %d in %s: %w", lineNo, where, err)
		}
	}

	return cfg, scanner.Err()
}

// splitEntry accepts "key = value" and "Key: value". Surrounding quotes are
// removed from the value.
func splitEntry(line string) (key, value string, ok bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:sep])
	value = strings.TrimSpace(line[sep+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "tool":
		cfg.Tool = value
	case "color", "colour":
		cfg.Color = value
	case "width":
		cfg.Width, err = parseInt(key, value)
	case "store_dir":
		cfg.StoreDir = value
	case "theme":
		cfg.Theme = value
	case "show_annotations":
		cfg.ShowAnnotations, err = parseBool(key, value)
	}
	return err
}

func setCanvasField(c *Canvas, key, value string) error {
	n, err := parseInt(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "width":
		c.Width = n
	case "height":
		c.Height = n
	case "grid":
		c.Grid = n
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "load":
		n.Load = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid number for key %s: %q", key, value)
	}
	return n, nil
}
