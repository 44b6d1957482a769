package theme

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"image/color"
	"io"
	"strings"
)

// slot names one colour of a Theme in theme files.
type slot struct {
	key string
	ptr *color.RGBA
}

// slots lists t's colours in file order.
func (t *Theme) slots() []slot {
	return []slot{
		{"Background", &t.Background},
		{"Grid", &t.Grid},
		{"Selection", &t.Selection},
		{"Handle", &t.Handle},
		{"Provisional", &t.Provisional},
		{"Toolbar", &t.Toolbar},
		{"ToolbarText", &t.ToolbarText},
		{"ToolActive", &t.ToolActive},
	}
}

// Parse reads "Key: #RRGGBB" lines on top of the default theme. Blank lines
// and lines starting with '#' or '//' are skipped.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if err := t.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Set assigns the colour named key, ignoring case. Unknown keys are skipped
// so newer theme files still load.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	for _, s := range t.slots() {
		if !strings.EqualFold(s.key, key) {
			continue
		}
		c, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("%s: %w", s.key, err)
		}
		*s.ptr = c
		return nil
	}
	return nil
}

// Format writes t the way Parse reads it, Name first.
func (t *Theme) Format(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", t.Name)
	for _, s := range t.slots() {
		fmt.Fprintf(&sb, "%s: %s\n", s.key, ToHex(*s.ptr))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// ToHex renders c as #RRGGBB, adding AA when it is translucent.
func ToHex(c color.RGBA) string {
	b := []byte{c.R, c.G, c.B, c.A}
	if c.A == 0xff {
		b = b[:3]
	}
	return "#" + strings.ToUpper(hex.EncodeToString(b))
}

// ParseColor accepts #RRGGBB or #RRGGBBAA only. Theme files describe exact
// surface colours, so names and short forms are rejected.
func ParseColor(s string) (color.RGBA, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("color %q must start with #", s)
	}
	if len(digits) != 6 && len(digits) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q needs 6 or 8 hex digits", s)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	c := color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}
