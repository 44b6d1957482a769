package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/drafter/internal/persist"
	"github.com/example/drafter/internal/shape"
)

type listCmd struct {
	*root
	fs      *flag.FlagSet
	asJSON  bool
	noAnnot bool
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseListCmd(args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &listCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.BoolVar(&c.asJSON, "json", false, "print the stored document instead of a table")
	fs.BoolVar(&c.noAnnot, "shapes-only", false, "omit measurements")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *listCmd) Run() error {
	s, _, err := c.openSession()
	if err != nil {
		return err
	}
	doc := s.Document()
	if c.asJSON {
		b, err := persist.Marshal(doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, string(b))
		return nil
	}
	if doc.Empty() {
		fmt.Fprintln(c.stdout, "drawing is empty")
		return nil
	}
	for _, sh := range doc.Shapes {
		fmt.Fprintln(c.stdout, describeShape(sh))
	}
	if c.noAnnot {
		return nil
	}
	for _, an := range doc.Annotations {
		p := an.Points
		fmt.Fprintf(c.stdout, "%s measure (%s,%s)-(%s,%s) %q %s/%s\n", an.ID,
			num(p[0]), num(p[1]), num(p[2]), num(p[3]), an.Text, an.StrokeColor, num(an.StrokeWidth))
	}
	return nil
}

func describeShape(sh shape.Shape) string {
	b := sh.Common()
	var geo string
	switch v := sh.(type) {
	case *shape.Line:
		p := v.Points
		geo = fmt.Sprintf("(%s,%s)-(%s,%s)", num(p[0]), num(p[1]), num(p[2]), num(p[3]))
	case *shape.Rect:
		geo = fmt.Sprintf("at (%s,%s) size %sx%s rot %s", num(v.X), num(v.Y), num(v.Width), num(v.Height), num(v.Rotation))
	case *shape.Circle:
		geo = fmt.Sprintf("at (%s,%s) r %s rot %s", num(v.X), num(v.Y), num(v.Radius), num(v.Rotation))
	case *shape.Triangle:
		geo = fmt.Sprintf("at (%s,%s) r %s rot %s", num(v.X), num(v.Y), num(v.Radius), num(v.Rotation))
	}
	return strings.Join([]string{b.ID, string(sh.Kind()), geo, b.StrokeColor + "/" + num(b.StrokeWidth)}, " ")
}

// num prints v without trailing zeros.
func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
