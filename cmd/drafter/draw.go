package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/geom"
)

// drawCmd adds one shape or measurement by replaying a press, drag and
// release.
type drawCmd struct {
	*root
	fs        *flag.FlagSet
	colorSpec string
	width     int
	tool      board.Tool
	coords    []float64
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.colorSpec, "color", "", "stroke colour name or hex value (default from config, else "+board.DefaultStrokeColor+")")
	fs.IntVar(&d.width, "width", 0, fmt.Sprintf("stroke width %d-%d (default from config, else %d)", board.MinStrokeWidth, board.MaxStrokeWidth, board.DefaultStrokeWidth))
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: d}
	}
	tool, err := board.ParseTool(fs.Arg(0))
	if err != nil || !tool.Drawing() {
		return nil, &UsageError{of: d, msg: fmt.Sprintf("%q is not a drawing tool", fs.Arg(0))}
	}
	d.tool = tool
	d.coords, err = expectFloats(fs.Args()[1:], 4, string(tool))
	if err != nil {
		return nil, err
	}
	return d, nil
}

// expectFloats parses exactly n numeric arguments.
func expectFloats(args []string, n int, what string) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d numbers, got %d", what, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid number %q", what, a)
		}
		out[i] = v
	}
	return out, nil
}

func (d *drawCmd) Run() error {
	s, repo, err := d.openSession()
	if err != nil {
		return err
	}
	if d.colorSpec != "" {
		if err := s.SetStrokeColor(d.colorSpec); err != nil {
			return err
		}
	}
	if d.width != 0 {
		if err := s.SetStrokeWidth(d.width); err != nil {
			return err
		}
	}
	if err := s.SetTool(d.tool); err != nil {
		return err
	}
	s.PointerDown(geom.Pt(d.coords[0], d.coords[1]))
	s.PointerMove(geom.Pt(d.coords[2], d.coords[3]))
	s.PointerUp()

	doc := s.Document()
	if d.tool == board.ToolAnnotate {
		an := doc.Annotations[len(doc.Annotations)-1]
		fmt.Fprintf(d.stdout, "%s %s\n", an.ID, an.Text)
	} else {
		sh := doc.Shapes[len(doc.Shapes)-1]
		fmt.Fprintf(d.stdout, "%s %s\n", sh.Common().ID, sh.Kind())
	}
	return d.save(repo, s)
}
