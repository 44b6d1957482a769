package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/example/drafter/internal/clipboard"
	"github.com/example/drafter/internal/render"
)

// Seams for tests.
var (
	writeClipboardImage = clipboard.WriteImage
	writeClipboardDoc   = clipboard.WriteDocument
	readClipboardDoc    = clipboard.ReadDocument
)

type exportCmd struct {
	*root
	fs              *flag.FlagSet
	output          string
	hideAnnotations bool
	toClipboard     bool
	width           int
	height          int
	grid            bool
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "PNG file to write")
	fs.BoolVar(&c.hideAnnotations, "hide-annotations", false, "leave measurements out")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the image to the clipboard")
	fs.IntVar(&c.width, "width", r.config.Canvas.Width, "image width in pixels")
	fs.IntVar(&c.height, "height", r.config.Canvas.Height, "image height in pixels")
	fs.BoolVar(&c.grid, "grid", false, "draw the background grid")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.output == "" && !c.toClipboard {
		return nil, &UsageError{of: c, msg: "export needs -output, -to-clipboard or both"}
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, errors.New("export size must be positive")
	}
	return c, nil
}

func (c *exportCmd) Run() error {
	s, _, err := c.openSession()
	if err != nil {
		return err
	}
	if c.hideAnnotations {
		s.SetShowAnnotations(false)
	}
	grid := 0
	if c.grid {
		grid = c.config.Canvas.Grid
	}
	canvas := render.New(c.width, c.height, render.WithTheme(c.activeTheme), render.WithGrid(grid))
	s.Attach(canvas)
	s.Paint()

	if c.output != "" {
		f, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := canvas.EncodePNG(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
		fmt.Fprintf(c.stdout, "wrote %s\n", c.output)
		if c.notifier != nil {
			c.notifier.Export(c.output)
		}
	}
	if c.toClipboard {
		if err := writeClipboardImage(canvas.Image()); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
		fmt.Fprintln(c.stdout, "image copied to clipboard")
		if c.notifier != nil {
			c.notifier.Copy("drawing image", canvas.Image())
		}
	}
	return nil
}
