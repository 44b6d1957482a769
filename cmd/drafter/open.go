package main

import (
	"flag"
	"fmt"

	"github.com/example/drafter/internal/window"
)

// runWindow is replaced in tests, which have no display.
var runWindow = func(w *window.Window) { w.Run() }

type openCmd struct {
	*root
	fs         *flag.FlagSet
	saveOnExit bool
}

func (c *openCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &openCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.BoolVar(&c.saveOnExit, "save-on-exit", false, "save the drawing when the window closes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *openCmd) Run() error {
	s, repo, err := c.openSession()
	if err != nil {
		return err
	}
	var saveErr error
	opts := []window.Option{
		window.WithRepository(repo),
		window.WithNotifier(c.notifier),
		window.WithTheme(c.activeTheme),
		window.WithGrid(c.config.Canvas.Grid),
		window.WithSize(c.config.Canvas.Width, c.config.Canvas.Height),
	}
	if c.saveOnExit {
		opts = append(opts, window.WithOnClose(func() {
			saveErr = c.save(repo, s)
		}))
	}
	runWindow(window.New(s, opts...))
	if saveErr != nil {
		return fmt.Errorf("save on exit: %w", saveErr)
	}
	return nil
}
