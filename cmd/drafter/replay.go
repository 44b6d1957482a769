package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/drafter/internal/board"
)

type replayCmd struct {
	*root
	fs     *flag.FlagSet
	script string
	fresh  bool
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.script, "script", "", "event script, one JSON object per line (- for stdin)")
	fs.BoolVar(&c.fresh, "fresh", false, "start from an empty drawing instead of the saved one")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.script == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	var in io.Reader = c.stdin
	if c.script != "-" {
		f, err := os.Open(c.script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}
	events, err := board.ReadScript(in)
	if err != nil {
		return err
	}

	s, repo, err := c.openSession()
	if err != nil {
		return err
	}
	if c.fresh {
		s.Clear()
	}
	for i, e := range events {
		if err := s.Apply(e); err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	doc := s.Document()
	fmt.Fprintf(c.stdout, "applied %d events: %d shapes, %d measurements\n", len(events), len(doc.Shapes), len(doc.Annotations))
	return c.save(repo, s)
}
