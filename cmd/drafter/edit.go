package main

import (
	"flag"
	"fmt"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/persist"
)

type moveCmd struct {
	*root
	id   string
	x, y float64
}

func (c *moveCmd) FlagSet() *flag.FlagSet { return nil }

func parseMoveCmd(args []string, r *root) (*moveCmd, error) {
	c := &moveCmd{root: r}
	if len(args) != 3 {
		return nil, &UsageError{of: c}
	}
	v, err := expectFloats(args[1:], 2, "move")
	if err != nil {
		return nil, err
	}
	c.id, c.x, c.y = args[0], v[0], v[1]
	return c, nil
}

func (c *moveCmd) Run() error {
	s, repo, err := selectSession(c.root, c.id)
	if err != nil {
		return err
	}
	if !s.CommitDrag(c.id, c.x, c.y) {
		return fmt.Errorf("no shape %q", c.id)
	}
	return c.save(repo, s)
}

type transformCmd struct {
	*root
	id   string
	args []float64
}

func (c *transformCmd) FlagSet() *flag.FlagSet { return nil }

func parseTransformCmd(args []string, r *root) (*transformCmd, error) {
	c := &transformCmd{root: r}
	if len(args) != 6 {
		return nil, &UsageError{of: c}
	}
	v, err := expectFloats(args[1:], 5, "transform")
	if err != nil {
		return nil, err
	}
	c.id, c.args = args[0], v
	return c, nil
}

func (c *transformCmd) Run() error {
	s, repo, err := selectSession(c.root, c.id)
	if err != nil {
		return err
	}
	a := c.args
	if !s.CommitTransform(c.id, a[0], a[1], a[2], a[3], a[4]) {
		fmt.Fprintf(c.stdout, "transform rejected: width and height must be at least %d; drawing unchanged\n", board.MinTransformSize)
		return nil
	}
	return c.save(repo, s)
}

// selectSession opens the drawing with the select tool active and id
// picked, failing when id names no shape.
func selectSession(r *root, id string) (*board.Session, *persist.Repository, error) {
	s, repo, err := r.openSession()
	if err != nil {
		return nil, nil, err
	}
	if err := s.SetTool(board.ToolSelect); err != nil {
		return nil, nil, err
	}
	s.Pick(id)
	if s.Selected() != id {
		return nil, nil, fmt.Errorf("no shape %q", id)
	}
	return s, repo, nil
}

type clearCmd struct {
	*root
}

func (c *clearCmd) FlagSet() *flag.FlagSet { return nil }

func parseClearCmd(args []string, r *root) (*clearCmd, error) {
	c := &clearCmd{root: r}
	if len(args) != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *clearCmd) Run() error {
	s, repo, err := c.openSession()
	if err != nil {
		return err
	}
	s.Clear()
	fmt.Fprintln(c.stdout, "cleared")
	return c.save(repo, s)
}
