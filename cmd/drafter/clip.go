package main

import (
	"flag"
	"fmt"

	"github.com/example/drafter/internal/persist"
)

type copyCmd struct {
	*root
}

func (c *copyCmd) FlagSet() *flag.FlagSet { return nil }

func parseCopyCmd(args []string, r *root) (*copyCmd, error) {
	c := &copyCmd{root: r}
	if len(args) != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *copyCmd) Run() error {
	s, _, err := c.openSession()
	if err != nil {
		return err
	}
	b, err := persist.Marshal(s.Document())
	if err != nil {
		return err
	}
	if err := writeClipboardDoc(b); err != nil {
		return fmt.Errorf("copy drawing: %w", err)
	}
	fmt.Fprintln(c.stdout, "drawing copied to clipboard")
	if c.notifier != nil {
		c.notifier.Copy("drawing", nil)
	}
	return nil
}

type pasteCmd struct {
	*root
}

func (c *pasteCmd) FlagSet() *flag.FlagSet { return nil }

func parsePasteCmd(args []string, r *root) (*pasteCmd, error) {
	c := &pasteCmd{root: r}
	if len(args) != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *pasteCmd) Run() error {
	b, err := readClipboardDoc()
	if err != nil {
		return fmt.Errorf("paste drawing: %w", err)
	}
	doc, err := persist.Unmarshal(b)
	if err != nil {
		return &persist.CorruptDocumentError{Key: "clipboard", Err: err}
	}
	s, repo, err := c.openSession()
	if err != nil {
		return err
	}
	s.Replace(doc)
	fmt.Fprintf(c.stdout, "pasted %d shapes, %d measurements\n", len(doc.Shapes), len(doc.Annotations))
	return c.save(repo, s)
}
