package main

import (
	"flag"
	"fmt"

	"github.com/example/drafter/internal/config"
	"github.com/example/drafter/internal/theme"
)

type configCmd struct {
	*root
	action string
}

func (c *configCmd) FlagSet() *flag.FlagSet { return nil }

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	c := &configCmd{root: r}
	if len(args) != 1 {
		return nil, &UsageError{of: c}
	}
	switch args[0] {
	case "print", "save", "themes":
		c.action = args[0]
	default:
		return nil, &UsageError{of: c, msg: fmt.Sprintf("unknown config action %q", args[0])}
	}
	return c, nil
}

func (c *configCmd) Run() error {
	switch c.action {
	case "save":
		path, err := config.NewLoader(version, configPathOverride).Save(c.config)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "saved config to %s\n", path)
	case "themes":
		for _, n := range theme.NewLoader(c.config.Themes).Names() {
			fmt.Fprintln(c.stdout, n)
		}
	default:
		fmt.Fprint(c.stdout, c.config.String())
	}
	return nil
}
