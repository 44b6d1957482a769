package main

import "fmt"

type versionCmd struct {
	*root
}

func (c *versionCmd) Run() error {
	fmt.Fprintf(c.stdout, "drafter version %s\n", version)
	if commit != "" {
		fmt.Fprintf(c.stdout, "commit: %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(c.stdout, "built: %s\n", date)
	}
	return nil
}
