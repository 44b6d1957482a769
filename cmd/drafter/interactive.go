package main

import (
	"bufio"
	"flag"
	"fmt"
	"strings"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	execs commandList
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	i := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "run a command and exit (may be given more than once)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

// Program names the REPL after the root program, not "interactive".
func (i *interactiveCmd) Program() string {
	return i.root.Program()
}

func (i *interactiveCmd) Run() error {
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			if i.executeLine(line) {
				break
			}
		}
		return nil
	}
	fmt.Fprintln(i.stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		if i.executeLine(scanner.Text()) {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command and reports whether the session should end.
func (i *interactiveCmd) executeLine(line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "exit", "quit":
		return true
	case "interactive":
		fmt.Fprintln(i.stderr, "already interactive")
		return false
	}
	if err := i.root.Run(args); err != nil {
		fmt.Fprintln(i.stderr, err)
	}
	return false
}
