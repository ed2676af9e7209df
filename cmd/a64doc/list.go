package main

import (
	"fmt"

	"github.com/fwojciec/a64doc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	level, err := a64doc.ParseLevel(c.Level)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}
	ids, err := parseSets(c.Set, deps.Sets)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}

	err = deps.Loader.WalkSets(deps.Ctx, level, func(n a64doc.Node) error {
		_, err := fmt.Fprintln(deps.Stdout, a64doc.FormatNode(n))
		return err
	}, ids...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}
	return nil
}
