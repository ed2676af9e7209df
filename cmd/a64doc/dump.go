package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/fwojciec/a64doc"
)

// dumpConfig prints node trees without addresses so output is stable.
// Parent back-pointers are cut off by spew's cycle detection.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Run executes the dump command.
func (c *DumpCmd) Run(deps *Dependencies) error {
	level, err := a64doc.ParseLevel(c.Level)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}

	sec, err := deps.Loader.CollectSection(deps.Ctx, c.File, level, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}

	dumpConfig.Fdump(deps.Stdout, sec)
	return nil
}
