package main

import (
	"fmt"

	"github.com/fwojciec/a64doc"
	"github.com/fwojciec/a64doc/fs"
)

// Run executes the js command.
func (c *JSCmd) Run(deps *Dependencies) error {
	ids, err := parseSets(c.Set, deps.Sets)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}

	records, err := a64doc.Catalog(deps.Ctx, deps.Loader, ids...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}
	a64doc.SortRecords(records)

	if deps.Catalog != nil {
		if err := deps.Catalog.WriteCatalog(deps.Ctx, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote %d records to %s\n", len(records), c.Out)
		return nil
	}

	script, err := fs.FormatScript(records)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}
	_, err = deps.Stdout.Write(script)
	return err
}
