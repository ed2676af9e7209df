package main

import (
	"fmt"

	"github.com/fwojciec/a64doc"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
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

	if err := deps.Records.ReplaceRecords(deps.Ctx, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d records\n", len(records))
	return nil
}
