package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/a64doc"
)

// Run executes the find command.
func (c *FindCmd) Run(deps *Dependencies) error {
	mnemonic := strings.ToUpper(c.Mnemonic)
	filter := a64doc.RecordFilter{Mnemonic: &mnemonic, Limit: c.Limit}
	if c.Set != "" {
		id, err := a64doc.ParseSetID(c.Set)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
			return err
		}
		filter.Category = &id
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No records found for %s. Use 'a64doc index' to build the catalog.\n", mnemonic)
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%-7s %s  %s - %s @ %s\n", r.Category.Name(), r.Mnemonic, r.Heading, r.Brief, r.File)
		if r.Template != "" {
			fmt.Fprintf(deps.Stdout, "        %s", r.Template)
			if len(r.Features) > 0 {
				fmt.Fprintf(deps.Stdout, " [%s]", strings.Join(r.Features, " "))
			}
			fmt.Fprintln(deps.Stdout)
		}
	}
	return nil
}
