package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/parkdir"
	"github.com/samber/lo"
)

// Run executes the regions command.
func (c *RegionsCmd) Run(deps *Dependencies) error {
	dir, err := deps.Catalog.BuildDirectory(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parkdir.ErrorMessage(err))
		return err
	}

	names := lo.Keys(dir)
	slices.Sort(names)
	for _, name := range names {
		if c.URLs {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", name, dir[name])
			continue
		}
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}
