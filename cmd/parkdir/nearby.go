package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/parkdir"
)

// Run executes the nearby command.
func (c *NearbyCmd) Run(deps *Dependencies) error {
	sites, err := regionSites(deps.Ctx, deps.Catalog, c.State)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parkdir.ErrorMessage(err))
		return err
	}

	if c.Number < 1 || c.Number > len(sites) {
		err := parkdir.Errorf(parkdir.EINVALID, "site number must be between 1 and %d", len(sites))
		fmt.Fprintf(deps.Stderr, "error: %s\n", parkdir.ErrorMessage(err))
		return err
	}
	site := sites[c.Number-1]

	search, err := deps.Nearby.FindNearby(deps.Ctx, site)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parkdir.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(search)
	}

	fmt.Fprintf(deps.Stdout, "Places near %s\n", site.Name)
	for _, place := range search.Results {
		fmt.Fprintf(deps.Stdout, "- %s\n", place)
	}
	return nil
}
