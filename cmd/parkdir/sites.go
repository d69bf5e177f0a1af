package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/parkdir"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	sites, err := regionSites(deps.Ctx, deps.Catalog, c.State)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", parkdir.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintf(deps.Stdout, "No national sites listed for %s.\n", parkdir.NormalizeRegion(c.State))
		return nil
	}

	for i, site := range sites {
		fmt.Fprintf(deps.Stdout, "[%d] %s\n", i+1, site.Info())
	}
	return nil
}

// regionSites resolves a state name and extracts its listed sites.
func regionSites(ctx context.Context, catalog parkdir.Catalog, state string) ([]*parkdir.Site, error) {
	dir, err := catalog.BuildDirectory(ctx)
	if err != nil {
		return nil, err
	}

	regionURL, ok := dir.Lookup(state)
	if !ok {
		return nil, parkdir.Errorf(parkdir.ENOTFOUND, "unknown state %q", state)
	}

	return catalog.ExtractRegionEntities(ctx, regionURL)
}
