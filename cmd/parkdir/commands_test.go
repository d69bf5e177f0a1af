package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/parkdir"
	main "github.com/fwojciec/parkdir/cmd/parkdir"
	"github.com/fwojciec/parkdir/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const michiganURL = "https://www.nps.gov/state/mi/index.htm"

func testCatalog() *mock.Catalog {
	return &mock.Catalog{
		BuildDirectoryFn: func(_ context.Context) (parkdir.Directory, error) {
			return parkdir.Directory{
				"michigan": michiganURL,
				"alaska":   "https://www.nps.gov/state/ak/index.htm",
			}, nil
		},
		ExtractRegionEntitiesFn: func(_ context.Context, regionURL string) ([]*parkdir.Site, error) {
			if regionURL != michiganURL {
				return nil, nil
			}
			return []*parkdir.Site{
				{Name: "Isle Royale", Category: "National Park", LocalityRegion: "Houghton, MI", PostalCode: "49931"},
				{Name: "Sleeping Bear Dunes", Category: "National Lakeshore", LocalityRegion: "Empire, MI", PostalCode: "49630"},
			}, nil
		},
	}
}

func testNearby() *mock.NearbyService {
	return &mock.NearbyService{
		FindNearbyFn: func(_ context.Context, site *parkdir.Site) (*parkdir.NearbySearch, error) {
			return &parkdir.NearbySearch{
				ResultsCount: 1,
				Results: []parkdir.NearbyPlace{
					{Name: "Dune Climb", Category: parkdir.NoCategory, Address: parkdir.NoAddress, City: "Empire"},
				},
			}, nil
		},
	}
}

func testDeps(stdin string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdin:   strings.NewReader(stdin),
		Stdout:  stdout,
		Stderr:  stderr,
		Catalog: testCatalog(),
		Nearby:  testNearby(),
	}, stdout, stderr
}

func TestRegionsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists states sorted", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("")

		err := (&main.RegionsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "alaska\nmichigan\n", stdout.String())
	})

	t.Run("shows URLs on request", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("")

		err := (&main.RegionsCmd{URLs: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "michigan  "+michiganURL)
	})

	t.Run("reports directory errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps("")
		deps.Catalog = &mock.Catalog{
			BuildDirectoryFn: func(_ context.Context) (parkdir.Directory, error) {
				return nil, parkdir.Errorf(parkdir.ENOTFOUND, "state list not found")
			},
		}

		err := (&main.RegionsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: state list not found\n", stderr.String())
	})
}

func TestSitesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists numbered sites", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("")

		err := (&main.SitesCmd{State: "MICHIGAN"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"[1] Isle Royale (National Park): Houghton, MI 49931\n"+
				"[2] Sleeping Bear Dunes (National Lakeshore): Empire, MI 49630\n",
			stdout.String())
	})

	t.Run("unknown state is not found", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps("")

		err := (&main.SitesCmd{State: "Atlantis"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, parkdir.ENOTFOUND, parkdir.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unknown state")
	})

	t.Run("state without sites", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("")

		err := (&main.SitesCmd{State: "alaska"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No national sites listed for alaska.")
	})
}

func TestNearbyCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists places near the chosen site", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("")
		var searched string
		deps.Nearby = &mock.NearbyService{
			FindNearbyFn: func(ctx context.Context, site *parkdir.Site) (*parkdir.NearbySearch, error) {
				searched = site.PostalCode
				return testNearby().FindNearby(ctx, site)
			},
		}

		err := (&main.NearbyCmd{State: "michigan", Number: 2}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "49630", searched)
		assert.Equal(t, "Places near Sleeping Bear Dunes\n- Dune Climb (no category): no address, Empire\n", stdout.String())
	})

	t.Run("prints JSON on request", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("")

		err := (&main.NearbyCmd{State: "michigan", Number: 1, JSON: true}).Run(deps)

		require.NoError(t, err)
		var search parkdir.NearbySearch
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &search))
		assert.Equal(t, 1, search.ResultsCount)
		assert.Equal(t, "Dune Climb", search.Results[0].Name)
	})

	t.Run("rejects out of range numbers", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps("")

		err := (&main.NearbyCmd{State: "michigan", Number: 3}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, parkdir.EINVALID, parkdir.ErrorCode(err))
		assert.Contains(t, stderr.String(), "between 1 and 2")
	})

	t.Run("reports search errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps("")
		deps.Nearby = &mock.NearbyService{
			FindNearbyFn: func(context.Context, *parkdir.Site) (*parkdir.NearbySearch, error) {
				return nil, parkdir.Errorf(parkdir.EINVALID, "MapQuest API key required")
			},
		}

		err := (&main.NearbyCmd{State: "michigan", Number: 1}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: MapQuest API key required\n", stderr.String())
	})
}

func TestBrowseCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("walks region, selection and exit", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("narnia\nmichigan\n9\n2\nback\nexit\n")

		err := (&main.BrowseCmd{}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Sorry! Please enter the full name of a valid state.")
		assert.Contains(t, output, "[2] Sleeping Bear Dunes (National Lakeshore): Empire, MI 49630")
		assert.Contains(t, output, "Invalid input")
		assert.Contains(t, output, "- Dune Climb (no category): no address, Empire")
		assert.True(t, strings.HasSuffix(output, "Bye!\n"))
	})

	t.Run("ends quietly at end of input", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps("michigan\n")

		err := (&main.BrowseCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"back": `)
	})

	t.Run("fails when the directory cannot be built", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps("michigan\n")
		deps.Catalog = &mock.Catalog{
			BuildDirectoryFn: func(context.Context) (parkdir.Directory, error) {
				return nil, parkdir.Errorf(parkdir.EUNAVAILABLE, "HTTP 503 for https://www.nps.gov/index.htm")
			},
		}

		err := (&main.BrowseCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "HTTP 503")
	})
}
