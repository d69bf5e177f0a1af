package parkdir

import (
	"context"
	"fmt"
	"strings"
)

// Site represents a national site, e.g. a park, trail or monument.
// Every field is optional in the source pages and defaults to "".
type Site struct {
	Name     string `json:"name"`
	Category string `json:"category"` // e.g. "National Park"; some sites have none

	// LocalityRegion is "city, state code", e.g. "Houghton, MI".
	LocalityRegion string `json:"localityRegion"`

	// PostalCode is opaque: "49931" and "82190-0168" are both valid.
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// Info returns a one-line summary of the site.
func (s *Site) Info() string {
	return fmt.Sprintf("%s (%s): %s %s", s.Name, s.Category, s.LocalityRegion, s.PostalCode)
}

// Directory maps a lower-cased state name to the absolute URL of its catalog page.
type Directory map[string]string

// Lookup returns the catalog URL for a state name, ignoring case and
// surrounding whitespace.
func (d Directory) Lookup(name string) (string, bool) {
	u, ok := d[NormalizeRegion(name)]
	return u, ok
}

// NormalizeRegion returns the directory key for a state name.
func NormalizeRegion(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Catalog resolves states and sites from the catalog source.
type Catalog interface {
	// BuildDirectory returns the state name to catalog URL mapping.
	// Returns ENOTFOUND if the index page has no state list.
	BuildDirectory(ctx context.Context) (Directory, error)

	// ExtractDetail fetches a site page and extracts its fields.
	// Missing fields are never an error.
	ExtractDetail(ctx context.Context, siteURL string) (*Site, error)

	// ExtractRegionEntities returns the sites listed on a state page in
	// page order. Returns ENOTFOUND if the page has no site listing.
	ExtractRegionEntities(ctx context.Context, regionURL string) ([]*Site, error)
}
