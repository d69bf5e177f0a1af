package parkdir

import (
	"context"
	"fmt"
)

// Placeholders used when a nearby place lacks a field.
const (
	NoCategory = "no category"
	NoAddress  = "no address"
	NoCity     = "no city"
)

// NearbyPlace is a normalized search result near a site.
// Category, Address and City are never empty; missing values hold the
// NoCategory, NoAddress and NoCity placeholders.
type NearbyPlace struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// String renders the place as "name (category): address, city".
func (p NearbyPlace) String() string {
	return fmt.Sprintf("%s (%s): %s, %s", p.Name, p.Category, p.Address, p.City)
}

// SearchOptions echoes the options the search service applied.
type SearchOptions struct {
	MaxMatches  int     `json:"maxMatches"`
	Radius      float64 `json:"radius"`
	Ambiguities string  `json:"ambiguities"`
	Units       string  `json:"units"`
}

// NearbySearch is a decoded nearby-place search response.
type NearbySearch struct {
	ResultsCount int           `json:"resultsCount"`
	Options      SearchOptions `json:"options"`
	Results      []NearbyPlace `json:"results"`
}

// Places returns the results keyed by name. When two results share a name
// the later one wins.
func (s *NearbySearch) Places() map[string]NearbyPlace {
	places := make(map[string]NearbyPlace, len(s.Results))
	for _, p := range s.Results {
		places[p.Name] = p
	}
	return places
}

// NearbyService finds places near a site.
type NearbyService interface {
	// FindNearby searches around the site's postal code.
	FindNearby(ctx context.Context, site *Site) (*NearbySearch, error)
}
