// Package mapquest implements parkdir.NearbyService on the MapQuest radius
// search API. Requests go through a parkdir.StructuredFetcher, normally the
// caching gateway, and responses are normalized at this boundary.
package mapquest

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fwojciec/parkdir"
	"github.com/fwojciec/parkdir/cache"
)

// DefaultEndpoint is the radius search endpoint.
const DefaultEndpoint = "http://www.mapquestapi.com/search/v2/radius"

// Search defaults.
const (
	DefaultRadius      = 10
	DefaultMaxMatches  = 10
	DefaultAmbiguities = "ignore"
	DefaultFormat      = "json"
)

// Ensure Client implements parkdir.NearbyService at compile time.
var _ parkdir.NearbyService = (*Client)(nil)

// Client searches for places near a site's postal code.
type Client struct {
	fetcher     parkdir.StructuredFetcher
	apiKey      string
	endpoint    string
	radius      int
	maxMatches  int
	ambiguities string
	format      string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithRadius sets the search radius in miles.
func WithRadius(radius int) Option {
	return func(c *Client) {
		c.radius = radius
	}
}

// WithMaxMatches sets the maximum number of results.
func WithMaxMatches(n int) Option {
	return func(c *Client) {
		c.maxMatches = n
	}
}

// WithAmbiguities sets how ambiguous origins are resolved.
func WithAmbiguities(mode string) Option {
	return func(c *Client) {
		c.ambiguities = mode
	}
}

// WithFormat sets the response format, "json" or "xml". The gateway must
// be configured with the matching Decoder.
func WithFormat(format string) Option {
	return func(c *Client) {
		c.format = format
	}
}

// NewClient creates a new Client authenticating with apiKey.
func NewClient(fetcher parkdir.StructuredFetcher, apiKey string, opts ...Option) *Client {
	c := &Client{
		fetcher:     fetcher,
		apiKey:      apiKey,
		endpoint:    DefaultEndpoint,
		radius:      DefaultRadius,
		maxMatches:  DefaultMaxMatches,
		ambiguities: DefaultAmbiguities,
		format:      DefaultFormat,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decoder returns the gateway decode function for a response format.
// Unknown formats decode as JSON.
func Decoder(format string) cache.DecodeFunc {
	if strings.EqualFold(format, "xml") {
		return DecodeXML
	}
	return DecodeJSON
}

// Endpoint returns the search endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Params returns the request parameters for a postal code. The API key is
// marked secret so it is sent but not part of the cache fingerprint.
func (c *Client) Params(postalCode string) parkdir.Params {
	return parkdir.Params{
		{Key: "key", Value: c.apiKey, Secret: true},
		{Key: "origin", Value: postalCode},
		{Key: "radius", Value: strconv.Itoa(c.radius)},
		{Key: "maxMatches", Value: strconv.Itoa(c.maxMatches)},
		{Key: "ambiguities", Value: c.ambiguities},
		{Key: "outFormat", Value: c.format},
	}
}

// Search returns the raw search payload for the site's postal code.
// Returns EINVALID if the site has no postal code or no API key is set.
func (c *Client) Search(ctx context.Context, site *parkdir.Site) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, parkdir.Errorf(parkdir.EINVALID, "MapQuest API key required")
	}
	if site == nil || strings.TrimSpace(site.PostalCode) == "" {
		return nil, parkdir.Errorf(parkdir.EINVALID, "site has no postal code to search from")
	}
	return c.fetcher.FetchStructured(ctx, c.endpoint, c.Params(strings.TrimSpace(site.PostalCode)))
}

// FindNearby searches around the site and decodes the results.
func (c *Client) FindNearby(ctx context.Context, site *parkdir.Site) (*parkdir.NearbySearch, error) {
	payload, err := c.Search(ctx, site)
	if err != nil {
		return nil, err
	}
	return Decode(payload)
}
