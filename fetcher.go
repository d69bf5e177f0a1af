package parkdir

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// Fetcher retrieves the body of a URL as text.
type Fetcher interface {
	// Fetch performs a GET request and returns the decoded body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases transport resources.
	Close() error
}

// StructuredFetcher retrieves a structured (JSON) response for a URL and
// an ordered parameter set.
type StructuredFetcher interface {
	FetchStructured(ctx context.Context, address string, params Params) (json.RawMessage, error)
}

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string

	// Secret parameters (API keys) are sent with the request but are not
	// part of the request's fingerprint.
	Secret bool
}

// Params is an ordered list of query parameters.
type Params []Param

// Encode returns the URL-encoded query string in list order.
// Secret parameters are included.
func (p Params) Encode() string {
	return p.encode(true)
}

// URL returns address with all parameters appended as a query string.
func (p Params) URL(address string) string {
	q := p.Encode()
	if q == "" {
		return address
	}
	return address + "?" + q
}

// Fingerprint returns the cache identity of a structured request: the
// address followed by "?" and the non-secret parameters in list order.
// The same address with a different parameter set yields a different
// fingerprint.
func (p Params) Fingerprint(address string) string {
	return address + "?" + p.encode(false)
}

func (p Params) encode(withSecrets bool) string {
	var b strings.Builder
	for _, param := range p {
		if param.Secret && !withSecrets {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}
