package mapquest

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/parkdir"
	"github.com/fwojciec/parkdir/cache"
	"github.com/samber/lo"
)

// response is the subset of a radius search response that parkdir uses.
// Every sub-field is optional.
type response struct {
	ResultsCount  flexNumber     `json:"resultsCount"`
	Info          *info          `json:"info"`
	Options       options        `json:"options"`
	SearchResults []searchResult `json:"searchResults"`
}

type info struct {
	StatusCode flexNumber  `json:"statuscode"`
	Messages   []optString `json:"messages"`
}

type options struct {
	MaxMatches  flexNumber `json:"maxMatches"`
	Radius      flexNumber `json:"radius"`
	Ambiguities optString  `json:"ambiguities"`
	Units       optString  `json:"units"`
}

type searchResult struct {
	Name   optString `json:"name"`
	Fields *fields   `json:"fields"`
}

type fields struct {
	Name     optString `json:"name"`
	Category optString `json:"group_sic_code_name"`
	Address  optString `json:"address"`
	City     optString `json:"city"`
}

// optString decodes a JSON string. Any other JSON type, including null,
// decodes as absent ("").
type optString string

func (s *optString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		v = ""
	}
	*s = optString(v)
	return nil
}

// or returns the trimmed value, or fallback if absent or blank.
func (s optString) or(fallback string) string {
	return lo.CoalesceOrEmpty(strings.TrimSpace(string(s)), fallback)
}

// flexNumber decodes a JSON number or a numeric string. Anything else
// decodes as zero.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = flexNumber(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &f); err == nil {
			*n = flexNumber(f)
			return nil
		}
	}
	*n = 0
	return nil
}

// Decode converts a cached radius search payload into a NearbySearch,
// substituting parkdir.NoCategory, parkdir.NoAddress and parkdir.NoCity
// for missing result fields.
// Returns EINVALID if the payload is not a JSON object.
func Decode(payload json.RawMessage) (*parkdir.NearbySearch, error) {
	var resp response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, parkdir.Errorf(parkdir.EINVALID, "invalid search response: %v", err)
	}

	search := &parkdir.NearbySearch{
		ResultsCount: int(resp.ResultsCount),
		Options: parkdir.SearchOptions{
			MaxMatches:  int(resp.Options.MaxMatches),
			Radius:      float64(resp.Options.Radius),
			Ambiguities: string(resp.Options.Ambiguities),
			Units:       string(resp.Options.Units),
		},
		Results: make([]parkdir.NearbyPlace, 0, len(resp.SearchResults)),
	}
	for _, r := range resp.SearchResults {
		search.Results = append(search.Results, r.place())
	}
	return search, nil
}

func (r searchResult) place() parkdir.NearbyPlace {
	f := r.Fields
	if f == nil {
		f = &fields{}
	}
	return parkdir.NearbyPlace{
		Name:     r.Name.or(f.Name.or("")),
		Category: f.Category.or(parkdir.NoCategory),
		Address:  f.Address.or(parkdir.NoAddress),
		City:     f.City.or(parkdir.NoCity),
	}
}

// Normalize decodes a payload and returns its places keyed by name.
// Places sharing a name overwrite earlier ones.
func Normalize(payload json.RawMessage) (map[string]parkdir.NearbyPlace, error) {
	search, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	return search.Places(), nil
}

// DecodeJSON validates a JSON response body before it is cached.
// Returns EINVALID for malformed bodies and EUNAVAILABLE when the service
// reports a non-zero status code, so failed searches are never cached.
func DecodeJSON(body string) (json.RawMessage, error) {
	payload, err := cache.DecodeJSON(body)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Info *info `json:"info"`
	}
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, parkdir.Errorf(parkdir.EINVALID, "search response is not an object: %v", err)
	}
	if err := checkStatus(resp.Info); err != nil {
		return nil, err
	}
	return payload, nil
}

func checkStatus(i *info) error {
	if i == nil || i.StatusCode == 0 {
		return nil
	}
	msgs := lo.Map(i.Messages, func(m optString, _ int) string { return string(m) })
	msg := lo.CoalesceOrEmpty(strings.Join(lo.Compact(msgs), "; "), "no message")
	return parkdir.Errorf(parkdir.EUNAVAILABLE, "search service status %d: %s", int(i.StatusCode), msg)
}
