package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/parkdir"
)

// DefaultBaseURL is the catalog host that relative links resolve against.
const DefaultBaseURL = "https://www.nps.gov"

// DefaultIndexPath is the page holding the state list.
const DefaultIndexPath = "/index.htm"

// Selectors locates catalog fields in the NPS page markup.
type Selectors struct {
	// Index page
	StateList string
	StateLink string

	// Site page
	Name       string
	Category   string
	Locality   string
	Region     string
	PostalCode string
	Phone      string

	// State page
	ListingBlock string
	ListingLink  string
}

// DefaultSelectors returns the selectors for www.nps.gov.
func DefaultSelectors() Selectors {
	return Selectors{
		StateList: "ul.dropdown-menu.SearchBar-keywordSearch",
		StateLink: "a",

		Name:       "div.Hero-titleContainer a",
		Category:   "span.Hero-designation",
		Locality:   "span[itemprop='addressLocality']",
		Region:     "span[itemprop='addressRegion']",
		PostalCode: "span[itemprop='postalCode']",
		Phone:      "span[itemprop='telephone']",

		ListingBlock: "div.col-md-9.col-sm-9.col-xs-12.table-cell.list_left",
		ListingLink:  "a[href]",
	}
}

// Ensure Catalog implements parkdir.Catalog at compile time.
var _ parkdir.Catalog = (*Catalog)(nil)

// Catalog reads states and sites from catalog pages. Pages are retrieved
// through the given Fetcher, normally the caching gateway.
type Catalog struct {
	fetcher   parkdir.Fetcher
	base      *url.URL
	indexPath string
	selectors Selectors
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithBaseURL overrides DefaultBaseURL. Invalid URLs are ignored.
func WithBaseURL(rawURL string) Option {
	return func(c *Catalog) {
		if u, err := url.Parse(rawURL); err == nil {
			c.base = u
		}
	}
}

// WithIndexPath overrides DefaultIndexPath.
func WithIndexPath(path string) Option {
	return func(c *Catalog) {
		c.indexPath = path
	}
}

// WithSelectors overrides DefaultSelectors.
func WithSelectors(s Selectors) Option {
	return func(c *Catalog) {
		c.selectors = s
	}
}

// NewCatalog creates a new Catalog.
func NewCatalog(fetcher parkdir.Fetcher, opts ...Option) *Catalog {
	base, _ := url.Parse(DefaultBaseURL)
	c := &Catalog{
		fetcher:   fetcher,
		base:      base,
		indexPath: DefaultIndexPath,
		selectors: DefaultSelectors(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IndexURL returns the absolute URL of the state index page.
func (c *Catalog) IndexURL() string {
	return resolveURL(c.base, c.indexPath)
}

// BuildDirectory reads the state list from the index page.
// Links without an href are skipped.
func (c *Catalog) BuildDirectory(ctx context.Context) (parkdir.Directory, error) {
	html, err := c.fetcher.Fetch(ctx, c.IndexURL())
	if err != nil {
		return nil, err
	}

	doc, err := parseHTML(html)
	if err != nil {
		return nil, err
	}

	list := doc.Find(c.selectors.StateList).First()
	if list.Length() == 0 {
		return nil, parkdir.Errorf(parkdir.ENOTFOUND, "state list not found on %s", c.IndexURL())
	}

	dir := make(parkdir.Directory)
	list.Find(c.selectors.StateLink).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		resolved := resolveURL(c.base, href)
		if resolved == "" {
			return
		}
		dir[parkdir.NormalizeRegion(a.Text())] = resolved
	})

	return dir, nil
}

// ExtractDetail reads a site page. Each field falls back to "" on its own
// when its element is missing. LocalityRegion is "locality, region" only
// when both elements are present.
func (c *Catalog) ExtractDetail(ctx context.Context, siteURL string) (*parkdir.Site, error) {
	html, err := c.fetcher.Fetch(ctx, siteURL)
	if err != nil {
		return nil, err
	}

	doc, err := parseHTML(html)
	if err != nil {
		return nil, err
	}

	return c.parseSite(doc.Selection), nil
}

func (c *Catalog) parseSite(page *goquery.Selection) *parkdir.Site {
	s := c.selectors
	site := &parkdir.Site{
		Name:       optionalText(page, s.Name),
		Category:   optionalText(page, s.Category),
		PostalCode: optionalText(page, s.PostalCode),
		Phone:      optionalText(page, s.Phone),
	}

	locality, hasLocality := textOf(page, s.Locality)
	region, hasRegion := textOf(page, s.Region)
	if hasLocality && hasRegion {
		site.LocalityRegion = locality + ", " + region
	}

	return site
}

// ExtractRegionEntities reads the site listing of a state page and extracts
// every listed site in page order. Blocks without a link are skipped.
// Any detail failure aborts the listing.
func (c *Catalog) ExtractRegionEntities(ctx context.Context, regionURL string) ([]*parkdir.Site, error) {
	urls, err := c.listSiteURLs(ctx, regionURL)
	if err != nil {
		return nil, err
	}

	sites := make([]*parkdir.Site, 0, len(urls))
	for _, u := range urls {
		site, err := c.ExtractDetail(ctx, u)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// listSiteURLs returns the absolute site URLs listed on a state page.
func (c *Catalog) listSiteURLs(ctx context.Context, regionURL string) ([]string, error) {
	html, err := c.fetcher.Fetch(ctx, regionURL)
	if err != nil {
		return nil, err
	}

	doc, err := parseHTML(html)
	if err != nil {
		return nil, err
	}

	blocks := doc.Find(c.selectors.ListingBlock)
	if blocks.Length() == 0 {
		return nil, parkdir.Errorf(parkdir.ENOTFOUND, "site listing not found on %s", regionURL)
	}

	var urls []string
	blocks.Each(func(_ int, block *goquery.Selection) {
		href, ok := block.Find(c.selectors.ListingLink).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		if resolved := resolveURL(c.base, href); resolved != "" {
			urls = append(urls, resolved)
		}
	})
	return urls, nil
}
