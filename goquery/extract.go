// Package goquery implements parkdir.Catalog by reading the NPS catalog
// pages with CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/parkdir"
)

// parseHTML builds a document from a page body.
func parseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, parkdir.Errorf(parkdir.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// textOf returns the trimmed text of the first element matching selector
// within sel, and whether such an element exists.
func textOf(sel *goquery.Selection, selector string) (string, bool) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(found.Text()), true
}

// optionalText returns the trimmed text of the first match or "".
func optionalText(sel *goquery.Selection, selector string) string {
	text, _ := textOf(sel, selector)
	return text
}

// resolveURL resolves href against base.
// Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
