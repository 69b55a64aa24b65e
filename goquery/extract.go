// Package goquery implements link extraction from HTML documents.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/spinneret"
	"github.com/fwojciec/spinneret/norm"
)

// Compile-time interface verification.
var _ spinneret.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor discovers hyperlinks in HTML and returns them as
// canonical URLs. It scans every anchor: scoping decisions (domain
// filters, budgets) belong to the frontier, not the extractor.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns the canonical URLs of its
// hyperlinks, deduplicated with the first occurrence winning so output
// order is deterministic. Non-navigable and unresolvable targets are
// skipped silently; the HTML parser tolerates malformed markup, so the
// only error case is an invalid base URL.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	if _, err := norm.Resolve("/", baseURL); err != nil {
		return nil, spinneret.Errorf(spinneret.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, spinneret.Errorf(spinneret.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		canonical, err := norm.Resolve(href, baseURL)
		if err != nil {
			return
		}

		if _, ok := seen[canonical]; ok {
			return
		}
		seen[canonical] = struct{}{}
		links = append(links, canonical)
	})

	return links, nil
}
