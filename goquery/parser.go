// Package goquery provides a goquery-based implementation of
// apimap.PageParser: markup stripping, text flattening, and same-host
// link extraction.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/apimap/apimap"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var _ apimap.PageParser = (*Parser)(nil)

// Parser extracts visible text and same-host links from raw HTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse strips script, style, meta and link elements (they contaminate the
// text corpus and produce false-positive path matches), flattens the
// remaining text with single-space separators, and returns the page's
// hyperlinks resolved against pageURL. Only links on the same host as
// pageURL are returned, deduplicated in document order. URL fragments are
// stripped so anchor variants collapse to one link.
func (p *Parser) Parse(rawHTML, pageURL string) (string, []string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", nil, apimap.Errorf(apimap.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", nil, apimap.Errorf(apimap.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, meta, link").Remove()

	text := flattenText(doc)
	links := extractLinks(doc, base)

	return text, links, nil
}

// flattenText walks the remaining text nodes and joins them with single
// spaces, with leading/trailing whitespace trimmed.
func flattenText(doc *goquery.Document) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.Join(strings.Fields(n.Data), " "); s != "" {
				parts = append(parts, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Selection.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// extractLinks collects the page's anchors resolved to absolute form,
// keeping only same-host links and collapsing duplicates.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = "" // anchor variants are the same page

		if resolved.Host != base.Host {
			return
		}

		u := resolved.String()
		if seen[u] {
			return
		}
		seen[u] = true
		links = append(links, u)
	})

	return links
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
