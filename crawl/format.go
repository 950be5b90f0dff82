package crawl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/apimap/apimap"
	"github.com/cespare/xxhash/v2"
)

// methodOrder fixes the display order of method groups in reports.
var methodOrder = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// FormatResult renders a crawl result as a plain-text report: totals,
// endpoints grouped by method with paths sorted within each group, then
// the list of pages crawled.
func FormatResult(result *apimap.CrawlResult) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	divider := strings.Repeat("-", 80)

	b.WriteString(rule + "\n")
	b.WriteString("API ENDPOINTS EXTRACTION RESULTS\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "\nTotal Pages Crawled: %d\n", len(result.PagesCrawled))
	fmt.Fprintf(&b, "Total Unique Endpoints Found: %d\n", result.TotalEndpoints)

	byMethod := make(map[string][]*apimap.EndpointRecord)
	for _, ep := range result.Endpoints {
		byMethod[ep.Method] = append(byMethod[ep.Method], ep)
	}

	for _, method := range methodOrder {
		group := byMethod[method]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Path < group[j].Path })

		fmt.Fprintf(&b, "\n%s Endpoints (%d):\n", method, len(group))
		b.WriteString(divider + "\n")
		for _, ep := range group {
			fmt.Fprintf(&b, "  %-6s %s\n", ep.Method, ep.Path)
			fmt.Fprintf(&b, "           Full URL: %s\n", ep.FullURL)
		}
	}

	b.WriteString("\n\nPages Crawled:\n")
	b.WriteString(divider + "\n")
	for _, page := range result.PagesCrawled {
		fmt.Fprintf(&b, "  Depth %d: %s\n", page.Depth, page.URL)
	}

	return b.String()
}

// ContentHash returns an xxhash digest of content. The history store uses
// it to fingerprint a run's corpus.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
