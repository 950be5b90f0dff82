// Package crawl orchestrates the bounded breadth-first traversal of a
// documentation site: it drives the fetcher, parser and extractor over a
// FIFO frontier, keeps the visited set and page accounting, and returns
// the deduplicated endpoint list plus a bounded text corpus.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/apimap/apimap"
)

// Default traversal budgets, matching the crawlDocumentation defaults
// callers usually want.
const (
	DefaultMaxDepth = 3
	DefaultMaxPages = 20
)

// Corpus bounds: each page contributes at most snippetMaxLen bytes, and
// at most corpusMaxSnippets pages contribute at all. The corpus feeds
// description synthesis only, never endpoint discovery.
const (
	snippetMaxLen     = 8000
	corpusMaxSnippets = 25
)

// linkKeywords lets the crawl follow documentation links across host
// boundaries. Deliberately loose: it trades precision for recall and can
// pull the crawl off the seed's site, bounded only by the depth and page
// budgets.
var linkKeywords = []string{"api", "endpoint", "docs", "reference", "rest", "documentation"}

// Crawler performs bounded breadth-first crawls of documentation sites.
// Pages are processed one at a time in strict FIFO order; a failed fetch
// or parse forfeits that page and the crawl continues.
type Crawler struct {
	Fetcher   apimap.Fetcher
	Parser    apimap.PageParser
	Extractor apimap.EndpointExtractor

	// Sitemaps, when set, pre-seeds the frontier with the site's sitemap
	// URLs at depth 1. Discovery failure is logged and ignored.
	Sitemaps apimap.SitemapService

	// Limiter, when set, is waited on before every fetch.
	Limiter apimap.DomainLimiter

	// Logger receives per-page failures and progress. Nil disables logging.
	Logger *slog.Logger

	// MaxDepth and MaxPages bound the traversal. Zero means zero:
	// MaxDepth 0 crawls only the seed, MaxPages 0 crawls nothing.
	// Callers typically use DefaultMaxDepth and DefaultMaxPages.
	MaxDepth int
	MaxPages int
}

// Crawl traverses the site rooted at seedURL and returns the discovered
// endpoints, per-page accounting, and the bounded corpus. The only fatal
// error is an invalid seed URL; per-page failures are swallowed at the
// per-URL boundary. Traversal ends when the frontier is exhausted, the
// page budget is reached, or ctx is canceled.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (*apimap.CrawlResult, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || seed.Scheme == "" || seed.Host == "" {
		return nil, apimap.Errorf(apimap.EINVALID,
			"invalid seed URL %q: expected an absolute URL like https://example.com/docs", seedURL)
	}

	frontier := NewFrontier()
	frontier.Push(apimap.CrawlTarget{URL: seedURL})

	if c.Sitemaps != nil {
		c.preseed(ctx, frontier, seedURL)
	}

	visited := make(map[string]bool)
	var (
		raw      []apimap.EndpointRecord
		pages    []apimap.PageSummary
		snippets []string
	)

	for len(pages) < c.MaxPages {
		target, ok := frontier.Pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			break
		}

		// Skipped targets do not count against the page budget.
		if visited[target.URL] {
			continue
		}
		if target.Depth > c.MaxDepth {
			continue
		}
		visited[target.URL] = true

		page, err := c.processPage(ctx, target)
		if err != nil {
			c.logWarn("page forfeited", "url", target.URL, "depth", target.Depth, "error", err)
			continue
		}

		pages = append(pages, page.Summary())
		if len(snippets) < corpusMaxSnippets {
			snippets = append(snippets, snippet(page.Text))
		}

		found := c.Extractor.Extract(page.Text, page.URL)
		raw = append(raw, found...)
		c.logDebug("page crawled",
			"url", target.URL,
			"depth", target.Depth,
			"endpoints", len(found),
			"links", len(page.Links),
		)

		if target.Depth < c.MaxDepth {
			c.enqueueLinks(frontier, visited, seed, page.Links, target.Depth+1)
		}
	}

	deduped := Dedupe(raw)
	return &apimap.CrawlResult{
		Endpoints:      deduped,
		PagesCrawled:   pages,
		TotalEndpoints: len(deduped),
		Corpus:         strings.Join(snippets, "\n\n"),
	}, nil
}

// processPage fetches and parses one URL. Any error returned here is
// swallowed by the caller; it only forfeits this page.
func (c *Crawler) processPage(ctx context.Context, target apimap.CrawlTarget) (*apimap.PageResult, error) {
	if c.Limiter != nil {
		u, err := url.Parse(target.URL)
		if err != nil {
			return nil, err
		}
		if err := c.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := c.Fetcher.Fetch(ctx, target.URL)
	if err != nil {
		return nil, err
	}

	text, links, err := c.Parser.Parse(html, target.URL)
	if err != nil {
		return nil, err
	}

	return &apimap.PageResult{
		URL:           target.URL,
		Depth:         target.Depth,
		Text:          text,
		ContentLength: len(text),
		Links:         links,
	}, nil
}

// enqueueLinks pushes discovered links at the given depth, skipping URLs
// already visited or already enqueued.
func (c *Crawler) enqueueLinks(frontier *Frontier, visited map[string]bool, seed *url.URL, links []string, depth int) {
	for _, link := range links {
		if visited[link] || frontier.Seen(link) {
			continue
		}
		if !shouldFollow(seed, link) {
			continue
		}
		frontier.Push(apimap.CrawlTarget{URL: link, Depth: depth})
	}
}

// shouldFollow applies the link filter: same host as the seed, or a URL
// containing a documentation keyword. The keyword escape hatch follows
// same-ecosystem documentation links across sub-host boundaries.
func shouldFollow(seed *url.URL, link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Host == seed.Host {
		return true
	}
	lower := strings.ToLower(link)
	for _, kw := range linkKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// preseed discovers sitemap URLs and enqueues them behind the seed at
// depth 1.
func (c *Crawler) preseed(ctx context.Context, frontier *Frontier, seedURL string) {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, seedURL)
	if err != nil {
		c.logWarn("sitemap discovery failed", "url", seedURL, "error", err)
		return
	}
	for _, u := range urls {
		frontier.Push(apimap.CrawlTarget{URL: u, Depth: 1})
	}
}

// snippet truncates page text to the per-page corpus cap, backing the
// cut off to a rune boundary so the tail stays valid UTF-8.
func snippet(text string) string {
	if len(text) <= snippetMaxLen {
		return text
	}
	cut := snippetMaxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func (c *Crawler) logWarn(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Warn(msg, args...)
	}
}

func (c *Crawler) logDebug(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, args...)
	}
}
