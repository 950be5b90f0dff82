package apimap

import "context"

// Fetcher retrieves raw HTML from URLs.
// A failed fetch is never fatal to a crawl: the scheduler treats it as
// "zero content, zero links" and moves on. There are no retries; a single
// failed fetch permanently forfeits that page for the crawl run.
type Fetcher interface {
	// Fetch retrieves the HTML at url. The context controls timeout and
	// cancellation; implementations also enforce their own fixed timeout.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, domain string) error
}

// SitemapService discovers URLs from a site's sitemaps.
// Used to pre-seed the crawl frontier; discovery failure is never fatal.
type SitemapService interface {
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
