package apimap

import (
	"context"
	"time"
)

// CrawlTarget is a URL paired with its discovery depth (0 = seed).
// Targets exist only in the crawl frontier.
type CrawlTarget struct {
	URL   string
	Depth int
}

// PageResult holds the outcome of fetching and parsing one page.
// Immutable after creation; consumed by the extractor and then discarded
// except for its PageSummary and a capped text snippet.
type PageResult struct {
	URL           string
	Depth         int
	Text          string
	ContentLength int
	Links         []string
}

// Summary returns the bookkeeping retained for a crawled page.
func (p *PageResult) Summary() PageSummary {
	return PageSummary{
		URL:           p.URL,
		Depth:         p.Depth,
		ContentLength: p.ContentLength,
	}
}

// PageSummary is the per-page accounting kept in a crawl result.
type PageSummary struct {
	URL           string `json:"url"`
	Depth         int    `json:"depth"`
	ContentLength int    `json:"contentLength"`
}

// CrawlResult is the outcome of one crawl invocation.
type CrawlResult struct {
	// Endpoints are the deduplicated records in first-seen crawl order.
	Endpoints []*EndpointRecord `json:"endpoints"`

	// PagesCrawled lists the successfully fetched pages in crawl order.
	PagesCrawled []PageSummary `json:"pagesCrawled"`

	// TotalEndpoints is the deduplicated endpoint count.
	TotalEndpoints int `json:"totalEndpoints"`

	// Corpus is the bounded concatenation of per-page text snippets,
	// retained only for post-hoc description synthesis.
	Corpus string `json:"corpus"`
}

// CrawlRun is a persisted crawl invocation, stored by the history layer.
type CrawlRun struct {
	ID         string            `json:"id"`
	SeedURL    string            `json:"seedUrl"`
	MaxDepth   int               `json:"maxDepth"`
	MaxPages   int               `json:"maxPages"`
	Endpoints  []*EndpointRecord `json:"endpoints"`
	Pages      []PageSummary     `json:"pages"`
	CorpusHash string            `json:"corpusHash"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *CrawlRun) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "crawl run seed URL required")
	}
	for _, ep := range r.Endpoints {
		if err := ep.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CrawlService persists and retrieves crawl runs.
type CrawlService interface {
	// CreateCrawlRun stores a new run with its endpoints and pages.
	CreateCrawlRun(ctx context.Context, run *CrawlRun) error

	// FindCrawlRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindCrawlRunByID(ctx context.Context, id string) (*CrawlRun, error)

	// FindCrawlRuns retrieves runs matching the filter, newest first.
	FindCrawlRuns(ctx context.Context, filter CrawlRunFilter) ([]*CrawlRun, error)

	// DeleteCrawlRun permanently removes a run and its endpoints and pages.
	// Returns ENOTFOUND if the run does not exist.
	DeleteCrawlRun(ctx context.Context, id string) error
}

// CrawlRunFilter represents a filter for FindCrawlRuns.
type CrawlRunFilter struct {
	ID      *string `json:"id"`
	SeedURL *string `json:"seedUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
