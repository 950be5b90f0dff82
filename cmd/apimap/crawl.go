package main

import (
	"fmt"

	"github.com/apimap/apimap"
	"github.com/apimap/apimap/analyze"
	"github.com/apimap/apimap/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apimap.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, crawl.FormatResult(result))

	if c.Analyze {
		analyses, err := deps.Analyzer.Analyze(deps.Ctx, result.Endpoints, result.Corpus)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error analyzing: %s\n", apimap.ErrorMessage(err))
			return err
		}
		fmt.Fprint(deps.Stdout, analyze.FormatAnalyses(analyses))
	}

	if c.Save {
		run := &apimap.CrawlRun{
			SeedURL:    c.URL,
			MaxDepth:   c.Depth,
			MaxPages:   c.Pages,
			Endpoints:  result.Endpoints,
			Pages:      result.PagesCrawled,
			CorpusHash: crawl.ContentHash(result.Corpus),
		}
		if err := deps.Runs.CreateCrawlRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", apimap.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved crawl run %s\n", run.ID)
	}

	return nil
}
