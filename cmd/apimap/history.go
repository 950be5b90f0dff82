package main

import (
	"fmt"
	"time"

	"github.com/apimap/apimap"
	"github.com/apimap/apimap/crawl"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := apimap.CrawlRunFilter{Limit: c.Limit}
	if c.SeedURL != "" {
		filter.SeedURL = &c.SeedURL
	}

	runs, err := deps.Runs.FindCrawlRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apimap.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawl runs saved. Use 'apimap crawl --save' to record one.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d endpoints  %d pages\n",
			run.ID, run.CreatedAt.Format(time.RFC3339), run.SeedURL,
			len(run.Endpoints), len(run.Pages))
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindCrawlRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apimap.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run:      %s\n", run.ID)
	fmt.Fprintf(deps.Stdout, "Seed:     %s\n", run.SeedURL)
	fmt.Fprintf(deps.Stdout, "Created:  %s\n", run.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(deps.Stdout, "Budgets:  depth %d, pages %d\n\n", run.MaxDepth, run.MaxPages)

	fmt.Fprint(deps.Stdout, crawl.FormatResult(&apimap.CrawlResult{
		Endpoints:      run.Endpoints,
		PagesCrawled:   run.Pages,
		TotalEndpoints: len(run.Endpoints),
	}))

	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return apimap.Errorf(apimap.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteCrawlRun(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apimap.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted crawl run %s\n", c.ID)
	return nil
}
