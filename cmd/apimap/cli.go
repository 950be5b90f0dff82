package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/apimap/apimap"
	"github.com/apimap/apimap/analyze"
	"github.com/apimap/apimap/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Runs     apimap.CrawlService
	Crawler  *crawl.Crawler
	Analyzer *analyze.Analyzer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl   CrawlCmd   `cmd:"" help:"Crawl a documentation site and extract API endpoints"`
	History HistoryCmd `cmd:"" help:"List saved crawl runs"`
	Show    ShowCmd    `cmd:"" help:"Show a saved crawl run"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved crawl run"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL     string        `arg:"" help:"Documentation URL to start from"`
	Depth   int           `short:"d" default:"3" help:"Maximum link depth from the seed"`
	Pages   int           `short:"p" default:"20" help:"Maximum number of pages to crawl"`
	Timeout time.Duration `default:"10s" help:"Per-request HTTP timeout"`
	Rate    float64       `default:"1.0" help:"Requests per second per domain"`
	Sitemap bool          `help:"Pre-seed the crawl from the site's sitemap"`
	Analyze bool          `short:"a" help:"Synthesize endpoint descriptions after the crawl"`
	Save    bool          `short:"s" help:"Save the crawl run to history"`
	Verbose bool          `short:"v" help:"Enable debug logging"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	SeedURL string `help:"Only show runs for this seed URL"`
	Limit   int    `default:"20" help:"Maximum number of runs to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Crawl run ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Crawl run ID"`
	Force bool   `help:"Confirm deletion"`
}
