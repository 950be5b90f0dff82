package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/apimap/apimap"
	"github.com/apimap/apimap/analyze"
	"github.com/apimap/apimap/crawl"
	"github.com/apimap/apimap/extract"
	"github.com/apimap/apimap/goquery"
	apimaphttp "github.com/apimap/apimap/http"
	apimapslog "github.com/apimap/apimap/slog"
	"github.com/apimap/apimap/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path for crawl history. Set before calling Run().
	DBPath string

	// SQLite database, opened only for commands that touch history.
	DB *sqlite.DB

	// CrawlService for end-to-end testing.
	CrawlService apimap.CrawlService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("apimap"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'apimap --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Crawl.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// History lives in SQLite; open it only for commands that need it.
	// A pre-set CrawlService (tests) skips the database entirely.
	needsDB := cmd == "history" || cmd == "show" || cmd == "delete" ||
		(cmd == "crawl" && cli.Crawl.Save)
	if needsDB && m.CrawlService == nil {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set APIMAP_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.CrawlService = sqlite.NewCrawlService(m.DB)
	}
	deps.Runs = m.CrawlService

	if cmd == "crawl" {
		fetcher := apimaphttp.NewFetcher(apimaphttp.WithTimeout(cli.Crawl.Timeout))
		defer fetcher.Close()

		var sitemaps apimap.SitemapService
		if cli.Crawl.Sitemap {
			sitemaps = apimapslog.NewLoggingSitemapService(apimaphttp.NewSitemapService(nil), logger)
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:   apimapslog.NewLoggingFetcher(fetcher, logger),
			Parser:    goquery.NewParser(),
			Extractor: extract.NewExtractor(),
			Sitemaps:  sitemaps,
			Limiter:   crawl.NewDomainLimiter(cli.Crawl.Rate),
			Logger:    logger,
			MaxDepth:  cli.Crawl.Depth,
			MaxPages:  cli.Crawl.Pages,
		}
		deps.Analyzer = &analyze.Analyzer{}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("APIMAP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "apimap.db"
	}
	dir := filepath.Join(home, ".apimap")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "apimap.db")
}
