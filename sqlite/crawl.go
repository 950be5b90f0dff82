package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/apimap/apimap"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ apimap.CrawlService = (*CrawlService)(nil)

// CrawlService implements apimap.CrawlService using SQLite.
type CrawlService struct {
	db *DB
}

// NewCrawlService creates a new CrawlService.
func NewCrawlService(db *DB) *CrawlService {
	return &CrawlService{db: db}
}

// CreateCrawlRun stores a run together with its endpoints and pages in a
// single transaction. The run is assigned an ID and creation time.
func (s *CrawlService) CreateCrawlRun(ctx context.Context, run *apimap.CrawlRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO crawl_runs (id, seed_url, max_depth, max_pages, corpus_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.SeedURL, run.MaxDepth, run.MaxPages, run.CorpusHash,
		run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, ep := range run.Endpoints {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO crawl_endpoints (run_id, position, method, path, full_url, source)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, i, ep.Method, ep.Path, ep.FullURL, string(ep.Source))
		if err != nil {
			return err
		}
	}

	for i, page := range run.Pages {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO crawl_pages (run_id, position, url, depth, content_length)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, i, page.URL, page.Depth, page.ContentLength)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindCrawlRunByID retrieves a run by ID with its endpoints and pages.
func (s *CrawlService) FindCrawlRunByID(ctx context.Context, id string) (*apimap.CrawlRun, error) {
	var run apimap.CrawlRun
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, max_depth, max_pages, corpus_hash, created_at
		FROM crawl_runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.SeedURL, &run.MaxDepth, &run.MaxPages, &run.CorpusHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, apimap.Errorf(apimap.ENOTFOUND, "crawl run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	if run.Endpoints, err = s.findRunEndpoints(ctx, run.ID); err != nil {
		return nil, err
	}
	if run.Pages, err = s.findRunPages(ctx, run.ID); err != nil {
		return nil, err
	}

	return &run, nil
}

// FindCrawlRuns retrieves runs matching the filter, newest first, each
// with its endpoints and pages attached.
func (s *CrawlService) FindCrawlRuns(ctx context.Context, filter apimap.CrawlRunFilter) ([]*apimap.CrawlRun, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, max_depth, max_pages, corpus_hash, created_at FROM crawl_runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*apimap.CrawlRun
	for rows.Next() {
		var run apimap.CrawlRun
		var createdAt string

		if err := rows.Scan(&run.ID, &run.SeedURL, &run.MaxDepth, &run.MaxPages, &run.CorpusHash, &createdAt); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, run := range runs {
		if run.Endpoints, err = s.findRunEndpoints(ctx, run.ID); err != nil {
			return nil, err
		}
		if run.Pages, err = s.findRunPages(ctx, run.ID); err != nil {
			return nil, err
		}
	}

	return runs, nil
}

// DeleteCrawlRun permanently removes a run. Endpoint and page rows go
// with it via ON DELETE CASCADE.
func (s *CrawlService) DeleteCrawlRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM crawl_runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apimap.Errorf(apimap.ENOTFOUND, "crawl run not found")
	}

	return nil
}

// findRunEndpoints loads a run's endpoint records in stored order.
func (s *CrawlService) findRunEndpoints(ctx context.Context, runID string) ([]*apimap.EndpointRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT method, path, full_url, source
		FROM crawl_endpoints
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var endpoints []*apimap.EndpointRecord
	for rows.Next() {
		var ep apimap.EndpointRecord
		var source string
		if err := rows.Scan(&ep.Method, &ep.Path, &ep.FullURL, &source); err != nil {
			return nil, err
		}
		ep.Source = apimap.Provenance(source)
		endpoints = append(endpoints, &ep)
	}

	return endpoints, rows.Err()
}

// findRunPages loads a run's page summaries in stored order.
func (s *CrawlService) findRunPages(ctx context.Context, runID string) ([]apimap.PageSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, depth, content_length
		FROM crawl_pages
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []apimap.PageSummary
	for rows.Next() {
		var page apimap.PageSummary
		if err := rows.Scan(&page.URL, &page.Depth, &page.ContentLength); err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}
