package sqlite_test

import (
	"context"
	"testing"

	"github.com/apimap/apimap"
	"github.com/apimap/apimap/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testRun(seedURL string) *apimap.CrawlRun {
	return &apimap.CrawlRun{
		SeedURL:    seedURL,
		MaxDepth:   3,
		MaxPages:   20,
		CorpusHash: "deadbeef",
		Endpoints: []*apimap.EndpointRecord{
			{Method: "GET", Path: "/v1/users", FullURL: seedURL + "/v1/users", Source: apimap.ProvenanceMethodPath},
			{Method: "POST", Path: "/v1/users", FullURL: seedURL + "/v1/users", Source: apimap.ProvenanceCurlCommand},
		},
		Pages: []apimap.PageSummary{
			{URL: seedURL + "/docs", Depth: 0, ContentLength: 1200},
			{URL: seedURL + "/docs/users", Depth: 1, ContentLength: 800},
		},
	}
}

func TestCrawlService_CreateCrawlRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		run := testRun("https://api.example.com")
		err := svc.CreateCrawlRun(ctx, run)
		require.NoError(t, err)

		assert.NotEmpty(t, run.ID, "ID should be generated")
		assert.False(t, run.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns EINVALID for run without seed URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)

		err := svc.CreateCrawlRun(context.Background(), &apimap.CrawlRun{})
		require.Error(t, err)
		assert.Equal(t, apimap.EINVALID, apimap.ErrorCode(err))
	})
}

func TestCrawlService_FindCrawlRunByID(t *testing.T) {
	t.Parallel()

	t.Run("returns run with endpoints and pages in stored order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		run := testRun("https://api.example.com")
		require.NoError(t, svc.CreateCrawlRun(ctx, run))

		found, err := svc.FindCrawlRunByID(ctx, run.ID)
		require.NoError(t, err)

		assert.Equal(t, run.ID, found.ID)
		assert.Equal(t, run.SeedURL, found.SeedURL)
		assert.Equal(t, run.MaxDepth, found.MaxDepth)
		assert.Equal(t, run.MaxPages, found.MaxPages)
		assert.Equal(t, run.CorpusHash, found.CorpusHash)

		require.Len(t, found.Endpoints, 2)
		assert.Equal(t, "GET", found.Endpoints[0].Method)
		assert.Equal(t, apimap.ProvenanceMethodPath, found.Endpoints[0].Source)
		assert.Equal(t, "POST", found.Endpoints[1].Method)

		require.Len(t, found.Pages, 2)
		assert.Equal(t, 0, found.Pages[0].Depth)
		assert.Equal(t, 1, found.Pages[1].Depth)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)

		_, err := svc.FindCrawlRunByID(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, apimap.ENOTFOUND, apimap.ErrorCode(err))
	})
}

func TestCrawlService_FindCrawlRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns all runs with empty filter", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			require.NoError(t, svc.CreateCrawlRun(ctx, testRun("https://api.example.com")))
		}

		runs, err := svc.FindCrawlRuns(ctx, apimap.CrawlRunFilter{})
		require.NoError(t, err)
		assert.Len(t, runs, 3)
		for _, run := range runs {
			assert.Len(t, run.Endpoints, 2)
			assert.Len(t, run.Pages, 2)
		}
	})

	t.Run("filters by seed URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateCrawlRun(ctx, testRun("https://alpha.example.com")))
		require.NoError(t, svc.CreateCrawlRun(ctx, testRun("https://beta.example.com")))

		seedURL := "https://alpha.example.com"
		runs, err := svc.FindCrawlRuns(ctx, apimap.CrawlRunFilter{SeedURL: &seedURL})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "https://alpha.example.com", runs[0].SeedURL)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			require.NoError(t, svc.CreateCrawlRun(ctx, testRun("https://api.example.com")))
		}

		runs, err := svc.FindCrawlRuns(ctx, apimap.CrawlRunFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})
}

func TestCrawlService_DeleteCrawlRun(t *testing.T) {
	t.Parallel()

	t.Run("deletes run with its endpoints and pages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		run := testRun("https://api.example.com")
		require.NoError(t, svc.CreateCrawlRun(ctx, run))

		require.NoError(t, svc.DeleteCrawlRun(ctx, run.ID))

		_, err := svc.FindCrawlRunByID(ctx, run.ID)
		assert.Equal(t, apimap.ENOTFOUND, apimap.ErrorCode(err))

		var count int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM crawl_endpoints WHERE run_id = ?", run.ID).Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count, "endpoint rows cascade on delete")
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)

		err := svc.DeleteCrawlRun(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, apimap.ENOTFOUND, apimap.ErrorCode(err))
	})
}
