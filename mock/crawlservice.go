package mock

import (
	"context"

	"github.com/apimap/apimap"
)

var _ apimap.CrawlService = (*CrawlService)(nil)

// CrawlService is a mock implementation of apimap.CrawlService.
type CrawlService struct {
	CreateCrawlRunFn   func(ctx context.Context, run *apimap.CrawlRun) error
	FindCrawlRunByIDFn func(ctx context.Context, id string) (*apimap.CrawlRun, error)
	FindCrawlRunsFn    func(ctx context.Context, filter apimap.CrawlRunFilter) ([]*apimap.CrawlRun, error)
	DeleteCrawlRunFn   func(ctx context.Context, id string) error
}

func (s *CrawlService) CreateCrawlRun(ctx context.Context, run *apimap.CrawlRun) error {
	return s.CreateCrawlRunFn(ctx, run)
}

func (s *CrawlService) FindCrawlRunByID(ctx context.Context, id string) (*apimap.CrawlRun, error) {
	return s.FindCrawlRunByIDFn(ctx, id)
}

func (s *CrawlService) FindCrawlRuns(ctx context.Context, filter apimap.CrawlRunFilter) ([]*apimap.CrawlRun, error) {
	return s.FindCrawlRunsFn(ctx, filter)
}

func (s *CrawlService) DeleteCrawlRun(ctx context.Context, id string) error {
	return s.DeleteCrawlRunFn(ctx, id)
}
