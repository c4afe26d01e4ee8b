package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"redheart/internal/domain"
)

type DashboardBackend interface {
	ListOrders(ctx context.Context, filters map[string]string) ([]domain.Order, error)
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)
}

type DashboardService struct {
	API DashboardBackend
}

func NewDashboardService(api DashboardBackend) *DashboardService {
	return &DashboardService{API: api}
}

// Load fetches both sources in parallel; either failing fails the whole summary.
func (s *DashboardService) Load(ctx context.Context) (domain.Summary, error) {
	var (
		orders []domain.Order
		subs   []domain.Submission
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.API.ListOrders(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = s.API.ListSubmissions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(orders, subs), nil
}
