package services

import (
	"context"
	"fmt"

	"redheart/internal/domain"
	"redheart/internal/events"
	"redheart/internal/validate"
)

const (
	MsgSelectPage      = "Select a page first"
	MsgPageSaved       = "Saved successfully"
	MsgPageSaveFailed  = "Error saving content"
	MsgPagesLoadFailed = "Failed to fetch pages"
)

var ErrNoPage = &validate.Problem{Msg: MsgSelectPage}

type PageBackend interface {
	ListPages(ctx context.Context) ([]domain.PageContent, error)
	UpsertPage(ctx context.Context, page, htmlCode string) (string, error)
}

type PageService struct {
	API    PageBackend
	Events events.Publisher
}

func NewPageService(api PageBackend, pub events.Publisher) *PageService {
	return &PageService{API: api, Events: pub}
}

func (s *PageService) List(ctx context.Context) ([]domain.PageContent, error) {
	return s.API.ListPages(ctx)
}

// Save upserts by page name and always refetches. The reconciled message is the
// backend's own when it sent one.
func (s *PageService) Save(ctx context.Context, actor, page, htmlCode string) (Reconciled[[]domain.PageContent], error) {
	name, ok := validate.PageName(page)
	if !ok {
		return Reconciled[[]domain.PageContent]{}, ErrNoPage
	}
	var backendMsg string
	r := MutateThenReconcile(ctx, nil,
		func(ps []domain.PageContent) []domain.PageContent { return ps },
		func(ctx context.Context) error {
			msg, err := s.API.UpsertPage(ctx, name, htmlCode)
			if err != nil {
				return fmt.Errorf("upsert page %s: %w", name, err)
			}
			backendMsg = msg
			return nil
		},
		s.API.ListPages,
		MsgPagesLoadFailed,
	)
	if r.MutateErr != nil {
		return r, nil
	}
	r.Message = backendMsg
	if r.Message == "" {
		r.Message = MsgPageSaved
	}
	publish(ctx, s.Events, events.New(events.PageUpserted, "page", name, actor, map[string]any{"bytes": len(htmlCode)}))
	return r, nil
}
