package backend

import (
	"context"
	"net/http"

	"redheart/internal/domain"
)

func (c *Client) ListPages(ctx context.Context) ([]domain.PageContent, error) {
	var out []domain.PageContent
	if err := c.getJSON(ctx, "/page-content/admin/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertPage creates the page if it is new and overwrites it otherwise.
func (c *Client) UpsertPage(ctx context.Context, page, htmlCode string) (string, error) {
	return c.sendJSON(ctx, http.MethodPost, "/page-content/admin",
		map[string]string{"page": page, "htmlCode": htmlCode}, nil)
}
