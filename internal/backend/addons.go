package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"redheart/internal/domain"
)

// AddOnPayload is the create/edit body. Prices travel as JSON numbers.
type AddOnPayload struct {
	Image         string      `json:"image"`
	Category      string      `json:"category"`
	Name          string      `json:"name"`
	CostPrice     json.Number `json:"costPrice"`
	SellingPrice  json.Number `json:"sellingPrice"`
	OriginalPrice json.Number `json:"originalPrice"`
	AddOn         bool        `json:"addOn"`
}

func (c *Client) CreateAddOn(ctx context.Context, in AddOnPayload) error {
	_, err := c.sendJSON(ctx, http.MethodPost, "/addOn/create", in, nil)
	return err
}

func (c *Client) EditAddOn(ctx context.Context, id string, in AddOnPayload) error {
	_, err := c.sendJSON(ctx, http.MethodPut, "/addOn/edit/"+escape(id), in, nil)
	return err
}

func (c *Client) SoftDeleteAddOn(ctx context.Context, id string) error {
	_, err := c.sendJSON(ctx, http.MethodPut, "/addOn/softDelete/"+escape(id), nil, nil)
	return err
}

func (c *Client) ListAddOns(ctx context.Context) ([]domain.AddOn, error) {
	var out []domain.AddOn
	if err := c.getJSON(ctx, "/addOn/all", url.Values{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddOnsByCategory(ctx context.Context, category string) ([]domain.AddOn, error) {
	var out []domain.AddOn
	if err := c.getJSON(ctx, "/addOn/category/"+escape(category), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
