package backend

import (
	"context"
	"net/http"
	"net/url"

	"redheart/internal/domain"
)

// ListOrders is the admin order list. Empty filter values are dropped.
func (c *Client) ListOrders(ctx context.Context, filters map[string]string) ([]domain.Order, error) {
	q := url.Values{}
	for k, v := range filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	var out []domain.Order
	if err := c.getJSON(ctx, "/orders", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	_, err := c.sendJSON(ctx, http.MethodPatch, "/orders/admin/"+escape(orderID)+"/status",
		map[string]string{"status": string(status)}, nil)
	return err
}
