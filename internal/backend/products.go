package backend

import (
	"context"
	"io"
	"net/http"

	"redheart/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.getJSON(ctx, "/products", q.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+escape(productID), nil, nil, "")
	return err
}

// ImportProducts sends a CSV for bulk creation; validation is entirely the backend's.
func (c *Client) ImportProducts(ctx context.Context, filename string, r io.Reader) (domain.ImportResult, error) {
	var out domain.ImportResult
	err := c.postFile(ctx, "/products/import", filename, r, &out)
	return out, err
}

// UpdateProducts sends a CSV that overwrites existing products by id.
func (c *Client) UpdateProducts(ctx context.Context, filename string, r io.Reader) (domain.ImportResult, error) {
	var out domain.ImportResult
	err := c.postFile(ctx, "/products/update", filename, r, &out)
	return out, err
}
