package services

import (
	"context"
	"fmt"
	"io"

	"redheart/internal/domain"
	"redheart/internal/events"
	"redheart/internal/validate"
)

const (
	MsgSelectCSV          = "Please select a CSV file."
	MsgUploadFailed       = "Upload failed"
	MsgUploadInProgress   = "An upload is already in progress."
	MsgProductsLoadFailed = "Failed to fetch products"
	MsgProductDeleteFail  = "Failed to delete product"
)

var ErrNoCSV = &validate.Problem{Msg: MsgSelectCSV}

type ProductBackend interface {
	ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	ImportProducts(ctx context.Context, filename string, r io.Reader) (domain.ImportResult, error)
	UpdateProducts(ctx context.Context, filename string, r io.Reader) (domain.ImportResult, error)
}

type ProductService struct {
	API      ProductBackend
	Upload   *Busy
	PageSize int
	Events   events.Publisher
}

func NewProductService(api ProductBackend, pageSize int, pub events.Publisher) *ProductService {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &ProductService{API: api, Upload: &Busy{}, PageSize: pageSize, Events: pub}
}

// Import forwards a CSV for bulk creation.
func (s *ProductService) Import(ctx context.Context, actor, filename string, r io.Reader) (domain.ImportResult, error) {
	return s.transfer(ctx, actor, filename, r, s.API.ImportProducts, events.ProductsImported)
}

// Update forwards a CSV that overwrites existing products.
func (s *ProductService) Update(ctx context.Context, actor, filename string, r io.Reader) (domain.ImportResult, error) {
	return s.transfer(ctx, actor, filename, r, s.API.UpdateProducts, events.ProductsUpdated)
}

func (s *ProductService) transfer(
	ctx context.Context, actor, filename string, r io.Reader,
	send func(context.Context, string, io.Reader) (domain.ImportResult, error),
	action string,
) (domain.ImportResult, error) {
	if r == nil || filename == "" {
		return domain.ImportResult{}, ErrNoCSV
	}
	release, err := s.Upload.Acquire()
	if err != nil {
		return domain.ImportResult{}, err
	}
	defer release()

	res, err := send(ctx, filename, r)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("%s %s: %w", action, filename, err)
	}
	publish(ctx, s.Events, events.New(action, "products", filename, actor, map[string]any{
		"inserted": res.InsertedCount,
		"failed":   res.FailedCount,
	}))
	return res, nil
}

// Query builds the browse filter for a search box value and a 1-based page.
func (s *ProductService) Query(search string, page int) domain.ProductQuery {
	if page < 1 {
		page = 1
	}
	return domain.ProductQuery{Search: validate.Search(search), Page: page, Limit: s.PageSize}
}

func (s *ProductService) Browse(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	return s.API.ListProducts(ctx, q)
}

// Delete removes one product by its product_id and refetches the page q describes.
// current is the page the operator was looking at; nil means fetch it first.
func (s *ProductService) Delete(ctx context.Context, actor string, q domain.ProductQuery, productID string, current []domain.Product) Reconciled[[]domain.Product] {
	if current == nil {
		current, _ = s.API.ListProducts(ctx, q)
	}
	r := MutateThenReconcile(ctx, current,
		func(ps []domain.Product) []domain.Product {
			out := make([]domain.Product, 0, len(ps))
			for _, p := range ps {
				if p.Key() != productID {
					out = append(out, p)
				}
			}
			return out
		},
		func(ctx context.Context) error { return s.API.DeleteProduct(ctx, productID) },
		func(ctx context.Context) ([]domain.Product, error) { return s.API.ListProducts(ctx, q) },
		MsgProductsLoadFailed,
	)
	if r.MutateErr != nil {
		r.Message = MsgProductDeleteFail
		return r
	}
	publish(ctx, s.Events, events.New(events.ProductDeleted, "product", productID, actor, nil))
	return r
}
