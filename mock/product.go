package mock

import (
	"context"

	"github.com/fwojciec/pricewatch"
)

var (
	_ pricewatch.ProductWriter  = (*ProductService)(nil)
	_ pricewatch.ProductService = (*ProductService)(nil)
)

// ProductService is a mock implementation of pricewatch.ProductService.
type ProductService struct {
	CreateProductsFn         func(ctx context.Context, products []*pricewatch.Product) error
	FindProductsFn           func(ctx context.Context, filter pricewatch.ProductFilter) ([]*pricewatch.Product, error)
	DeleteProductsBySourceFn func(ctx context.Context, sourceURL string) error
}

func (s *ProductService) CreateProducts(ctx context.Context, products []*pricewatch.Product) error {
	return s.CreateProductsFn(ctx, products)
}

func (s *ProductService) FindProducts(ctx context.Context, filter pricewatch.ProductFilter) ([]*pricewatch.Product, error) {
	return s.FindProductsFn(ctx, filter)
}

func (s *ProductService) DeleteProductsBySource(ctx context.Context, sourceURL string) error {
	return s.DeleteProductsBySourceFn(ctx, sourceURL)
}
