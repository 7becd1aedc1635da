package contracts

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// StoreAPI is the remote storefront backend.
type StoreAPI interface {
	// ListProducts fetches one page of products. An empty category lists
	// every product.
	ListProducts(ctx context.Context, page, limit int, category string) ([]domain.Product, error)
	Business(ctx context.Context) (domain.Business, error)
	FilterOptions(ctx context.Context, flags domain.FacetFlags) (domain.Facets, error)
	CreateOrder(ctx context.Context, payload domain.OrderPayload) (domain.OrderResult, error)
}

// OrderAPI creates orders. It is the slice of StoreAPI checkout needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, payload domain.OrderPayload) (domain.OrderResult, error)
}
