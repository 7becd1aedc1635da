package catalog

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// FindProduct returns a product from feed, draining the remaining pages
// once before giving up with domain.ErrProductNotFound.
func FindProduct(ctx context.Context, feed contracts.ProductFeed, productID string) (domain.Product, error) {
	if p, ok := feed.Find(productID); ok {
		return p, nil
	}
	if feed.HasMore() {
		if err := feed.LoadAll(ctx); err != nil {
			return domain.Product{}, fmt.Errorf("load products: %w", err)
		}
		if p, ok := feed.Find(productID); ok {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// ResolveVariant picks the variant a request refers to: by id, else by
// value labels, else the default variant.
func ResolveVariant(p domain.Product, variantID string, values []string) (domain.Variant, error) {
	switch {
	case variantID != "":
		if v, ok := p.FindVariant(variantID); ok {
			return v, nil
		}
		return domain.Variant{}, domain.ErrVariantNotFound
	case len(values) > 0:
		return p.VariantByValues(values)
	default:
		if v, ok := p.DefaultVariant(); ok {
			return v, nil
		}
		return domain.Variant{}, domain.ErrVariantNotFound
	}
}
