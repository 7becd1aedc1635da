package get_product

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/storefront/catalog"
	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request contains the product ID and an optional variant selection by
// value labels.
type Request struct {
	ProductID     string
	VariantValues []string
}

// Response is a product priced through the selected variant.
type Response struct {
	Product         domain.Product `json:"product"`
	Variant         domain.Variant `json:"variant"`
	Price           domain.Money   `json:"price"`
	SellingPrice    domain.Money   `json:"sellingPrice"`
	DiscountActive  bool           `json:"isDiscountActive"`
	DiscountPercent int            `json:"discountPercent"`
	InStock         bool           `json:"inStock"`
	PreOrder        bool           `json:"isPreOrder"`
	Image           string         `json:"image,omitempty"`
}

// Query handles the get product query use case.
type Query struct {
	feed  contracts.ProductFeed
	clock clock.Clock
}

// NewQuery creates a new get product query.
func NewQuery(feed contracts.ProductFeed, clock clock.Clock) *Query {
	return &Query{
		feed:  feed,
		clock: clock,
	}
}

// Execute looks the product up in the catalog, loading the remaining pages
// when it is not there yet.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	product, err := catalog.FindProduct(ctx, q.feed, req.ProductID)
	if err != nil {
		return nil, err
	}

	variant, ok := product.DefaultVariant()
	if len(req.VariantValues) > 0 {
		if variant, err = product.VariantByValues(req.VariantValues); err != nil {
			return nil, err
		}
		ok = true
	}

	now := q.clock.Now()
	resp := &Response{
		Product:  product,
		InStock:  product.InStock(),
		PreOrder: product.IsPreOrder,
		Price:    domain.Zero,
	}
	if !ok {
		return resp, nil
	}

	resp.Variant = variant
	resp.Price = variant.EffectivePrice(now)
	resp.SellingPrice = variant.SellingPrice
	resp.DiscountActive = variant.DiscountActive(now)
	resp.DiscountPercent = variant.DiscountPercent(now)
	resp.InStock = variant.InStock()
	resp.PreOrder = product.PreOrder(variant)
	resp.Image = product.Image(variant)
	return resp, nil
}
