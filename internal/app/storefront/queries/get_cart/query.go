package get_cart

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// Request identifies the session and the optional pricing inputs of the
// preview.
type Request struct {
	SessionID     string
	DeliveryArea  domain.DeliveryArea
	PaymentMethod string
}

// Response is the cart with a price preview of what checkout would buy.
type Response struct {
	Cart  *domain.Cart `json:"cart"`
	Quote domain.Quote `json:"quote"`
}

// Query handles the get cart query use case.
type Query struct {
	carts    contracts.CartRepository
	business contracts.BusinessSource
	promo    domain.Promotion
}

// NewQuery creates a new get cart query.
func NewQuery(carts contracts.CartRepository, business contracts.BusinessSource, promo domain.Promotion) *Query {
	return &Query{
		carts:    carts,
		business: business,
		promo:    promo,
	}
}

// Execute loads the session cart and prices it.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	cart, err := q.carts.Load(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	b, err := q.business.Business(ctx)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}

	return &Response{
		Cart:  cart,
		Quote: domain.NewQuote(cart, b, req.DeliveryArea, req.PaymentMethod, q.promo),
	}, nil
}
