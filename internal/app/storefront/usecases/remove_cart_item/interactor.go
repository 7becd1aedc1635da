package remove_cart_item

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// Request identifies the line to remove. The preorder item is removed by
// its id as well.
type Request struct {
	SessionID string
	ItemID    string
}

// Interactor handles the remove cart item use case.
type Interactor struct {
	carts contracts.CartRepository
}

// NewInteractor creates a new remove cart item interactor.
func NewInteractor(carts contracts.CartRepository) *Interactor {
	return &Interactor{carts: carts}
}

// Execute removes the line and returns the updated cart.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Cart, error) {
	cart, err := i.carts.Load(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if err := cart.Remove(req.ItemID); err != nil {
		return nil, err
	}

	if err := i.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}
