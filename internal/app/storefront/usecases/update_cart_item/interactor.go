package update_cart_item

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// Request contains the line and its new quantity.
type Request struct {
	SessionID string
	ItemID    string
	Quantity  int
}

// Interactor handles the update cart item use case.
type Interactor struct {
	carts contracts.CartRepository
}

// NewInteractor creates a new update cart item interactor.
func NewInteractor(carts contracts.CartRepository) *Interactor {
	return &Interactor{carts: carts}
}

// Execute sets the quantity, clamped to the line's stock ceiling.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Cart, error) {
	cart, err := i.carts.Load(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if err := cart.UpdateQuantity(req.ItemID, req.Quantity); err != nil {
		return nil, err
	}

	if err := i.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}
