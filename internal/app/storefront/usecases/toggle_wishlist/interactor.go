package toggle_wishlist

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/storefront/catalog"
	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request identifies the variant to save or unsave.
type Request struct {
	SessionID     string
	ProductID     string
	VariantID     string
	VariantValues []string
}

// Response is the wishlist after the toggle.
type Response struct {
	Added    bool             `json:"added"`
	Wishlist *domain.Wishlist `json:"wishlist"`
}

// Interactor handles the toggle wishlist use case.
type Interactor struct {
	feed      contracts.ProductFeed
	wishlists contracts.WishlistRepository
	clock     clock.Clock
}

// NewInteractor creates a new toggle wishlist interactor.
func NewInteractor(feed contracts.ProductFeed, wishlists contracts.WishlistRepository, clock clock.Clock) *Interactor {
	return &Interactor{
		feed:      feed,
		wishlists: wishlists,
		clock:     clock,
	}
}

// Execute adds the variant when it is not saved and removes it otherwise.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	product, err := catalog.FindProduct(ctx, i.feed, req.ProductID)
	if err != nil {
		return nil, err
	}
	variant, err := catalog.ResolveVariant(product, req.VariantID, req.VariantValues)
	if err != nil {
		return nil, err
	}

	w, err := i.wishlists.Load(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	now := i.clock.Now()
	added, err := w.Toggle(domain.WishlistItem{
		ID:             variant.ID,
		ProductID:      product.ID,
		Name:           product.Name,
		Price:          variant.EffectivePrice(now),
		SellingPrice:   variant.SellingPrice,
		Image:          product.Image(variant),
		VariantValues:  variant.Values,
		DiscountActive: variant.DiscountActive(now),
		AddedAt:        now,
	}, product.PreOrder(variant), variant.Stock)
	if err != nil {
		return nil, err
	}

	if err := i.wishlists.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}
	return &Response{Added: added, Wishlist: w}, nil
}
