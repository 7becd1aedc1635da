package contracts

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// CartRepository persists per-session carts. Load returns an empty cart for
// an unknown session. Save fails with domain.ErrConcurrentModification when
// the cart changed since it was loaded.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
}

// WishlistRepository persists per-session wishlists with the same
// load/save contract as CartRepository.
type WishlistRepository interface {
	Load(ctx context.Context, sessionID string) (*domain.Wishlist, error)
	Save(ctx context.Context, wishlist *domain.Wishlist) error
}
