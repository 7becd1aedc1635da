package get_wishlist

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// Query handles the get wishlist query use case.
type Query struct {
	wishlists contracts.WishlistRepository
}

// NewQuery creates a new get wishlist query.
func NewQuery(wishlists contracts.WishlistRepository) *Query {
	return &Query{wishlists: wishlists}
}

// Execute returns the session's wishlist, empty when none was saved.
func (q *Query) Execute(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	w, err := q.wishlists.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	return w, nil
}
