package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// MemoryCartRepo keeps carts in process. Stored carts are copies, so a
// caller's cart only changes the store through Save.
type MemoryCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

// NewMemoryCartRepo creates an empty in-memory cart store.
func NewMemoryCartRepo() contracts.CartRepository {
	return &MemoryCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *MemoryCartRepo) Load(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.carts[sessionID]; ok {
		return cloneCart(c), nil
	}
	return domain.NewCart(sessionID), nil
}

func (r *MemoryCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if c, ok := r.carts[cart.SessionID]; ok {
		current = c.Version
	}
	if current != cart.Version {
		return domain.ErrConcurrentModification
	}

	cart.Version++
	r.carts[cart.SessionID] = cloneCart(cart)
	return nil
}

func cloneCart(c *domain.Cart) *domain.Cart {
	out := *c
	out.Items = make([]domain.CartItem, len(c.Items))
	for i, item := range c.Items {
		out.Items[i] = cloneCartItem(item)
	}
	if c.Preorder != nil {
		p := cloneCartItem(*c.Preorder)
		out.Preorder = &p
	}
	return &out
}

func cloneCartItem(item domain.CartItem) domain.CartItem {
	item.VariantValues = slices.Clone(item.VariantValues)
	return item
}

// MemoryWishlistRepo keeps wishlists in process.
type MemoryWishlistRepo struct {
	mu        sync.Mutex
	wishlists map[string]*domain.Wishlist
}

// NewMemoryWishlistRepo creates an empty in-memory wishlist store.
func NewMemoryWishlistRepo() contracts.WishlistRepository {
	return &MemoryWishlistRepo{wishlists: make(map[string]*domain.Wishlist)}
}

func (r *MemoryWishlistRepo) Load(_ context.Context, sessionID string) (*domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.wishlists[sessionID]; ok {
		return cloneWishlist(w), nil
	}
	return domain.NewWishlist(sessionID), nil
}

func (r *MemoryWishlistRepo) Save(_ context.Context, wishlist *domain.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if w, ok := r.wishlists[wishlist.SessionID]; ok {
		current = w.Version
	}
	if current != wishlist.Version {
		return domain.ErrConcurrentModification
	}

	wishlist.Version++
	r.wishlists[wishlist.SessionID] = cloneWishlist(wishlist)
	return nil
}

func cloneWishlist(w *domain.Wishlist) *domain.Wishlist {
	out := *w
	out.Items = make([]domain.WishlistItem, len(w.Items))
	for i, item := range w.Items {
		item.VariantValues = slices.Clone(item.VariantValues)
		out.Items[i] = item
	}
	return &out
}
