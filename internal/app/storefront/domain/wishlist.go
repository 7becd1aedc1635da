package domain

import "time"

// WishlistItem is a saved variant. ID is the variant id.
type WishlistItem struct {
	ID             string    `json:"_id"`
	ProductID      string    `json:"productId"`
	Name           string    `json:"name"`
	Price          Money     `json:"price"`
	SellingPrice   Money     `json:"sellingPrice"`
	Image          string    `json:"image,omitempty"`
	VariantValues  []string  `json:"variantValues,omitempty"`
	DiscountActive bool      `json:"isDiscountActive"`
	AddedAt        time.Time `json:"addedAt"`
}

// Wishlist is the per-session list of saved variants.
type Wishlist struct {
	SessionID string         `json:"sessionId"`
	Items     []WishlistItem `json:"items"`
	Version   int64          `json:"version"`
}

// NewWishlist creates an empty wishlist for a session.
func NewWishlist(sessionID string) *Wishlist {
	return &Wishlist{SessionID: sessionID, Items: []WishlistItem{}}
}

// Contains reports whether the variant id is saved.
func (w *Wishlist) Contains(id string) bool {
	for _, item := range w.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Toggle removes item when it is saved and adds it otherwise. Preorder
// products are never saved and out-of-stock variants cannot be added.
func (w *Wishlist) Toggle(item WishlistItem, preorder bool, stock int) (added bool, err error) {
	if preorder {
		return false, ErrPreorderNotWishlistable
	}
	for idx := range w.Items {
		if w.Items[idx].ID == item.ID {
			w.Items = append(w.Items[:idx], w.Items[idx+1:]...)
			return false, nil
		}
	}
	if stock <= 0 {
		return false, ErrOutOfStock
	}
	w.Items = append(w.Items, item)
	return true, nil
}
