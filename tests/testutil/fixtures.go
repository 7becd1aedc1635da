package testutil

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) *clock.MockClock {
	return clock.NewMockClock(t)
}

// CartItem builds a random in-stock cart line priced at price.
func CartItem(price int64) domain.CartItem {
	return domain.CartItem{
		ID:            gofakeit.UUID(),
		ProductID:     gofakeit.UUID(),
		Name:          gofakeit.ProductName(),
		Price:         domain.NewMoney(price),
		SellingPrice:  domain.NewMoney(price),
		Image:         gofakeit.URL(),
		Quantity:      gofakeit.IntRange(1, 3),
		MaxStock:      5,
		Currency:      "BDT",
		VariantValues: []string{gofakeit.RandomString([]string{"S", "M", "L", "XL"})},
	}
}

// WishlistItem builds a random wishlist entry.
func WishlistItem(price int64, at time.Time) domain.WishlistItem {
	return domain.WishlistItem{
		ID:           gofakeit.UUID(),
		ProductID:    gofakeit.UUID(),
		Name:         gofakeit.ProductName(),
		Price:        domain.NewMoney(price),
		SellingPrice: domain.NewMoney(price),
		AddedAt:      at,
	}
}

// SessionID returns a fresh session id.
func SessionID() string {
	return "it-" + gofakeit.UUID()
}
