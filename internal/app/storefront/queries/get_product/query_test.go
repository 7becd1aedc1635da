package get_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/storefront/catalog"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

type pages map[int][]domain.Product

func (p pages) ListProducts(_ context.Context, page, _ int, _ string) ([]domain.Product, error) {
	return p[page], nil
}

func TestQuery_Execute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	start, end := now.Add(-time.Hour), now.Add(time.Hour)

	jacket := domain.Product{
		ID:     "jacket",
		Name:   "Rain Jacket",
		Images: []string{"jacket.jpg"},
		Variants: []domain.Variant{
			{ID: "j-s", SellingPrice: domain.NewMoney(3000), Stock: 0, Values: []string{"S", "Blue"}},
			{ID: "j-m", SellingPrice: domain.NewMoney(3000), OfferPrice: domain.NewMoney(2400), DiscountStart: &start, DiscountEnd: &end, Stock: 2, Values: []string{"M", "Blue"}, Image: "jacket-m.jpg"},
		},
	}
	bare := domain.Product{ID: "bare", Name: "Gift Card"}

	// A one-product page size makes the second product live on page 2.
	feed := catalog.NewFeed(pages{1: {jacket}, 2: {bare}}, catalog.WithPageSize(1))
	t.Cleanup(feed.Close)
	_, err := feed.LoadMore(ctx)
	require.NoError(t, err)

	q := NewQuery(feed, clock.NewMockClock(now))

	t.Run("default variant is the first in stock", func(t *testing.T) {
		resp, err := q.Execute(ctx, &Request{ProductID: "jacket"})
		require.NoError(t, err)

		assert.Equal(t, "j-m", resp.Variant.ID)
		assert.Equal(t, "2400", resp.Price.String())
		assert.Equal(t, "3000", resp.SellingPrice.String())
		assert.True(t, resp.DiscountActive)
		assert.Equal(t, 20, resp.DiscountPercent)
		assert.True(t, resp.InStock)
		assert.Equal(t, "jacket-m.jpg", resp.Image)
	})

	t.Run("selection by values", func(t *testing.T) {
		resp, err := q.Execute(ctx, &Request{ProductID: "jacket", VariantValues: []string{"S", "Blue"}})
		require.NoError(t, err)

		assert.Equal(t, "j-s", resp.Variant.ID)
		assert.False(t, resp.InStock)
		assert.Equal(t, "jacket.jpg", resp.Image)
	})

	t.Run("unknown combination", func(t *testing.T) {
		_, err := q.Execute(ctx, &Request{ProductID: "jacket", VariantValues: []string{"XL"}})
		assert.ErrorIs(t, err, domain.ErrVariantNotFound)
	})

	t.Run("product on a later page is loaded", func(t *testing.T) {
		resp, err := q.Execute(ctx, &Request{ProductID: "bare"})
		require.NoError(t, err)
		assert.Equal(t, "Gift Card", resp.Product.Name)
		assert.True(t, resp.Price.IsZero())
		assert.False(t, resp.InStock)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := q.Execute(ctx, &Request{ProductID: "nope"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
