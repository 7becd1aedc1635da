package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_Toggle(t *testing.T) {
	item := WishlistItem{ID: "v1", ProductID: "p1", Name: "Lamp", Price: NewMoney(700), AddedAt: testNow}

	t.Run("second toggle removes", func(t *testing.T) {
		w := NewWishlist("s1")

		added, err := w.Toggle(item, false, 3)
		require.NoError(t, err)
		assert.True(t, added)
		assert.True(t, w.Contains("v1"))

		added, err = w.Toggle(item, false, 3)
		require.NoError(t, err)
		assert.False(t, added)
		assert.False(t, w.Contains("v1"))
	})

	t.Run("preorder products are rejected", func(t *testing.T) {
		w := NewWishlist("s1")
		_, err := w.Toggle(item, true, 3)
		assert.ErrorIs(t, err, ErrPreorderNotWishlistable)
		assert.Empty(t, w.Items)
	})

	t.Run("out of stock variant is rejected", func(t *testing.T) {
		w := NewWishlist("s1")
		_, err := w.Toggle(item, false, 0)
		assert.ErrorIs(t, err, ErrOutOfStock)
	})

	t.Run("saved item can be removed after it sold out", func(t *testing.T) {
		w := NewWishlist("s1")
		_, err := w.Toggle(item, false, 1)
		require.NoError(t, err)

		added, err := w.Toggle(item, false, 0)
		require.NoError(t, err)
		assert.False(t, added)
	})
}
