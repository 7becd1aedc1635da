//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/storefront/repo"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/tests/testutil"
)

func TestSpannerWishlistRepo_ToggleRoundTrip(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	wishlists := repo.NewSpannerWishlistRepo(client, committer.NewCommitter(client))
	sessionID := testutil.SessionID()
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	w, err := wishlists.Load(ctx, sessionID)
	require.NoError(t, err)

	older, newer := testutil.WishlistItem(800, base), testutil.WishlistItem(1200, base.Add(time.Minute))
	added, err := w.Toggle(newer, false, 3)
	require.NoError(t, err)
	require.True(t, added)
	added, err = w.Toggle(older, false, 3)
	require.NoError(t, err)
	require.True(t, added)
	require.NoError(t, wishlists.Save(ctx, w))

	loaded, err := wishlists.Load(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, older.ID, loaded.Items[0].ID, "ordered by added time")
	assert.True(t, loaded.Items[1].Price.Equals(newer.Price))

	removed, err := loaded.Toggle(older, false, 3)
	require.NoError(t, err)
	require.False(t, removed)
	require.NoError(t, wishlists.Save(ctx, loaded))

	final, err := wishlists.Load(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, final.Items, 1)
	assert.Equal(t, newer.ID, final.Items[0].ID)
}
