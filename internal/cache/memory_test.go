package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

type payload struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewMemoryCache(clk)

	require.NoError(t, c.Set(ctx, Key("facets", "all"), payload{Name: "x", Items: []string{"a"}}, time.Minute))

	var got payload
	found, err := c.Get(ctx, Key("facets", "all"), &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"a"}, got.Items)

	clk.Advance(time.Minute)
	found, err = c.Get(ctx, Key("facets", "all"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_ValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(clock.NewRealClock())

	in := payload{Items: []string{"a"}}
	require.NoError(t, c.Set(ctx, "k", in, 0))
	in.Items[0] = "mutated"

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a", got.Items[0])
}

func TestMemoryCache_MissAndDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(clock.NewRealClock())

	var got payload
	found, err := c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", payload{Name: "n"}, time.Hour))
	require.NoError(t, c.Delete(ctx, "k"))
	found, _ = c.Get(ctx, "k", &got)
	assert.False(t, found)
}

func TestMemoryCache_DecodeError(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(clock.NewRealClock())
	require.NoError(t, c.Set(ctx, "k", "a string", 0))

	var got payload
	_, err := c.Get(ctx, "k", &got)
	assert.Error(t, err)
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url://")
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "storefront:business", Key("business"))
}
