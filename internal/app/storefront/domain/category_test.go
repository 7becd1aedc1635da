package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeFixture() CategoryTree {
	return CategoryTree{
		{ID: "men", Name: "Men", Children: []Category{
			{ID: "shirts", Name: "Shirts", Children: []Category{{ID: "formal", Name: "Formal"}}},
			{ID: "pants", Name: "Pants"},
		}},
		{ID: "gadgets", Name: "Gadgets"},
	}
}

func TestCategoryTree_Scope(t *testing.T) {
	tree := treeFixture()

	t.Run("self and all descendants", func(t *testing.T) {
		scope, err := tree.Scope("men")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"men", "shirts", "formal", "pants"}, scope.IDs())
	})

	t.Run("nested lookup ignores case", func(t *testing.T) {
		scope, err := tree.Scope("SHIRTS")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"shirts", "formal"}, scope.IDs())
	})

	t.Run("main category uses direct children only", func(t *testing.T) {
		scope, err := tree.ChildScope("men")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"shirts", "pants"}, scope.IDs())
		assert.False(t, scope.Has("formal"))
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := tree.Scope("toys")
		assert.ErrorIs(t, err, ErrCategoryNotFound)
		_, err = tree.ChildScope("toys")
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestScope_Zero(t *testing.T) {
	var s Scope
	assert.True(t, s.Unscoped())
	assert.True(t, s.Has("anything"))
	assert.False(t, NewScope().Unscoped())
}
