package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolveExactAndAlias(t *testing.T) {
	cat, err := NewCatalog(testCatalogData())
	require.NoError(t, err)

	t.Run("canonical exact", func(t *testing.T) {
		res := cat.Resolve("  Mango ")
		assert.True(t, res.Known)
		assert.Equal(t, "Mango", res.CanonicalName)
		assert.Equal(t, CategoryFruitSweet, res.Category)
	})

	t.Run("alias", func(t *testing.T) {
		res := cat.Resolve("Apple")
		assert.True(t, res.Known)
		assert.Equal(t, "Apples", res.CanonicalName)
		assert.Equal(t, CategoryFruitSubacid, res.Category)
	})

	t.Run("disallowed sentinel", func(t *testing.T) {
		res := cat.Resolve("Apple Cider Vinegar")
		assert.False(t, res.Known)
		assert.True(t, res.Disallowed)
		assert.Empty(t, res.CanonicalName)
	})

	t.Run("unknown", func(t *testing.T) {
		res := cat.Resolve("Ketchup")
		assert.False(t, res.Known)
		assert.False(t, res.Disallowed)
	})

	t.Run("empty input", func(t *testing.T) {
		res := cat.Resolve("   ")
		assert.False(t, res.Known)
		assert.False(t, res.Disallowed)
		assert.Empty(t, res.Normalized)
	})
}

func TestResolveContains(t *testing.T) {
	cat, err := NewCatalog(testCatalogData())
	require.NoError(t, err)

	t.Run("modifier prefix", func(t *testing.T) {
		res := cat.Resolve("Cooked Quinoa")
		assert.True(t, res.Known)
		assert.Equal(t, "Quinoa", res.CanonicalName)
	})

	t.Run("longest match wins", func(t *testing.T) {
		res := cat.Resolve("frozen wild blueberries pack")
		assert.True(t, res.Known)
		assert.Equal(t, "Wild Blueberries", res.CanonicalName)
	})

	t.Run("whole token only", func(t *testing.T) {
		// "mangosteen" 含 "mango" 子字串但非完整詞彙
		res := cat.Resolve("mangosteen")
		assert.False(t, res.Known)
	})
}

func TestResolveTieBreakDeclarationOrder(t *testing.T) {
	data := CatalogData{
		Version: "tie-1",
		Groups: []CategoryGroup{
			{Category: CategoryVegetable, Items: []string{"Green Peas"}},
			{Category: CategoryLeafyGreen, Items: []string{"Green Kale"}},
		},
	}
	cat, err := NewCatalog(data)
	require.NoError(t, err)

	// 兩個標準名長度相同且都整詞出現，宣告較早者勝出
	res := cat.Resolve("green peas with green kale")
	require.True(t, res.Known)
	assert.Equal(t, "Green Peas", res.CanonicalName)
}

func TestResolveDeterministic(t *testing.T) {
	cat, err := NewCatalog(testCatalogData())
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		first := cat.Resolve(input)
		second := cat.Resolve(input)
		assert.Equal(t, first, second)
	})
}
