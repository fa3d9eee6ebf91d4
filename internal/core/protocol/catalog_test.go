package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogData() CatalogData {
	return CatalogData{
		Version: "test-1",
		Groups: []CategoryGroup{
			{Category: CategoryMelon, Items: []string{"Cantaloupe"}},
			{Category: CategoryFruitSweet, Items: []string{"Mango"}},
			{Category: CategoryFruitSubacid, Items: []string{"Apples", "Blueberries", "Wild Blueberries"}},
			{Category: CategoryFruitAcid, Items: []string{"Lemon"}},
			{Category: CategoryComplexCarb, Items: []string{"Quinoa"}},
		},
		Aliases: map[string]string{
			"apple": "Apples",
		},
		Disallowed: []string{"apple cider vinegar"},
	}
}

func TestNewCatalogValidation(t *testing.T) {
	t.Run("missing version", func(t *testing.T) {
		data := testCatalogData()
		data.Version = ""
		_, err := NewCatalog(data)
		assert.Error(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		data := testCatalogData()
		data.Groups = append(data.Groups, CategoryGroup{Category: "dessert", Items: []string{"Cake"}})
		_, err := NewCatalog(data)
		assert.Error(t, err)
	})

	t.Run("duplicate item", func(t *testing.T) {
		data := testCatalogData()
		data.Groups = append(data.Groups, CategoryGroup{Category: CategoryVegetable, Items: []string{"mango"}})
		_, err := NewCatalog(data)
		assert.Error(t, err)
	})

	t.Run("item normalizes to empty", func(t *testing.T) {
		data := testCatalogData()
		data.Groups = append(data.Groups, CategoryGroup{Category: CategoryVegetable, Items: []string{"(!)"}})
		_, err := NewCatalog(data)
		assert.Error(t, err)
	})

	t.Run("alias to unknown canonical", func(t *testing.T) {
		data := testCatalogData()
		data.Aliases["ghost"] = "Dragonfruit"
		_, err := NewCatalog(data)
		assert.Error(t, err)
	})
}

func TestCatalogItemsByCategoryReturnsCopy(t *testing.T) {
	cat, err := NewCatalog(testCatalogData())
	require.NoError(t, err)

	items := cat.ItemsByCategory(CategoryFruitSubacid)
	require.Equal(t, []string{"Apples", "Blueberries", "Wild Blueberries"}, items)

	items[0] = "mutated"
	assert.Equal(t, []string{"Apples", "Blueberries", "Wild Blueberries"}, cat.ItemsByCategory(CategoryFruitSubacid))
}

func TestCatalogFruitGroups(t *testing.T) {
	cat, err := NewCatalog(testCatalogData())
	require.NoError(t, err)

	assert.True(t, cat.InFruitGroup("cantaloupe", GroupMelon))
	assert.True(t, cat.InFruitGroup("mango", GroupSweet))
	assert.True(t, cat.InFruitGroup("apples", GroupSubacid))
	assert.True(t, cat.InFruitGroup("lemon", GroupAcid))
	assert.False(t, cat.InFruitGroup("quinoa", GroupSweet))

	g, ok := cat.FruitGroupOf("wild blueberries")
	require.True(t, ok)
	assert.Equal(t, GroupSubacid, g)

	_, ok = cat.FruitGroupOf("quinoa")
	assert.False(t, ok)
}
