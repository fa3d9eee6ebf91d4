package catalog

import (
	"testing"

	"meal-protocol-api/internal/core/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultEngine(t *testing.T) *protocol.Engine {
	t.Helper()
	engine, err := BuildEngine(Bundle{Catalog: DefaultData(), Policy: DefaultPolicy()})
	require.NoError(t, err)
	return engine
}

func TestDefaultDataBuilds(t *testing.T) {
	engine := defaultEngine(t)
	assert.Equal(t, DefaultVersion, engine.Catalog().Version())
	assert.NotEmpty(t, engine.Catalog().AllowedIndex())
}

func TestDefaultAliases(t *testing.T) {
	engine := defaultEngine(t)

	cases := map[string]string{
		"apple":       "Apples",
		"pomegranate": "Pomagranate",
		"scallion":    "Green Onion",
		"dates":       "Date fruit",
		"garbanzo":    "Chickpeas",
		"cucumber":    "Cucumbers",
	}
	for alias, canonical := range cases {
		res := engine.Resolve(alias)
		require.True(t, res.Known, alias)
		assert.Equal(t, canonical, res.CanonicalName, alias)
	}
}

func TestDefaultDisallowed(t *testing.T) {
	engine := defaultEngine(t)

	res := engine.Resolve("Apple Cider Vinegar")
	assert.False(t, res.Known)
	assert.True(t, res.Disallowed)

	// 其他醋類照常可解析
	res = engine.Resolve("Balsamic Vinegar")
	assert.True(t, res.Known)
	assert.Equal(t, protocol.CategoryVinegar, res.Category)
}

func TestDefaultPolicyShape(t *testing.T) {
	engine := defaultEngine(t)
	policy := engine.Policy()

	assert.True(t, policy.IsAllowed(protocol.CategoryMelon, protocol.MealBreakfast))
	assert.False(t, policy.IsAllowed(protocol.CategoryComplexCarb, protocol.MealBreakfast))

	assert.True(t, policy.IsAllowed(protocol.CategoryComplexCarb, protocol.MealLunch))
	assert.False(t, policy.IsAllowed(protocol.CategoryOil, protocol.MealLunch))

	assert.True(t, policy.IsAllowed(protocol.CategoryBeanLegume, protocol.MealDinner))
	assert.False(t, policy.IsAllowed(protocol.CategoryComplexCarb, protocol.MealDinner))

	assert.Equal(t, 1, policy.Constraints(protocol.MealLunch).MaxComplexCarbChoices)
	assert.Equal(t, 1, policy.Constraints(protocol.MealDinner).MaxProteinChoices)
	assert.True(t, policy.Constraints(protocol.MealBreakfast).SingleMelonOnly)
}
