package catalog

import (
	"meal-protocol-api/internal/core/protocol"
)

// DefaultVersion 內建目錄版本標記
const DefaultVersion = "2025-12-22"

// DefaultData 內建的允許食材目錄
// 嚴格白名單：不在表中的食材一律視為不認識。
// 群組與項目的宣告順序即 contains 比對平手時的固定優先順序，調整順序會改變解析結果。
func DefaultData() protocol.CatalogData {
	return protocol.CatalogData{
		Version:    DefaultVersion,
		KeepDigits: false,
		Groups: []protocol.CategoryGroup{
			{Category: protocol.CategoryMelon, Items: []string{
				"Cantaloupe",
				"Honeydew Melon",
			}},
			{Category: protocol.CategoryFruitSweet, Items: []string{
				"Date fruit",
				"Figs",
				"Grapes",
				"Mango",
			}},
			{Category: protocol.CategoryFruitSubacid, Items: []string{
				"Apples",
				"Apricots",
				"Blueberries",
				"Wild Blueberries",
				"Papaya",
			}},
			{Category: protocol.CategoryFruitAcid, Items: []string{
				"Lemon",
				"Lime",
				"Orange",
				"Pineapple",
				"Pomagranate", // 原始拼法照舊，別名表補上正確拼法
			}},
			{Category: protocol.CategoryLeafyGreen, Items: []string{
				"Iceberg Lettuce",
				"Microgreens",
				"Romaine Lettuce",
				"Spinach",
				"Chard",
			}},
			{Category: protocol.CategoryVegetable, Items: []string{
				"Asparagus",
				"Broccoli",
				"Carrot",
				"Cauliflower",
				"Celery",
				"Green Beans",
				"Green Cabbage",
				"Green Onion",
				"Green Peas",
				"Kabocha Squash",
				"Leek",
				"Napa Cabbage",
				"Red Cabbage",
				"Red Onion",
				"Snow Peas",
				"Sugar Snap",
				"Summer Squash",
				"Zucchini",
				"Cucumbers",
				"Avocado",
			}},
			{Category: protocol.CategorySprout, Items: []string{
				"Broccoli Sprouts",
				"Clover Sprouts",
				"Radish Sprouts",
			}},
			{Category: protocol.CategorySeaweed, Items: []string{
				"Dulse",
				"Kombu",
				"Nori",
			}},
			{Category: protocol.CategoryComplexCarb, Items: []string{
				"Quinoa",
				"Sweet Potato",
			}},
			{Category: protocol.CategoryBeanLegume, Items: []string{
				"Azuki Beans",
				"Black Bean",
				"Chickpeas",
				"Lentils",
				"Pinto Beans",
			}},
			{Category: protocol.CategoryNutSeed, Items: []string{
				"Hemp Seeds",
				"Walnuts",
				"Chia",
				"Pumpkin Seeds",
			}},
			{Category: protocol.CategoryOil, Items: []string{
				"Coconut Oil",
				"MCT Oil",
			}},
			{Category: protocol.CategoryVinegar, Items: []string{
				"Balsamic Vinegar",
				"Red Wine Vinegar",
				"White Wine Vinegar",
			}},
			{Category: protocol.CategoryCondiment, Items: []string{
				"Coconut Amino",
				"Dijon Mustard",
				"Honey Mustard",
				"Yellow Mustard",
			}},
			{Category: protocol.CategorySweetener, Items: []string{
				"Honey",
			}},
			{Category: protocol.CategoryHerbSpice, Items: []string{
				"Allspice",
				"Basil",
				"Bay Leaf",
				"Brown Mustard Seeds",
				"Cilantro",
				"Cinnamon",
				"Clove",
				"Coriander",
				"Cumin",
				"Fennel",
				"Garlic",
				"Lemon Grass",
				"Mustard Seeds",
				"Oregano",
				"Parsley",
				"Sea Salt",
				"Nettle",
				"Dandelion",
				"Horsetail",
			}},
		},
		// 別名：拼法、單複數、常見俗名 → 標準名
		Aliases: map[string]string{
			"pomegranate":       "Pomagranate",
			"pomegranate seeds": "Pomagranate",
			"blueberry":         "Blueberries",
			"apple":             "Apples",
			"apricot":           "Apricots",
			"fig":               "Figs",
			"grape":             "Grapes",
			"honeydew":          "Honeydew Melon",
			"cantaloupe melon":  "Cantaloupe",
			"date":              "Date fruit",
			"dates":             "Date fruit",
			"garbanzo":          "Chickpeas",
			"garbanzo beans":    "Chickpeas",
			"black beans":       "Black Bean",
			"pinto bean":        "Pinto Beans",
			"lentil":            "Lentils",
			"azuki":             "Azuki Beans",
			"scallion":          "Green Onion",
			"scallions":         "Green Onion",
			"spring onion":      "Green Onion",
			"spring onions":     "Green Onion",
			"iceberg":           "Iceberg Lettuce",
			"romaine":           "Romaine Lettuce",
			"napa":              "Napa Cabbage",
			"zuke":              "Zucchini",
			"cucumber":          "Cucumbers",
			"lemongrass":        "Lemon Grass",
			"white wine vin":    "White Wine Vinegar",
			"red wine vin":      "Red Wine Vinegar",
			"brown mustard seed": "Brown Mustard Seeds",
			"mustard seed":       "Mustard Seeds",
			"kombu seaweed":      "Kombu",
			"pumpkin seed":       "Pumpkin Seeds",
			"hemp seed":          "Hemp Seeds",
			"chia seed":          "Chia",
			"chia seeds":         "Chia",
			"walnut":             "Walnuts",
		},
		// 明確排除：認得但規範刻意不收錄，移除原因須與「不認識」區分
		Disallowed: []string{
			"apple cider vinegar",
		},
	}
}

// DefaultPolicy 內建餐別政策表
// 每個分類在每一餐都必須明確列入 allowed 或 blocked，缺漏會在建構時報錯。
func DefaultPolicy() []protocol.PolicyRecord {
	return []protocol.PolicyRecord{
		{
			// 早餐：只吃水果，配對規則另行把關
			Meal: protocol.MealBreakfast,
			Allowed: []protocol.Category{
				protocol.CategoryMelon,
				protocol.CategoryFruitSweet,
				protocol.CategoryFruitSubacid,
				protocol.CategoryFruitAcid,
			},
			Blocked: []protocol.Category{
				protocol.CategoryLeafyGreen,
				protocol.CategoryVegetable,
				protocol.CategorySprout,
				protocol.CategorySeaweed,
				protocol.CategoryComplexCarb,
				protocol.CategoryBeanLegume,
				protocol.CategoryNutSeed,
				protocol.CategoryOil,
				protocol.CategoryVinegar,
				protocol.CategoryCondiment,
				protocol.CategorySweetener,
				protocol.CategoryHerbSpice,
			},
			Constraints: protocol.SelectionConstraints{
				SingleMelonOnly: true,
			},
		},
		{
			// 午餐：複合碳水 + 綠葉菜/蔬菜/芽菜/海藻/香草
			Meal: protocol.MealLunch,
			Allowed: []protocol.Category{
				protocol.CategoryComplexCarb,
				protocol.CategoryLeafyGreen,
				protocol.CategoryVegetable,
				protocol.CategorySprout,
				protocol.CategorySeaweed,
				protocol.CategoryHerbSpice,
			},
			Blocked: []protocol.Category{
				protocol.CategoryMelon,
				protocol.CategoryFruitSweet,
				protocol.CategoryFruitSubacid,
				protocol.CategoryFruitAcid,
				protocol.CategoryBeanLegume,
				protocol.CategoryNutSeed,
				protocol.CategoryOil,
				protocol.CategoryVinegar,
				protocol.CategoryCondiment,
				protocol.CategorySweetener,
			},
			Constraints: protocol.SelectionConstraints{
				MaxComplexCarbChoices: 1,
			},
		},
		{
			// 晚餐：蛋白質為主，可佐油/醋/調味料
			Meal: protocol.MealDinner,
			Allowed: []protocol.Category{
				protocol.CategoryBeanLegume,
				protocol.CategoryNutSeed,
				protocol.CategoryLeafyGreen,
				protocol.CategoryVegetable,
				protocol.CategorySprout,
				protocol.CategorySeaweed,
				protocol.CategoryHerbSpice,
				protocol.CategoryOil,
				protocol.CategoryVinegar,
				protocol.CategoryCondiment,
				protocol.CategorySweetener,
			},
			Blocked: []protocol.Category{
				protocol.CategoryMelon,
				protocol.CategoryFruitSweet,
				protocol.CategoryFruitSubacid,
				protocol.CategoryFruitAcid,
				protocol.CategoryComplexCarb,
			},
			Constraints: protocol.SelectionConstraints{
				MaxProteinChoices: 1,
			},
		},
	}
}
