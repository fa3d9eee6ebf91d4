package protocol

// Classify 由食材分類推斷食譜餐別
// 嚴格依分類判斷，不做猜測；無法判斷時回傳 MealUnknown（不報錯），
// 後備策略由呼叫端決定。
//
// 規則依固定優先順序，先中先贏：
//  1. 有水果（含瓜類）且無複合碳水、無蛋白質、無午餐封鎖分類 → 早餐
//  2. 有複合碳水且無蛋白質、無午餐封鎖分類 → 午餐
//  3. 有蛋白質 → 晚餐
//  4. 其他 → unknown
//
// 規則 1 與 2 並非互斥，順序不可調換。
func (e *Engine) Classify(recipe Recipe) MealType {
	var hasFruit, hasComplexCarb, hasProtein, hasLunchBlocked, any bool

	for _, line := range recipe.Ingredients {
		res := e.catalog.Resolve(line.DisplayText())
		if !res.Known {
			// 無法解析的行直接忽略
			continue
		}
		any = true

		switch {
		case res.Category.IsFruit():
			hasFruit = true
		case res.Category == CategoryComplexCarb:
			hasComplexCarb = true
		case res.Category.IsProtein():
			hasProtein = true
		}
		switch res.Category {
		case CategoryOil, CategoryVinegar, CategoryCondiment, CategorySweetener:
			hasLunchBlocked = true
		}
	}

	if !any {
		return MealUnknown
	}

	if hasFruit && !hasComplexCarb && !hasProtein && !hasLunchBlocked {
		return MealBreakfast
	}
	if hasComplexCarb && !hasProtein && !hasLunchBlocked {
		return MealLunch
	}
	if hasProtein {
		return MealDinner
	}
	return MealUnknown
}
