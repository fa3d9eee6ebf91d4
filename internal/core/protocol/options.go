package protocol

// ComputeOptions 計算目前仍可選的食材選項
// 給定餐別與已選項目，從該餐別允許分類的完整白名單出發逐步收窄，
// 供 UI 在使用者組餐時即時停用不再合法的選項。
//
// 收窄規則：
//   - 午餐：已選複合碳水達上限（預設 1）時，該分類僅剩已選項目可用
//   - 晚餐：已選蛋白質（豆類 ∪ 堅果種子）達上限（預設 1）時，
//     兩個蛋白質分類都僅剩已選項目可用
//   - 早餐：已選瓜類 → 瓜類分類僅剩瓜類、甜/亞酸/酸全部清空（瓜類獨食）；
//     否則已選甜味 → 清空酸味分類、已選酸味 → 清空甜味分類
//
// 最後將餐別封鎖分類自結果整個刪除（深度防禦）。
// 回傳不可變快照，不改動任何靜態表。
func (e *Engine) ComputeOptions(meal MealType, chosenItems []string) Availability {
	chosen := make([]string, 0, len(chosenItems))
	chosenSet := make(map[string]bool, len(chosenItems))
	for _, item := range chosenItems {
		// 盡力解析：認得就用標準名，不認得就退回正規化文字
		res := e.catalog.Resolve(item)
		norm := res.Normalized
		if res.Known {
			norm = e.catalog.Normalize(res.CanonicalName)
		}
		if norm == "" {
			continue
		}
		chosen = append(chosen, norm)
		chosenSet[norm] = true
	}

	avail := Availability{
		MealType:          meal,
		AllowedCategories: e.policy.AllowedCategories(meal),
		BlockedCategories: e.policy.BlockedCategories(meal),
		Items:             make(map[Category][]string),
		ChosenResolved:    chosen,
	}
	for _, cat := range avail.AllowedCategories {
		avail.Items[cat] = e.catalog.ItemsByCategory(cat)
	}

	constraints := e.policy.Constraints(meal)

	switch meal {
	case MealLunch:
		max := constraints.MaxComplexCarbChoices
		if max <= 0 {
			max = 1
		}
		if e.countChosenIn(chosen, CategoryComplexCarb) >= max {
			avail.Items[CategoryComplexCarb] = e.filterByChosen(avail.Items[CategoryComplexCarb], chosenSet)
		}

	case MealDinner:
		max := constraints.MaxProteinChoices
		if max <= 0 {
			max = 1
		}
		proteins := e.countChosenIn(chosen, CategoryBeanLegume) + e.countChosenIn(chosen, CategoryNutSeed)
		if proteins >= max {
			avail.Items[CategoryBeanLegume] = e.filterByChosen(avail.Items[CategoryBeanLegume], chosenSet)
			avail.Items[CategoryNutSeed] = e.filterByChosen(avail.Items[CategoryNutSeed], chosenSet)
		}

	case MealBreakfast:
		var choseMelon, choseSweet, choseAcid bool
		for _, norm := range chosen {
			choseMelon = choseMelon || e.catalog.InFruitGroup(norm, GroupMelon)
			choseSweet = choseSweet || e.catalog.InFruitGroup(norm, GroupSweet)
			choseAcid = choseAcid || e.catalog.InFruitGroup(norm, GroupAcid)
		}
		if choseMelon {
			avail.Items[CategoryMelon] = e.filterByGroup(avail.Items[CategoryMelon], GroupMelon)
			avail.Items[CategoryFruitSweet] = []string{}
			avail.Items[CategoryFruitSubacid] = []string{}
			avail.Items[CategoryFruitAcid] = []string{}
		} else {
			if choseSweet {
				avail.Items[CategoryFruitAcid] = []string{}
			}
			if choseAcid {
				avail.Items[CategoryFruitSweet] = []string{}
			}
		}
	}

	for _, cat := range avail.BlockedCategories {
		delete(avail.Items, cat)
	}

	return avail
}

// countChosenIn 已選項目中屬於指定分類的數量
func (e *Engine) countChosenIn(chosen []string, cat Category) int {
	count := 0
	for _, norm := range chosen {
		if entry, ok := e.catalog.lookupExact(norm); ok && entry.category == cat {
			count++
		}
	}
	return count
}

// filterByChosen 保留已選的標準名稱，維持目錄宣告順序
func (e *Engine) filterByChosen(items []string, chosenSet map[string]bool) []string {
	out := make([]string, 0, len(items))
	for _, name := range items {
		if chosenSet[e.catalog.Normalize(name)] {
			out = append(out, name)
		}
	}
	return out
}

// filterByGroup 保留屬於指定水果群組的標準名稱
func (e *Engine) filterByGroup(items []string, g FruitGroup) []string {
	out := make([]string, 0, len(items))
	for _, name := range items {
		if e.catalog.InFruitGroup(e.catalog.Normalize(name), g) {
			out = append(out, name)
		}
	}
	return out
}
