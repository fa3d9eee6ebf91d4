package protocol

import "fmt"

// stageResult 清理管線單一階段的不可變快照
type stageResult struct {
	kept    []IngredientLine
	removed []RemovalRecord
}

// Sanitize 嚴格清理：自動移除不合規食材並回傳移除摘要
// 兩階段管線：第一階段逐項過濾（解析 + 餐別政策），第二階段為早餐的
// 跨項配對過濾；兩階段的移除紀錄依發現順序串接。
// 輸入食譜不被改動，倖存食材保持原輸入的相對順序。
func (e *Engine) Sanitize(recipe Recipe, meal MealType) SanitizationResult {
	stage1 := e.filterPerItem(recipe.Ingredients, meal)

	final := stage1
	if meal == MealBreakfast {
		stage2 := e.filterPairing(stage1.kept)
		final = stageResult{
			kept:    stage2.kept,
			removed: append(append([]RemovalRecord(nil), stage1.removed...), stage2.removed...),
		}
	}

	result := SanitizationResult{
		MealType: meal,
		CleanedRecipe: Recipe{
			ID:          recipe.ID,
			Title:       recipe.Title,
			Ingredients: final.kept,
		},
		Removed: final.removed,
	}
	for _, rec := range final.removed {
		result.RemovedLines = append(result.RemovedLines, rec.DisplayLine())
	}
	return result
}

// SanitizeAuto 先推斷餐別再清理
// 無法分類時回傳餐別 unknown 與原樣副本，不做任何移除；
// 後續如何處置（當晚餐清理或整筆擋下）由呼叫端決定。
func (e *Engine) SanitizeAuto(recipe Recipe) SanitizationResult {
	meal := e.Classify(recipe)
	if meal == MealUnknown {
		return SanitizationResult{
			MealType: MealUnknown,
			CleanedRecipe: Recipe{
				ID:          recipe.ID,
				Title:       recipe.Title,
				Ingredients: append([]IngredientLine(nil), recipe.Ingredients...),
			},
		}
	}
	return e.Sanitize(recipe, meal)
}

// filterPerItem 第一階段：逐項解析與餐別政策檢查
func (e *Engine) filterPerItem(lines []IngredientLine, meal MealType) stageResult {
	var out stageResult

	for _, line := range lines {
		text := line.DisplayText()
		res := e.catalog.Resolve(text)

		if res.Disallowed {
			out.removed = append(out.removed, RemovalRecord{
				OriginalText:  text,
				ReasonCode:    ReasonExplicitlyDisallowed,
				ReasonMessage: "Explicitly disallowed (intentionally excluded from the protocol).",
			})
			continue
		}
		if !res.Known {
			out.removed = append(out.removed, RemovalRecord{
				OriginalText:  text,
				ReasonCode:    ReasonUnknownIngredient,
				ReasonMessage: "Unknown ingredient (not in protocol allowed list).",
			})
			continue
		}

		if !e.policy.IsAllowed(res.Category, meal) {
			out.removed = append(out.removed, RemovalRecord{
				OriginalText:  text,
				ResolvedName:  res.CanonicalName,
				ReasonCode:    ReasonNotAllowedForMeal,
				ReasonMessage: fmt.Sprintf("Not allowed for %s (%s).", meal, res.Category),
			})
			continue
		}

		// 保留並標注解析結果，原始文字不改寫
		kept := line
		kept.ResolvedName = res.CanonicalName
		kept.Category = res.Category
		out.kept = append(out.kept, kept)
	}

	return out
}

// filterPairing 第二階段：早餐水果配對過濾
// 只消費第一階段的工作集；非水果項目一律保留。
func (e *Engine) filterPairing(lines []IngredientLine) stageResult {
	var fruits []string
	for _, line := range lines {
		if line.Category.IsFruit() {
			fruits = append(fruits, e.catalog.Normalize(line.ResolvedName))
		}
	}

	analysis := e.catalog.AnalyzePairing(fruits)
	if analysis.OK {
		return stageResult{kept: lines}
	}

	keep := e.catalog.pairingKeepSet(analysis)

	var out stageResult
	for _, line := range lines {
		if !line.Category.IsFruit() || keep[e.catalog.Normalize(line.ResolvedName)] {
			out.kept = append(out.kept, line)
			continue
		}
		out.removed = append(out.removed, RemovalRecord{
			OriginalText:  line.DisplayText(),
			ResolvedName:  line.ResolvedName,
			ReasonCode:    ReasonPairingViolation,
			ReasonMessage: "Breakfast fruit pairing rule violation (auto-removed).",
		})
	}
	return out
}
