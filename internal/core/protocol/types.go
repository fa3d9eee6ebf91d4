package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category 食材分類
type Category string

const (
	CategoryFruitSweet   Category = "fruit_sweet"
	CategoryFruitSubacid Category = "fruit_subacid"
	CategoryFruitAcid    Category = "fruit_acid"
	CategoryMelon        Category = "melon"
	CategoryLeafyGreen   Category = "leafy_green"
	CategoryVegetable    Category = "vegetable"
	CategorySprout       Category = "sprout"
	CategorySeaweed      Category = "seaweed"
	CategoryComplexCarb  Category = "complex_carb"
	CategoryBeanLegume   Category = "bean_legume"
	CategoryNutSeed      Category = "nut_seed"
	CategoryOil          Category = "oil"
	CategoryVinegar      Category = "vinegar"
	CategoryCondiment    Category = "condiment"
	CategorySweetener    Category = "sweetener"
	CategoryHerbSpice    Category = "herb_spice"
)

// AllCategories 全部分類（餐別政策必須對每一項做出明確決定）
var AllCategories = []Category{
	CategoryFruitSweet,
	CategoryFruitSubacid,
	CategoryFruitAcid,
	CategoryMelon,
	CategoryLeafyGreen,
	CategoryVegetable,
	CategorySprout,
	CategorySeaweed,
	CategoryComplexCarb,
	CategoryBeanLegume,
	CategoryNutSeed,
	CategoryOil,
	CategoryVinegar,
	CategoryCondiment,
	CategorySweetener,
	CategoryHerbSpice,
}

// IsFruit 是否為水果類（含瓜類）
func (c Category) IsFruit() bool {
	switch c {
	case CategoryFruitSweet, CategoryFruitSubacid, CategoryFruitAcid, CategoryMelon:
		return true
	}
	return false
}

// IsProtein 是否為蛋白質類（豆類或堅果種子）
func (c Category) IsProtein() bool {
	return c == CategoryBeanLegume || c == CategoryNutSeed
}

// MealType 餐別
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	// MealUnknown 分類器無法判斷時的明確哨兵值，不是錯誤
	MealUnknown MealType = "unknown"
)

// ParseMealType 解析餐別字串
func ParseMealType(s string) (MealType, error) {
	switch MealType(strings.ToLower(strings.TrimSpace(s))) {
	case MealBreakfast:
		return MealBreakfast, nil
	case MealLunch:
		return MealLunch, nil
	case MealDinner:
		return MealDinner, nil
	}
	return MealUnknown, fmt.Errorf("invalid meal type: %q", s)
}

// IngredientLine 單行食材輸入
// 邊界形狀：裸字串或 {amount, item, raw}，欄位皆可缺省。
// ResolvedName 與 Category 由清理時標注；輸入帶入的值不影響比對，
// 清理一律以 DisplayText 重新解析覆寫。
type IngredientLine struct {
	Amount       string   `json:"amount,omitempty"`
	Item         string   `json:"item,omitempty"`
	Raw          string   `json:"raw,omitempty"`
	ResolvedName string   `json:"resolved_name,omitempty"`
	Category     Category `json:"category,omitempty"`
}

// UnmarshalJSON 容錯解碼：裸字串、物件皆可；非字串欄位一律以空字串處理
func (l *IngredientLine) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = IngredientLine{Item: s, Raw: s}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		// 非字串也非物件，視為空行
		*l = IngredientLine{}
		return nil
	}

	*l = IngredientLine{
		Amount:       stringField(obj["amount"]),
		Item:         stringField(obj["item"]),
		Raw:          stringField(obj["raw"]),
		ResolvedName: stringField(obj["resolved_name"]),
		Category:     Category(stringField(obj["category"])),
	}
	return nil
}

// stringField 只接受 JSON 字串，其他型別一律當作空字串
func stringField(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// DisplayText 取出用於比對的文字：結構化 item 優先，其次 raw
func (l IngredientLine) DisplayText() string {
	if t := strings.TrimSpace(l.Item); t != "" {
		return t
	}
	return strings.TrimSpace(l.Raw)
}

// Recipe 食譜輸入
// 核心只讀不寫，清理時回傳新副本。
type Recipe struct {
	ID          string           `json:"id,omitempty"`
	Title       string           `json:"title,omitempty"`
	Ingredients []IngredientLine `json:"ingredients"`
}

// UnmarshalJSON 容錯解碼：ingredients 缺省或非陣列時視為空清單
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		*r = Recipe{}
		return nil
	}

	*r = Recipe{
		ID:    stringField(obj["id"]),
		Title: stringField(obj["title"]),
	}

	if raw, ok := obj["ingredients"]; ok {
		var lines []IngredientLine
		if err := json.Unmarshal(raw, &lines); err == nil {
			r.Ingredients = lines
		}
	}
	return nil
}

// Resolution 單一文字的解析結果
// Known=false 且 Disallowed=false 代表完全不認識；
// Disallowed=true 代表認得但被規範明確排除，兩者必須區分。
type Resolution struct {
	Input         string   `json:"input"`
	Normalized    string   `json:"normalized"`
	CanonicalName string   `json:"canonical_name,omitempty"`
	Category      Category `json:"category,omitempty"`
	Known         bool     `json:"known"`
	Disallowed    bool     `json:"disallowed"`
}

// 移除原因代碼
const (
	ReasonUnknownIngredient    = "UNKNOWN_INGREDIENT"
	ReasonExplicitlyDisallowed = "EXPLICITLY_DISALLOWED"
	ReasonNotAllowedForMeal    = "NOT_ALLOWED_FOR_MEAL"
	ReasonPairingViolation     = "PAIRING_VIOLATION"
)

// RemovalRecord 移除紀錄
// 順序為發現順序：先逐項檢查的移除（依食材順序），配對規則的移除附加在後。
type RemovalRecord struct {
	OriginalText  string `json:"original_text"`
	ResolvedName  string `json:"resolved_name,omitempty"`
	ReasonCode    string `json:"reason_code"`
	ReasonMessage string `json:"reason_message"`
}

// DisplayLine 產生 UI 顯示用的單行摘要
func (r RemovalRecord) DisplayLine() string {
	name := r.OriginalText
	if r.ResolvedName != "" {
		name = fmt.Sprintf("%s → %s", r.OriginalText, r.ResolvedName)
	}
	return fmt.Sprintf("%s — %s", name, r.ReasonMessage)
}

// SanitizationResult 清理結果
// CleanedRecipe 中倖存食材保持原輸入的相對順序。
type SanitizationResult struct {
	MealType      MealType        `json:"meal_type"`
	CleanedRecipe Recipe          `json:"cleaned_recipe"`
	Removed       []RemovalRecord `json:"removed"`
	RemovedLines  []string        `json:"removed_display_lines,omitempty"`
}

// Availability 可選項快照
// Items 的值為各分類目前仍可選的標準名稱；唯讀快照，不回寫任何靜態表。
type Availability struct {
	MealType          MealType              `json:"meal_type"`
	AllowedCategories []Category            `json:"allowed_categories"`
	BlockedCategories []Category            `json:"blocked_categories"`
	Items             map[Category][]string `json:"items_by_category"`
	ChosenResolved    []string              `json:"chosen_resolved"`
}

// FoodEntry 允許食材索引的單項
type FoodEntry struct {
	Canonical string   `json:"canonical"`
	Category  Category `json:"category"`
}
