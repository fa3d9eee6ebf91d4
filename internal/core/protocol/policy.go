package protocol

import "fmt"

// SelectionConstraints 選擇限制
type SelectionConstraints struct {
	MaxComplexCarbChoices int  `json:"max_complex_carb_choices,omitempty"`
	MaxProteinChoices     int  `json:"max_protein_choices,omitempty"`
	SingleMelonOnly       bool `json:"single_melon_only,omitempty"`
}

// PolicyRecord 單一餐別的政策設定
// allowed 是運作上的白名單；blocked 為文件與防禦用途，
// 不在 allowed 中的分類即使也不在 blocked 中仍視為不允許。
type PolicyRecord struct {
	Meal        MealType             `json:"meal"`
	Allowed     []Category           `json:"allowed"`
	Blocked     []Category           `json:"blocked"`
	Constraints SelectionConstraints `json:"constraints"`
}

// policyRow 政策表內部列
type policyRow struct {
	allowed      map[Category]bool
	blocked      map[Category]bool
	allowedOrder []Category
	blockedOrder []Category
	constraints  SelectionConstraints
}

// MealPolicy 餐別政策表
// 啟動時建構一次，之後唯讀。
type MealPolicy struct {
	rows map[MealType]policyRow
}

// NewMealPolicy 建構政策表並驗證
// 不變量：每一餐 allowed ∩ blocked = ∅，且每個分類都必須被明確
// 指派到 allowed 或 blocked 其中之一——新增分類時不能默默落入「不允許」。
func NewMealPolicy(records []PolicyRecord) (*MealPolicy, error) {
	p := &MealPolicy{rows: make(map[MealType]policyRow, len(records))}

	for _, rec := range records {
		switch rec.Meal {
		case MealBreakfast, MealLunch, MealDinner:
		default:
			return nil, fmt.Errorf("policy record has invalid meal type %q", rec.Meal)
		}
		if _, dup := p.rows[rec.Meal]; dup {
			return nil, fmt.Errorf("duplicate policy record for %s", rec.Meal)
		}

		row := policyRow{
			allowed:      make(map[Category]bool, len(rec.Allowed)),
			blocked:      make(map[Category]bool, len(rec.Blocked)),
			allowedOrder: append([]Category(nil), rec.Allowed...),
			blockedOrder: append([]Category(nil), rec.Blocked...),
			constraints:  rec.Constraints,
		}
		for _, cat := range rec.Allowed {
			row.allowed[cat] = true
		}
		for _, cat := range rec.Blocked {
			row.blocked[cat] = true
		}

		for _, cat := range AllCategories {
			if row.allowed[cat] && row.blocked[cat] {
				return nil, fmt.Errorf("%s: category %s is both allowed and blocked", rec.Meal, cat)
			}
			if !row.allowed[cat] && !row.blocked[cat] {
				return nil, fmt.Errorf("%s: category %s is not assigned to allowed or blocked", rec.Meal, cat)
			}
		}

		p.rows[rec.Meal] = row
	}

	for _, meal := range []MealType{MealBreakfast, MealLunch, MealDinner} {
		if _, ok := p.rows[meal]; !ok {
			return nil, fmt.Errorf("missing policy record for %s", meal)
		}
	}

	return p, nil
}

// IsAllowed 分類在指定餐別是否允許
func (p *MealPolicy) IsAllowed(cat Category, meal MealType) bool {
	row, ok := p.rows[meal]
	if !ok {
		return false
	}
	return row.allowed[cat] && !row.blocked[cat]
}

// AllowedCategories 餐別允許的分類（宣告順序，回傳副本）
func (p *MealPolicy) AllowedCategories(meal MealType) []Category {
	row, ok := p.rows[meal]
	if !ok {
		return nil
	}
	return append([]Category(nil), row.allowedOrder...)
}

// BlockedCategories 餐別封鎖的分類（宣告順序，回傳副本）
func (p *MealPolicy) BlockedCategories(meal MealType) []Category {
	row, ok := p.rows[meal]
	if !ok {
		return nil
	}
	return append([]Category(nil), row.blockedOrder...)
}

// Constraints 餐別的選擇限制
func (p *MealPolicy) Constraints(meal MealType) SelectionConstraints {
	return p.rows[meal].constraints
}
