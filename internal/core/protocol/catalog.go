package protocol

import (
	"fmt"
	"sort"
)

// CatalogData 目錄的外部設定形狀
// 由外部載入協作者（設定檔、遠端設定服務）提供，核心不自行讀檔。
// Groups 與其中 Items 的宣告順序即 contains 比對平手時的固定優先順序。
type CatalogData struct {
	Version    string            `json:"version"`
	KeepDigits bool              `json:"keep_digits"`
	Groups     []CategoryGroup   `json:"groups"`
	Aliases    map[string]string `json:"aliases"`
	Disallowed []string          `json:"disallowed"`
}

// CategoryGroup 單一分類下的標準食材名稱
type CategoryGroup struct {
	Category Category `json:"category"`
	Items    []string `json:"items"`
}

// catalogEntry 目錄內部項目
type catalogEntry struct {
	canonical  string
	normalized string
	category   Category
}

// aliasTarget 別名查表結果；disallowed 表示「認得但明確排除」的哨兵
type aliasTarget struct {
	canonical  string
	disallowed bool
}

// Catalog 標準食材目錄
// 啟動時建構一次，之後唯讀；所有查詢皆不改動內部狀態，可安全併發使用。
type Catalog struct {
	version    string
	keepDigits bool
	ordered    []catalogEntry
	byNorm     map[string]int
	aliases    map[string]aliasTarget
	byCategory map[Category][]string
	fruits     map[FruitGroup]map[string]bool
}

// NewCatalog 由外部資料建構目錄並驗證
func NewCatalog(data CatalogData) (*Catalog, error) {
	if data.Version == "" {
		return nil, fmt.Errorf("catalog version is required")
	}

	known := make(map[Category]bool, len(AllCategories))
	for _, c := range AllCategories {
		known[c] = true
	}

	c := &Catalog{
		version:    data.Version,
		keepDigits: data.KeepDigits,
		byNorm:     make(map[string]int),
		aliases:    make(map[string]aliasTarget),
		byCategory: make(map[Category][]string),
		fruits: map[FruitGroup]map[string]bool{
			GroupMelon:   {},
			GroupSweet:   {},
			GroupSubacid: {},
			GroupAcid:    {},
		},
	}

	for _, g := range data.Groups {
		if !known[g.Category] {
			return nil, fmt.Errorf("catalog group has unknown category %q", g.Category)
		}
		for _, name := range g.Items {
			norm := c.Normalize(name)
			if norm == "" {
				return nil, fmt.Errorf("catalog item %q normalizes to empty", name)
			}
			if _, dup := c.byNorm[norm]; dup {
				return nil, fmt.Errorf("duplicate catalog item %q", name)
			}
			c.byNorm[norm] = len(c.ordered)
			c.ordered = append(c.ordered, catalogEntry{
				canonical:  name,
				normalized: norm,
				category:   g.Category,
			})
			c.byCategory[g.Category] = append(c.byCategory[g.Category], name)

			if g, ok := fruitGroupForCategory(g.Category); ok {
				c.fruits[g][norm] = true
			}
		}
	}

	for alias, canonical := range data.Aliases {
		normAlias := c.Normalize(alias)
		if normAlias == "" {
			return nil, fmt.Errorf("alias %q normalizes to empty", alias)
		}
		normCanonical := c.Normalize(canonical)
		if _, ok := c.byNorm[normCanonical]; !ok {
			return nil, fmt.Errorf("alias %q points to unknown canonical %q", alias, canonical)
		}
		c.aliases[normAlias] = aliasTarget{canonical: normCanonical}
	}

	// 明確排除的別名：可辨識但永遠不合規，移除原因需與「不認識」區分
	for _, alias := range data.Disallowed {
		normAlias := c.Normalize(alias)
		if normAlias == "" {
			return nil, fmt.Errorf("disallowed alias %q normalizes to empty", alias)
		}
		c.aliases[normAlias] = aliasTarget{disallowed: true}
	}

	return c, nil
}

// fruitGroupForCategory 水果分類對應的配對群組
func fruitGroupForCategory(cat Category) (FruitGroup, bool) {
	switch cat {
	case CategoryMelon:
		return GroupMelon, true
	case CategoryFruitSweet:
		return GroupSweet, true
	case CategoryFruitSubacid:
		return GroupSubacid, true
	case CategoryFruitAcid:
		return GroupAcid, true
	}
	return "", false
}

// Version 目錄版本標記
func (c *Catalog) Version() string {
	return c.version
}

// Normalize 以目錄變體設定正規化文字
func (c *Catalog) Normalize(text string) string {
	return Normalize(text, c.keepDigits)
}

// entryAt 依序號取得項目
func (c *Catalog) entryAt(i int) catalogEntry {
	return c.ordered[i]
}

// lookupExact 標準名精確查表
func (c *Catalog) lookupExact(norm string) (catalogEntry, bool) {
	if i, ok := c.byNorm[norm]; ok {
		return c.ordered[i], true
	}
	return catalogEntry{}, false
}

// lookupAlias 別名精確查表
func (c *Catalog) lookupAlias(norm string) (aliasTarget, bool) {
	t, ok := c.aliases[norm]
	return t, ok
}

// ItemsByCategory 某分類下的標準名稱（宣告順序，回傳副本）
func (c *Catalog) ItemsByCategory(cat Category) []string {
	items := c.byCategory[cat]
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// InFruitGroup 標準化名稱是否屬於指定水果群組
func (c *Catalog) InFruitGroup(norm string, g FruitGroup) bool {
	return c.fruits[g][norm]
}

// FruitGroupOf 標準化名稱所屬的水果群組
func (c *Catalog) FruitGroupOf(norm string) (FruitGroup, bool) {
	for _, g := range []FruitGroup{GroupMelon, GroupSweet, GroupSubacid, GroupAcid} {
		if c.fruits[g][norm] {
			return g, true
		}
	}
	return "", false
}

// AllowedIndex 全部允許食材的索引（依標準名排序），供 UI 參考頁使用
func (c *Catalog) AllowedIndex() []FoodEntry {
	out := make([]FoodEntry, 0, len(c.ordered))
	for _, e := range c.ordered {
		out = append(out, FoodEntry{Canonical: e.canonical, Category: e.category})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Canonical < out[j].Canonical })
	return out
}
