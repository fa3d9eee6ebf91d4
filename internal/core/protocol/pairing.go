package protocol

// FruitGroup 早餐水果配對群組
type FruitGroup string

const (
	GroupMelon   FruitGroup = "melon"
	GroupSweet   FruitGroup = "sweet"
	GroupSubacid FruitGroup = "subacid"
	GroupAcid    FruitGroup = "acid"
)

// ViolationType 配對違規類型
type ViolationType string

const (
	// ViolationMelonMustBeSolo 瓜類必須單獨食用，不可與其他水果混合
	ViolationMelonMustBeSolo ViolationType = "MELON_MUST_BE_SOLO"
	// ViolationSweetWithAcid 甜味水果與酸味水果不可同餐；亞酸可與兩者任意搭配
	ViolationSweetWithAcid ViolationType = "SWEET_WITH_ACID_FORBIDDEN"
)

// PairingViolation 單筆配對違規
type PairingViolation struct {
	Type    ViolationType `json:"type"`
	Message string        `json:"message"`
}

// PairingAnalysis 配對分析結果
// Fruits 保持輸入順序（即原始食材順序），自動移除策略依賴此順序。
type PairingAnalysis struct {
	OK         bool                `json:"ok"`
	Fruits     []string            `json:"fruits"`
	Present    map[FruitGroup]bool `json:"present"`
	Violations []PairingViolation  `json:"violations"`
}

// AnalyzePairing 檢查早餐水果組合
// 輸入為已解析的水果標準化名稱，需保持原始食材順序。
func (c *Catalog) AnalyzePairing(fruits []string) PairingAnalysis {
	analysis := PairingAnalysis{
		Fruits: append([]string(nil), fruits...),
		Present: map[FruitGroup]bool{
			GroupMelon:   false,
			GroupSweet:   false,
			GroupSubacid: false,
			GroupAcid:    false,
		},
	}

	for _, f := range fruits {
		if g, ok := c.FruitGroupOf(f); ok {
			analysis.Present[g] = true
		}
	}

	if analysis.Present[GroupMelon] && len(fruits) > 1 {
		analysis.Violations = append(analysis.Violations, PairingViolation{
			Type:    ViolationMelonMustBeSolo,
			Message: "Melons must be eaten alone (no mixing with other fruits).",
		})
	}

	if analysis.Present[GroupSweet] && analysis.Present[GroupAcid] {
		analysis.Violations = append(analysis.Violations, PairingViolation{
			Type:    ViolationSweetWithAcid,
			Message: "Never combine sweet fruits with acid fruits.",
		})
	}

	analysis.OK = len(analysis.Violations) == 0
	return analysis
}

// pairingKeepSet 違規時的確定性自動移除策略，回傳應保留的標準化名稱集合
//   - 瓜類違規：只保留瓜類群組的項目
//   - 甜+酸違規：依原始順序找出第一個屬於甜或酸群組的水果，
//     屬甜則移除所有酸味項目，屬酸則移除所有甜味項目
//   - 後備（理論上不可達，違規成立時順序中必有甜或酸）：保留亞酸加上首項
func (c *Catalog) pairingKeepSet(analysis PairingAnalysis) map[string]bool {
	keep := make(map[string]bool, len(analysis.Fruits))

	if analysis.Present[GroupMelon] && len(analysis.Fruits) > 1 {
		for _, f := range analysis.Fruits {
			if c.InFruitGroup(f, GroupMelon) {
				keep[f] = true
			}
		}
		return keep
	}

	if analysis.Present[GroupSweet] && analysis.Present[GroupAcid] {
		for _, f := range analysis.Fruits {
			if c.InFruitGroup(f, GroupSweet) {
				return c.keepOutsideGroup(analysis.Fruits, GroupAcid)
			}
			if c.InFruitGroup(f, GroupAcid) {
				return c.keepOutsideGroup(analysis.Fruits, GroupSweet)
			}
		}
		for _, f := range analysis.Fruits {
			if c.InFruitGroup(f, GroupSubacid) || f == analysis.Fruits[0] {
				keep[f] = true
			}
		}
		return keep
	}

	for _, f := range analysis.Fruits {
		keep[f] = true
	}
	return keep
}

// keepOutsideGroup 保留所有不屬於指定群組的水果
func (c *Catalog) keepOutsideGroup(fruits []string, drop FruitGroup) map[string]bool {
	keep := make(map[string]bool, len(fruits))
	for _, f := range fruits {
		if !c.InFruitGroup(f, drop) {
			keep[f] = true
		}
	}
	return keep
}
