package protocol

// Resolve 將任意食材文字解析為標準食材
// 依序嘗試，先中先贏：
//  1. 正規化後為空 → 不認識
//  2. 別名精確查表（可能命中「明確排除」哨兵）
//  3. 標準名精確查表
//  4. 整詞包含比對：標準名以完整詞彙出現在文字中（詞界為字串端點或非字母），
//     取字元長度最大者；長度平手時依目錄宣告順序
//  5. 皆未命中 → 不認識
//
// 相同目錄版本下結果恆定，可安全重複呼叫。
func (c *Catalog) Resolve(text string) Resolution {
	res := Resolution{Input: text}

	norm := c.Normalize(text)
	res.Normalized = norm
	if norm == "" {
		return res
	}

	if target, ok := c.lookupAlias(norm); ok {
		if target.disallowed {
			res.Disallowed = true
			return res
		}
		entry, _ := c.lookupExact(target.canonical)
		res.CanonicalName = entry.canonical
		res.Category = entry.category
		res.Known = true
		return res
	}

	if entry, ok := c.lookupExact(norm); ok {
		res.CanonicalName = entry.canonical
		res.Category = entry.category
		res.Known = true
		return res
	}

	// 整詞包含比對，處理「cooked quinoa」「fresh blueberries」這類修飾寫法
	best := -1
	bestLen := -1
	for i := range c.ordered {
		e := c.entryAt(i)
		if len(e.normalized) > bestLen && containsWholeToken(norm, e.normalized) {
			best = i
			bestLen = len(e.normalized)
		}
	}
	if best >= 0 {
		entry := c.entryAt(best)
		res.CanonicalName = entry.canonical
		res.Category = entry.category
		res.Known = true
		return res
	}

	return res
}

// containsWholeToken needle 是否以完整詞彙出現於 haystack
// 詞界定義：字串起訖或非字母字元，不允許出現在單字中間。
func containsWholeToken(haystack, needle string) bool {
	if needle == "" || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] != needle {
			continue
		}
		if i > 0 && isLetter(haystack[i-1]) {
			continue
		}
		if end := i + len(needle); end < len(haystack) && isLetter(haystack[end]) {
			continue
		}
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}
