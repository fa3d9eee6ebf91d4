package protocol

import "strings"

// Normalize 文字正規化
// 步驟順序固定：去除前後空白 → 轉小寫 → 移除括號內容 → 過濾非法字元
// （字母與空格永遠保留，數字依 keepDigits 決定）→ 壓縮連續空白 → 再去除前後空白。
// 純函數且冪等：Normalize(Normalize(x)) == Normalize(x)。
func Normalize(text string, keepDigits bool) string {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return ""
	}

	t = stripParentheticals(t)

	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9' && keepDigits:
			b.WriteRune(r)
		default:
			// 標點、數字（未保留時）、其他符號一律轉為空白
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// stripParentheticals 移除 (...) 群組，未配對的右括號原樣保留給後續過濾處理
func stripParentheticals(s string) string {
	if !strings.ContainsRune(s, '(') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
