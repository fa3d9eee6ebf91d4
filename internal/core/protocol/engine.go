package protocol

import "fmt"

// Engine 膳食規範合規引擎
// 持有啟動時注入的目錄與餐別政策，兩者建構後唯讀；
// 所有操作皆為輸入的純函數，不保留任何跨呼叫狀態，可安全併發使用。
// 引擎本身不做快取——相同目錄版本下輸出恆定，呼叫端可自行快取。
type Engine struct {
	catalog *Catalog
	policy  *MealPolicy
}

// NewEngine 建構引擎（依賴注入，測試可替換目錄與政策）
func NewEngine(catalog *Catalog, policy *MealPolicy) (*Engine, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if policy == nil {
		return nil, fmt.Errorf("meal policy is required")
	}
	return &Engine{catalog: catalog, policy: policy}, nil
}

// Resolve 臨時查詢：這個食材認不認得？
func (e *Engine) Resolve(text string) Resolution {
	return e.catalog.Resolve(text)
}

// Catalog 取得目錄（唯讀）
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Policy 取得餐別政策表（唯讀）
func (e *Engine) Policy() *MealPolicy {
	return e.policy
}
