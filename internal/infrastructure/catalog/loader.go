package catalog

import (
	"context"
	"fmt"
	"os"

	"meal-protocol-api/internal/core/protocol"
	"meal-protocol-api/internal/infrastructure/config"
	"meal-protocol-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Bundle 目錄與政策的載入單位
// 遠端或檔案提供的 JSON 形狀；政策缺省時沿用內建政策表。
type Bundle struct {
	Catalog protocol.CatalogData    `json:"catalog"`
	Policy  []protocol.PolicyRecord `json:"policy,omitempty"`
}

// Loader 目錄載入器
// 核心自己不讀檔也不連網，啟動時由這裡把目錄資料餵進去。
// 來源優先序：遠端 URL → 本地檔案 → 內建預設。
type Loader struct {
	cfg    config.CatalogConfig
	client *resty.Client
}

// NewLoader 建立目錄載入器
func NewLoader(cfg config.CatalogConfig) *Loader {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")

	return &Loader{cfg: cfg, client: client}
}

// Load 載入目錄與政策
func (l *Loader) Load(ctx context.Context) (Bundle, error) {
	switch {
	case l.cfg.URL != "":
		return l.loadRemote(ctx)
	case l.cfg.Path != "":
		return l.loadFile()
	default:
		common.LogInfo("使用內建食材目錄",
			zap.String("version", DefaultVersion),
		)
		return Bundle{Catalog: DefaultData(), Policy: DefaultPolicy()}, nil
	}
}

// loadRemote 從遠端設定服務抓取目錄
func (l *Loader) loadRemote(ctx context.Context) (Bundle, error) {
	resp, err := l.client.R().SetContext(ctx).Get(l.cfg.URL)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to fetch catalog from %s: %w", l.cfg.URL, err)
	}
	if resp.StatusCode() != 200 {
		return Bundle{}, fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode())
	}

	bundle, err := parseBundle(resp.Body())
	if err != nil {
		return Bundle{}, err
	}

	common.LogInfo("已載入遠端食材目錄",
		zap.String("url", l.cfg.URL),
		zap.String("version", bundle.Catalog.Version),
	)
	return bundle, nil
}

// loadFile 從本地檔案讀取目錄
func (l *Loader) loadFile() (Bundle, error) {
	data, err := os.ReadFile(l.cfg.Path)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read catalog file %s: %w", l.cfg.Path, err)
	}

	bundle, err := parseBundle(data)
	if err != nil {
		return Bundle{}, err
	}

	common.LogInfo("已載入本地食材目錄",
		zap.String("path", l.cfg.Path),
		zap.String("version", bundle.Catalog.Version),
	)
	return bundle, nil
}

// parseBundle 解析並補上缺省政策
func parseBundle(data []byte) (Bundle, error) {
	var bundle Bundle
	if err := common.ParseJSONBytes(data, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("failed to parse catalog bundle: %w", err)
	}
	if len(bundle.Policy) == 0 {
		// 只覆寫食材目錄的部署沿用內建政策
		bundle.Policy = DefaultPolicy()
	}
	return bundle, nil
}

// BuildEngine 由載入結果建構合規引擎
func BuildEngine(bundle Bundle) (*protocol.Engine, error) {
	cat, err := protocol.NewCatalog(bundle.Catalog)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog data: %w", err)
	}
	policy, err := protocol.NewMealPolicy(bundle.Policy)
	if err != nil {
		return nil, fmt.Errorf("invalid meal policy: %w", err)
	}
	return protocol.NewEngine(cat, policy)
}
