package health

import (
	"net/http"
	"runtime"
	"time"

	"meal-protocol-api/internal/core/cache"
	core "meal-protocol-api/internal/core/protocol"
	"meal-protocol-api/internal/infrastructure/config"
	"meal-protocol-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status         string                 `json:"status"`
	Timestamp      time.Time              `json:"timestamp"`
	Version        string                 `json:"version"`
	CatalogVersion string                 `json:"catalog_version"`
	Runtime        map[string]interface{} `json:"runtime"`
	Cache          map[string]interface{} `json:"cache,omitempty"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	// 獲取合規引擎
	eng, exists := c.Get("engine")
	if !exists {
		common.LogError("Engine not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Engine not found",
		})
		return
	}
	engine, ok := eng.(*core.Engine)
	if !ok {
		common.LogError("Invalid engine type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid engine type",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:         "ok",
		Timestamp:      time.Now(),
		Version:        config.App.Version,
		CatalogVersion: engine.Catalog().Version(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	// 快取統計（快取關閉時省略）
	if cm, exists := c.Get("cache_manager"); exists {
		if manager, ok := cm.(*cache.CacheManager); ok {
			response.Cache = manager.GetStats()
		}
	}

	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器
// 引擎在路由建立時注入；找不到代表目錄尚未載入。
func ReadinessCheck(c *gin.Context) {
	if _, exists := c.Get("engine"); !exists {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"code":   common.ErrCatalogNotReady.Code,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
