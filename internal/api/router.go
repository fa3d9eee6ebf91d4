package api

import (
	"context"
	"net/http"
	"time"

	"meal-protocol-api/internal/api/handlers/health"
	protocolHandler "meal-protocol-api/internal/api/handlers/protocol"
	"meal-protocol-api/internal/api/middleware"
	"meal-protocol-api/internal/core/cache"
	core "meal-protocol-api/internal/core/protocol"
	"meal-protocol-api/internal/infrastructure/config"
	"meal-protocol-api/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，食譜 JSON 用不到更大
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
// 引擎與快取管理器由呼叫端建構後注入。
func SetupRouter(cfg *config.Config, engine *core.Engine, cacheManager *cache.CacheManager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("catalog_version", engine.Catalog().Version()),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// 全局中間件：設置超時並注入依賴
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("engine", engine)
		if cacheManager != nil {
			c.Set("cache_manager", cacheManager)
		}

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		protocolGroup := api.Group("/protocol")
		{
			// 食譜清理
			protocolGroup.POST("/sanitize", protocolHandler.HandleSanitize(engine, cacheManager))
			protocolGroup.POST("/sanitize/auto", protocolHandler.HandleSanitizeAuto(engine))

			// 餐別推斷
			protocolGroup.POST("/classify", protocolHandler.HandleClassify(engine))

			// 可選項計算
			protocolGroup.POST("/options", protocolHandler.HandleOptions(engine))

			// 食材解析
			protocolGroup.POST("/resolve", protocolHandler.HandleResolve(engine))

			// 允許食材索引
			protocolGroup.GET("/foods", protocolHandler.HandleFoods(engine))
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("catalog_version", engine.Catalog().Version()),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
