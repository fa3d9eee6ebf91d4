package protocol

import (
	"net/http"

	"meal-protocol-api/internal/core/cache"
	core "meal-protocol-api/internal/core/protocol"
	"meal-protocol-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SanitizeRequest 清理請求
// meal_type: breakfast / lunch / dinner
type SanitizeRequest struct {
	MealType string      `json:"meal_type" binding:"required"`
	Recipe   core.Recipe `json:"recipe"`
}

// SanitizeAutoRequest 自動推斷餐別的清理請求
type SanitizeAutoRequest struct {
	Recipe core.Recipe `json:"recipe"`
}

// HandleSanitize 處理 /protocol/sanitize 清理 API
// 引擎在固定目錄版本下輸出恆定，整份回應可快取。
func HandleSanitize(engine *core.Engine, cacheManager *cache.CacheManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)

		var req SanitizeRequest
		if !bindJSON(c, requestID, &req) {
			return
		}

		meal, err := core.ParseMealType(req.MealType)
		if err != nil {
			respondInvalidMeal(c, requestID, req.MealType)
			return
		}

		// 快取鍵以正規化後的食譜 JSON 為準，與欄位順序無關
		payload, err := common.ToJSON(req.Recipe)
		if err != nil {
			common.LogError("食譜序列化失敗",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
				"code":  common.ErrCodeInternalError,
			})
			return
		}
		key := cache.BuildKey(engine.Catalog().Version(), string(meal), []byte(payload))

		if cached, err := cacheManager.Get(c.Request.Context(), key); err == nil {
			common.LogCacheHit("sanitize")
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
		common.LogCacheMiss("sanitize")

		// 無 ID 的食譜補發一個，快取鍵以補發前的內容計算
		if req.Recipe.ID == "" {
			req.Recipe.ID = common.GenerateUUID()
		}

		result := engine.Sanitize(req.Recipe, meal)

		common.LogInfo("食譜清理完成",
			zap.String("request_id", requestID),
			zap.String("meal_type", string(meal)),
			zap.Int("ingredients", len(req.Recipe.Ingredients)),
			zap.Int("removed", len(result.Removed)),
		)

		if body, err := common.ToJSON(result); err == nil {
			if err := cacheManager.Set(c.Request.Context(), key, body); err != nil && err != common.ErrCacheFull {
				common.LogWarn("快取寫入失敗",
					zap.Error(err),
					zap.String("request_id", requestID),
				)
			}
		}

		c.JSON(http.StatusOK, result)
	}
}

// HandleSanitizeAuto 處理 /protocol/sanitize/auto
// 先推斷餐別再清理；無法分類時回傳餐別 unknown 與原樣食譜。
func HandleSanitizeAuto(engine *core.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)

		var req SanitizeAutoRequest
		if !bindJSON(c, requestID, &req) {
			return
		}

		if req.Recipe.ID == "" {
			req.Recipe.ID = common.GenerateUUID()
		}

		result := engine.SanitizeAuto(req.Recipe)

		common.LogInfo("自動清理完成",
			zap.String("request_id", requestID),
			zap.String("meal_type", string(result.MealType)),
			zap.Int("removed", len(result.Removed)),
		)

		c.JSON(http.StatusOK, result)
	}
}
