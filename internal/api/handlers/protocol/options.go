package protocol

import (
	"net/http"

	core "meal-protocol-api/internal/core/protocol"
	"meal-protocol-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OptionsRequest 可選項計算請求
// chosen: 使用者目前已選的食材名稱（標準名或原始輸入皆可）
type OptionsRequest struct {
	MealType string   `json:"meal_type" binding:"required"`
	Chosen   []string `json:"chosen"`
}

// HandleOptions 處理 /protocol/options 可選項計算 API
func HandleOptions(engine *core.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)

		var req OptionsRequest
		if !bindJSON(c, requestID, &req) {
			return
		}

		meal, err := core.ParseMealType(req.MealType)
		if err != nil {
			respondInvalidMeal(c, requestID, req.MealType)
			return
		}

		avail := engine.ComputeOptions(meal, req.Chosen)

		common.LogInfo("可選項計算完成",
			zap.String("request_id", requestID),
			zap.String("meal_type", string(meal)),
			zap.Int("chosen", len(req.Chosen)),
		)

		c.JSON(http.StatusOK, avail)
	}
}
