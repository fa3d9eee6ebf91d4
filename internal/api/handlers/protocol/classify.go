package protocol

import (
	"net/http"

	core "meal-protocol-api/internal/core/protocol"
	"meal-protocol-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClassifyRequest 餐別推斷請求
type ClassifyRequest struct {
	Recipe core.Recipe `json:"recipe"`
}

// ClassifyResponse 餐別推斷回應
// 無法判斷時 meal_type 為 "unknown"，不是錯誤。
type ClassifyResponse struct {
	MealType core.MealType `json:"meal_type"`
}

// HandleClassify 處理 /protocol/classify 餐別推斷 API
func HandleClassify(engine *core.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)

		var req ClassifyRequest
		if !bindJSON(c, requestID, &req) {
			return
		}

		meal := engine.Classify(req.Recipe)

		common.LogInfo("餐別推斷完成",
			zap.String("request_id", requestID),
			zap.String("meal_type", string(meal)),
			zap.Int("ingredients", len(req.Recipe.Ingredients)),
		)

		c.JSON(http.StatusOK, ClassifyResponse{MealType: meal})
	}
}
