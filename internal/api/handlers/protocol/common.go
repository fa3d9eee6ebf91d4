package protocol

import (
	"net/http"

	"meal-protocol-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ensureRequestID 取出請求 ID，缺省時自動補發
func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// bindJSON 解析請求體，失敗時回 400 並記錄
func bindJSON(c *gin.Context, requestID string, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return false
	}
	return true
}

// respondInvalidMeal 回應無效餐別錯誤
func respondInvalidMeal(c *gin.Context, requestID, value string) {
	common.LogWarn("無效的餐別",
		zap.String("meal_type", value),
		zap.String("request_id", requestID),
	)
	c.JSON(http.StatusBadRequest, gin.H{
		"error": "Invalid meal type, expected breakfast, lunch or dinner",
		"code":  common.ErrInvalidMealType.Code,
	})
}
