package protocol

import (
	"net/http"

	core "meal-protocol-api/internal/core/protocol"
	"meal-protocol-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResolveRequest 食材解析請求
// text 與 items 擇一；兩者皆給時合併處理。
type ResolveRequest struct {
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// ResolveResponse 食材解析回應
type ResolveResponse struct {
	Resolutions []core.Resolution `json:"resolutions"`
}

// HandleResolve 處理 /protocol/resolve 食材解析 API
func HandleResolve(engine *core.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ensureRequestID(c)

		var req ResolveRequest
		if !bindJSON(c, requestID, &req) {
			return
		}

		inputs := req.Items
		if req.Text != "" {
			inputs = append([]string{req.Text}, inputs...)
		}
		if len(inputs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "text or items is required",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}

		resolutions := make([]core.Resolution, len(inputs))
		for i, input := range inputs {
			resolutions[i] = engine.Resolve(input)
		}

		common.LogInfo("食材解析完成",
			zap.String("request_id", requestID),
			zap.Int("items", len(inputs)),
		)

		c.JSON(http.StatusOK, ResolveResponse{Resolutions: resolutions})
	}
}
