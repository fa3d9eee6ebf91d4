package protocol

import (
	"net/http"

	core "meal-protocol-api/internal/core/protocol"

	"github.com/gin-gonic/gin"
)

// FoodsResponse 允許食材索引回應
type FoodsResponse struct {
	Version string           `json:"catalog_version"`
	Count   int              `json:"count"`
	Foods   []core.FoodEntry `json:"foods"`
}

// HandleFoods 處理 /protocol/foods 允許食材索引 API
func HandleFoods(engine *core.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		ensureRequestID(c)

		foods := engine.Catalog().AllowedIndex()
		c.JSON(http.StatusOK, FoodsResponse{
			Version: engine.Catalog().Version(),
			Count:   len(foods),
			Foods:   foods,
		})
	}
}
