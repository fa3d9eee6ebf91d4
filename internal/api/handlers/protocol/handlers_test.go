package protocol

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"meal-protocol-api/internal/core/cache"
	core "meal-protocol-api/internal/core/protocol"
	infracatalog "meal-protocol-api/internal/infrastructure/catalog"
	"meal-protocol-api/internal/infrastructure/config"
	"meal-protocol-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testRouter(t *testing.T, cacheManager *cache.CacheManager) *gin.Engine {
	t.Helper()

	engine, err := infracatalog.BuildEngine(infracatalog.Bundle{
		Catalog: infracatalog.DefaultData(),
		Policy:  infracatalog.DefaultPolicy(),
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/sanitize", HandleSanitize(engine, cacheManager))
	r.POST("/sanitize/auto", HandleSanitizeAuto(engine))
	r.POST("/classify", HandleClassify(engine))
	r.POST("/options", HandleOptions(engine))
	r.POST("/resolve", HandleResolve(engine))
	r.GET("/foods", HandleFoods(engine))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) core.SanitizationResult {
	t.Helper()
	var result core.SanitizationResult
	require.NoError(t, common.ParseJSON(w.Body.String(), &result))
	return result
}

func TestHandleSanitize(t *testing.T) {
	r := testRouter(t, nil)

	t.Run("breakfast pairing removal", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sanitize", `{"meal_type":"breakfast","recipe":{"ingredients":["Mango","Lemon"]}}`)
		require.Equal(t, http.StatusOK, w.Code)

		result := decodeResult(t, w)
		assert.Equal(t, core.MealBreakfast, result.MealType)
		require.Len(t, result.CleanedRecipe.Ingredients, 1)
		assert.Equal(t, "Mango", result.CleanedRecipe.Ingredients[0].ResolvedName)
		require.Len(t, result.Removed, 1)
		assert.Equal(t, core.ReasonPairingViolation, result.Removed[0].ReasonCode)
	})

	t.Run("invalid meal type", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sanitize", `{"meal_type":"brunch","recipe":{"ingredients":["Mango"]}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_MEAL_TYPE")
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sanitize", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing meal type", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sanitize", `{"recipe":{"ingredients":["Mango"]}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sets request id header", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sanitize", `{"meal_type":"dinner","recipe":{"ingredients":["Lentils"]}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestHandleSanitizeCached(t *testing.T) {
	manager := cache.NewManager(&config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         10,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	})
	require.NotNil(t, manager)
	defer manager.Close()

	r := testRouter(t, manager)

	body := `{"meal_type":"dinner","recipe":{"ingredients":["Cooked Quinoa","Lentils"]}}`
	first := doJSON(t, r, "POST", "/sanitize", body)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, r, "POST", "/sanitize", body)
	require.Equal(t, http.StatusOK, second.Code)

	// 兩次回應語意一致，第二次來自快取
	assert.Equal(t, decodeResult(t, first), decodeResult(t, second))
	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats["hits"])
}

func TestHandleSanitizeAuto(t *testing.T) {
	r := testRouter(t, nil)

	t.Run("classified", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sanitize/auto", `{"recipe":{"ingredients":["Lentils","Spinach"]}}`)
		require.Equal(t, http.StatusOK, w.Code)
		result := decodeResult(t, w)
		assert.Equal(t, core.MealDinner, result.MealType)
	})

	t.Run("unclassifiable", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sanitize/auto", `{"recipe":{"ingredients":["Ketchup"]}}`)
		require.Equal(t, http.StatusOK, w.Code)
		result := decodeResult(t, w)
		assert.Equal(t, core.MealUnknown, result.MealType)
		assert.Empty(t, result.Removed)
	})
}

func TestHandleClassify(t *testing.T) {
	r := testRouter(t, nil)

	w := doJSON(t, r, "POST", "/classify", `{"recipe":{"ingredients":["Mango","Apples"]}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"breakfast"`)
}

func TestHandleOptions(t *testing.T) {
	r := testRouter(t, nil)

	t.Run("lunch carb exclusivity", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/options", `{"meal_type":"lunch","chosen":["Quinoa"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var avail core.Availability
		require.NoError(t, common.ParseJSON(w.Body.String(), &avail))
		assert.Equal(t, []string{"Quinoa"}, avail.Items[core.CategoryComplexCarb])
	})

	t.Run("invalid meal type", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/options", `{"meal_type":"snack"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleResolve(t *testing.T) {
	r := testRouter(t, nil)

	t.Run("single text", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/resolve", `{"text":"apple"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ResolveResponse
		require.NoError(t, common.ParseJSON(w.Body.String(), &resp))
		require.Len(t, resp.Resolutions, 1)
		assert.Equal(t, "Apples", resp.Resolutions[0].CanonicalName)
	})

	t.Run("batch items", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/resolve", `{"items":["Cooked Quinoa","Ketchup","apple cider vinegar"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ResolveResponse
		require.NoError(t, common.ParseJSON(w.Body.String(), &resp))
		require.Len(t, resp.Resolutions, 3)
		assert.True(t, resp.Resolutions[0].Known)
		assert.False(t, resp.Resolutions[1].Known)
		assert.True(t, resp.Resolutions[2].Disallowed)
	})

	t.Run("empty request", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/resolve", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleFoods(t *testing.T) {
	r := testRouter(t, nil)

	w := doJSON(t, r, "GET", "/foods", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp FoodsResponse
	require.NoError(t, common.ParseJSON(w.Body.String(), &resp))
	assert.Equal(t, infracatalog.DefaultVersion, resp.Version)
	assert.Equal(t, len(resp.Foods), resp.Count)
	assert.NotEmpty(t, resp.Foods)
}
