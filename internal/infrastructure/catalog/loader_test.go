package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meal-protocol-api/internal/core/protocol"
	"meal-protocol-api/internal/infrastructure/config"
	"meal-protocol-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

const fileBundle = `{
	"catalog": {
		"version": "file-1",
		"groups": [
			{"category": "fruit_sweet", "items": ["Mango"]},
			{"category": "fruit_subacid", "items": ["Apples"]},
			{"category": "fruit_acid", "items": ["Lemon"]},
			{"category": "melon", "items": ["Cantaloupe"]},
			{"category": "complex_carb", "items": ["Quinoa"]}
		]
	}
}`

func TestLoadDefaults(t *testing.T) {
	loader := NewLoader(config.CatalogConfig{Timeout: time.Second})

	bundle, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, bundle.Catalog.Version)
	require.NotEmpty(t, bundle.Policy)

	engine, err := BuildEngine(bundle)
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, engine.Catalog().Version())
}

func TestLoadFile(t *testing.T) {
	t.Run("valid bundle gets default policy", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(fileBundle), 0644))

		loader := NewLoader(config.CatalogConfig{Path: path, Timeout: time.Second})
		bundle, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "file-1", bundle.Catalog.Version)
		// 只覆寫目錄的部署沿用內建政策
		assert.Len(t, bundle.Policy, 3)

		_, err = BuildEngine(bundle)
		assert.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		loader := NewLoader(config.CatalogConfig{Path: "/nonexistent/catalog.json", Timeout: time.Second})
		_, err := loader.Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		loader := NewLoader(config.CatalogConfig{Path: path, Timeout: time.Second})
		_, err := loader.Load(context.Background())
		assert.Error(t, err)
	})
}

func TestLoadRemote(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(fileBundle))
		}))
		defer srv.Close()

		loader := NewLoader(config.CatalogConfig{URL: srv.URL, Timeout: time.Second})
		bundle, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "file-1", bundle.Catalog.Version)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		loader := NewLoader(config.CatalogConfig{URL: srv.URL, Timeout: time.Second})
		_, err := loader.Load(context.Background())
		assert.Error(t, err)
	})
}

func TestBuildEngineRejectsInvalidBundle(t *testing.T) {
	bundle := Bundle{
		Catalog: protocol.CatalogData{}, // 缺版本
		Policy:  DefaultPolicy(),
	}
	_, err := BuildEngine(bundle)
	assert.Error(t, err)
}
