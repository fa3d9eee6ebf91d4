package cache

import (
	"context"
	"os"
	"testing"
	"time"

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

func memoryConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         3,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
}

func TestManagerDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.Cache.Enabled = false

	m := NewManager(cfg)
	require.Nil(t, m)

	// nil 管理器可安全呼叫
	_, err := m.Get(context.Background(), "k")
	assert.Equal(t, common.ErrCacheDisabled, err)
	assert.NoError(t, m.Set(context.Background(), "k", "v"))
	assert.NoError(t, m.Close())
	assert.Equal(t, map[string]interface{}{"enabled": false}, m.GetStats())
}

func TestManagerMemoryRoundTrip(t *testing.T) {
	m := NewManager(memoryConfig())
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	assert.Equal(t, common.ErrCacheMiss, err)

	require.NoError(t, m.Set(ctx, "k1", "v1"))
	got, err := m.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}

func TestManagerTTLExpiry(t *testing.T) {
	cfg := memoryConfig()
	cfg.Cache.TTL = 10 * time.Millisecond

	m := NewManager(cfg)
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", "v"))

	time.Sleep(30 * time.Millisecond)

	_, err := m.Get(ctx, "k")
	assert.Equal(t, common.ErrCacheMiss, err)
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(memoryConfig())
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k1", "v1"))
	require.NoError(t, m.Set(ctx, "k2", "v2"))
	require.NoError(t, m.Set(ctx, "k3", "v3"))

	// 提高 k1/k2 的使用次數，讓 k3 成為淘汰對象
	for i := 0; i < 3; i++ {
		_, _ = m.Get(ctx, "k1")
		_, _ = m.Get(ctx, "k2")
	}

	require.NoError(t, m.Set(ctx, "k4", "v4"))

	_, err := m.Get(ctx, "k3")
	assert.Equal(t, common.ErrCacheMiss, err)
	got, err := m.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)
}

func TestBuildKey(t *testing.T) {
	payload := []byte(`{"ingredients":["Mango"]}`)

	k1 := BuildKey("v1", "breakfast", payload)
	k2 := BuildKey("v1", "breakfast", payload)
	assert.Equal(t, k1, k2)

	assert.NotEqual(t, k1, BuildKey("v2", "breakfast", payload))
	assert.NotEqual(t, k1, BuildKey("v1", "lunch", payload))
	assert.NotEqual(t, k1, BuildKey("v1", "breakfast", []byte(`{"ingredients":["Lemon"]}`)))
}
