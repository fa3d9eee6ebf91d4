package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"meal-protocol-api/internal/infrastructure/config"
	"meal-protocol-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheManager 清理結果快取管理器
// 引擎在固定目錄版本下是純函數，相同輸入必得相同輸出，
// 因此可以安全地在呼叫端快取整份回應；鍵需包含目錄版本，換版即自然失效。
// 後端：設定 redis 位址時用 redis，否則用行程內記憶體（TTL + LRU 淘汰）。
type CacheManager struct {
	config *config.Config
	client *redis.Client
	mu     sync.RWMutex
	store  map[string]cacheEntry
	stats  cacheStats
}

// cacheEntry 記憶體快取條目
type cacheEntry struct {
	value       string
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 快取統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// NewManager 創建新的快取管理器
// 快取停用時回傳 nil；redis 連線失敗時退回記憶體後端。
func NewManager(cfg *config.Config) *CacheManager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &CacheManager{
		config: cfg,
		store:  make(map[string]cacheEntry),
	}

	if cfg.Cache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisAddr,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			common.LogWarn("Redis 連線失敗，改用記憶體快取",
				zap.String("addr", cfg.Cache.RedisAddr),
				zap.Error(err),
			)
		} else {
			m.client = client
		}
	}

	if m.client == nil {
		// 記憶體後端才需要清理協程
		go m.startCleanup()
	}

	common.LogInfo("快取管理員已初始化",
		zap.Bool("redis", m.client != nil),
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
	)

	return m
}

// BuildKey 由目錄版本、餐別與請求內容組出快取鍵
func BuildKey(catalogVersion, mealType string, payload []byte) string {
	hash := sha256.Sum256(payload)
	return fmt.Sprintf("sanitize:%s:%s:%s", catalogVersion, mealType, hex.EncodeToString(hash[:]))
}

// Get 獲取快取值
func (m *CacheManager) Get(ctx context.Context, key string) (string, error) {
	if m == nil {
		return "", common.ErrCacheDisabled
	}

	if m.client != nil {
		value, err := m.client.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return "", common.ErrCacheMiss
			}
			return "", fmt.Errorf("failed to get cache: %w", err)
		}
		return value, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		return "", common.ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		return "", common.ErrCacheMiss
	}

	entry.lastAccess = time.Now()
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++

	return entry.value, nil
}

// Set 設置快取值
func (m *CacheManager) Set(ctx context.Context, key, value string) error {
	if m == nil {
		return nil
	}

	if m.client != nil {
		if err := m.client.Set(ctx, key, value, m.config.Cache.TTL).Err(); err != nil {
			return fmt.Errorf("failed to set cache: %w", err)
		}
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 檢查快取大小
	if len(m.store) >= m.config.Cache.MaxSize {
		m.cleanupLocked()
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRULocked()
		}
		if len(m.store) >= m.config.Cache.MaxSize {
			m.stats.errors++
			common.LogWarn("快取已滿",
				zap.Int("目前容量", len(m.store)),
			)
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	m.store[key] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(m.config.Cache.TTL),
		createdAt:  now,
		lastAccess: now,
	}

	return nil
}

// startCleanup 啟動清理過期快取的協程
func (m *CacheManager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		count := m.cleanupLocked()
		m.mu.Unlock()

		if count > 0 {
			common.LogInfo("已清理過期快取",
				zap.Int("清理數量", count),
			)
		}
	}
}

// cleanupLocked 清理過期條目，呼叫前須持有寫鎖
func (m *CacheManager) cleanupLocked() int {
	now := time.Now()
	count := 0
	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}
	return count
}

// evictLRULocked 淘汰最少使用的條目，呼叫前須持有寫鎖
func (m *CacheManager) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
	}
}

// GetStats 獲取快取統計信息
func (m *CacheManager) GetStats() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{"enabled": false}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := map[string]interface{}{
		"enabled":   true,
		"redis":     m.client != nil,
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"errors":    m.stats.errors,
	}
	if total := m.stats.hits + m.stats.misses; total > 0 {
		stats["hit_ratio"] = float64(m.stats.hits) / float64(total)
	}
	return stats
}

// Close 關閉快取管理器
func (m *CacheManager) Close() error {
	if m == nil {
		return nil
	}

	if m.client != nil {
		return m.client.Close()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
	)
	return nil
}
