package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ingredient-iq/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestManagerDisabled(t *testing.T) {
	cfg := testCacheConfig(10, time.Minute)
	cfg.Cache.Enabled = false

	m := NewManager(cfg)
	assert.Nil(t, m)

	// nil manager 的所有操作都必須安全
	_, err := m.Get(context.Background(), "key")
	assert.Error(t, err)
	assert.NoError(t, m.Set(context.Background(), "key", "value"))
	m.Clear()
	assert.NoError(t, m.Close())
	assert.Equal(t, false, m.GetStats()["enabled"])
}

func TestManagerSetGet(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Minute))
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "extract:toner", `["Water"]`))

	val, err := m.Get(ctx, "extract:toner")
	require.NoError(t, err)
	assert.Equal(t, `["Water"]`, val)
}

func TestManagerMiss(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Minute))

	_, err := m.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(testCacheConfig(10, 10*time.Millisecond))
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "key", "value"))
	time.Sleep(30 * time.Millisecond)

	_, err := m.Get(ctx, "key")
	assert.Error(t, err)
}

func TestManagerClear(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Minute))
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "key", "value"))
	m.Clear()

	_, err := m.Get(ctx, "key")
	assert.Error(t, err)
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(testCacheConfig(3, time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("key-%d", i), "value"))
	}

	// 存取 key-1 與 key-2，讓 key-0 成為最少使用
	_, _ = m.Get(ctx, "key-1")
	_, _ = m.Get(ctx, "key-2")

	require.NoError(t, m.Set(ctx, "key-3", "value"))

	_, err := m.Get(ctx, "key-0")
	assert.Error(t, err)

	val, err := m.Get(ctx, "key-3")
	require.NoError(t, err)
	assert.Equal(t, "value", val)
}

func TestManagerStats(t *testing.T) {
	m := NewManager(testCacheConfig(10, time.Minute))
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "key", "value"))
	_, _ = m.Get(ctx, "key")
	_, _ = m.Get(ctx, "missing")

	stats := m.GetStats()
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 0.5, stats["hit_ratio"])
}
