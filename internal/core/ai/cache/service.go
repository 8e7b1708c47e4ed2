package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// productKeyPrefix Redis 鍵前綴
const productKeyPrefix = "product:analysis:"

// ProductCache Redis 產品分析快取
// 已分析過的產品直接回放結果，避免重打萃取服務
type ProductCache struct {
	client *redis.Client
	config *config.Config
}

// NewProductCache 創建產品分析快取，Redis 未啟用時回傳 nil
func NewProductCache(cfg *config.Config) (*ProductCache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ProductCache{
		client: client,
		config: cfg,
	}, nil
}

// productKey 以正規化產品名稱組出 Redis 鍵
func productKey(productName string) string {
	return productKeyPrefix + strings.ToLower(strings.TrimSpace(productName))
}

// Get 獲取已快取的產品分析
func (c *ProductCache) Get(ctx context.Context, productName string) (*common.ProductAnalysis, error) {
	if c == nil || c.client == nil {
		return nil, common.ErrCacheDisabled
	}

	data, err := c.client.Get(ctx, productKey(productName)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrCacheDisabled
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var analysis common.ProductAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	return &analysis, nil
}

// Set 快取產品分析結果
func (c *ProductCache) Set(ctx context.Context, analysis *common.ProductAnalysis) error {
	if c == nil || c.client == nil || analysis == nil {
		return nil
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if err := c.client.Set(ctx, productKey(analysis.ProductName), data, c.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Clear 刪除所有產品分析快取
func (c *ProductCache) Clear(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, productKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	return iter.Err()
}

// Close 關閉 Redis 連接
func (c *ProductCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
