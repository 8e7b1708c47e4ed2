package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"
)

// deduplicator 記錄近期請求指紋，擋掉時間窗內的重複 POST
type deduplicator struct {
	mu       sync.Mutex
	requests map[string]time.Time
	window   time.Duration
}

func newDeduplicator(cfg *config.Config) *deduplicator {
	window := 1 * time.Second
	if cfg != nil && cfg.DedupWindow > 0 {
		window = cfg.DedupWindow
	}

	d := &deduplicator{
		requests: make(map[string]time.Time),
		window:   window,
	}
	go d.startCleanup()
	return d
}

// startCleanup 定期清掉過期指紋，避免 map 無限增長
func (d *deduplicator) startCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		d.mu.Lock()
		for k, t := range d.requests {
			if now.Sub(t) > 10*d.window {
				delete(d.requests, k)
			}
		}
		d.mu.Unlock()
	}
}

// seen 回報指紋是否在時間窗內出現過，並更新記錄
func (d *deduplicator) seen(fingerprint string) bool {
	now := time.Now()
	d.mu.Lock()
	defer d.mu.Unlock()

	if lastTime, exists := d.requests[fingerprint]; exists && now.Sub(lastTime) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// Deduplication 請求去重中間件
// 相同路徑加相同請求體在 DedupWindow 內只放行一次
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	d := newDeduplicator(cfg)

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}

			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		if d.seen(fingerprint) {
			c.JSON(429, gin.H{
				"error": "Request too frequent",
				"code":  "TOO_MANY_REQUESTS",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
