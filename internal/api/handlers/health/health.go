package health

import (
	"net/http"
	"runtime"
	"time"

	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Store     map[string]interface{} `json:"store,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// statsProvider 可回報統計資訊的元件
type statsProvider interface {
	Stats() map[string]interface{}
}

// cacheStatsProvider 可回報快取統計的元件
type cacheStatsProvider interface {
	GetStats() map[string]interface{}
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	// 知識庫統計（若有注入）
	if v, exists := c.Get("knowledge_store"); exists {
		if provider, ok := v.(statsProvider); ok {
			response.Store = provider.Stats()
		}
	}

	// 快取統計（若有注入）
	if v, exists := c.Get("cache_manager"); exists {
		if provider, ok := v.(cacheStatsProvider); ok {
			response.Cache = provider.GetStats()
		}
	}

	// 記錄請求
	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器
func ReadinessCheck(c *gin.Context) {
	// 知識庫是行程內資料，載入完成即就緒
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
