package api

import (
	"context"
	"net/http"
	"time"

	"ingredient-iq/internal/api/handlers/health"
	productHandler "ingredient-iq/internal/api/handlers/product"
	"ingredient-iq/internal/api/middleware"
	"ingredient-iq/internal/core/ai/cache"
	"ingredient-iq/internal/core/ai/extraction"
	"ingredient-iq/internal/core/analysis"
	"ingredient-iq/internal/core/store"
	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，純 JSON API 不需要更大
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager, products *cache.ProductCache) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求去重與限流
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("model", cfg.Gemini.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化知識庫
	knowledgeStore := store.NewMemoryStore()

	// 初始化成分萃取服務
	extractionSvc := extraction.NewService(cfg, cacheManager)

	// 初始化產品分析服務
	analysisSvc := analysis.NewService(cfg, extractionSvc, knowledgeStore, products)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		// 注入健康檢查所需的元件
		c.Set("config", cfg)
		c.Set("knowledge_store", knowledgeStore)
		c.Set("cache_manager", cacheManager)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := productHandler.NewHandler(cfg, analysisSvc, cacheManager)

		// 產品分析
		productGroup := api.Group("/product")
		{
			// 依產品名稱分析（經過成分萃取）
			productGroup.POST("/analyze", handler.HandleAnalyzeProduct)

			// 依成分清單分析
			productGroup.POST("/ingredients", handler.HandleAnalyzeIngredients)
		}

		// 單一成分查詢
		api.GET("/ingredient/:name", handler.HandleIngredientLookup)

		// 管理操作
		api.POST("/cache/clear", handler.HandleClearCache)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
