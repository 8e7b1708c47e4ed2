package product

import (
	"context"
	"net/http"
	"strings"

	"ingredient-iq/internal/core/ai/cache"
	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Analyzer 產品分析服務介面
// 以介面注入方便測試時替換
type Analyzer interface {
	AnalyzeProduct(ctx context.Context, productName string) (*common.ProductAnalysis, error)
	AnalyzeIngredients(ctx context.Context, productName string, ingredients []string) *common.ProductAnalysis
	AnalyzeIngredient(ctx context.Context, raw string) common.IngredientAnalysis
	ClearProductCache(ctx context.Context) error
}

// AnalyzeProductRequest 依產品名稱分析
type AnalyzeProductRequest struct {
	ProductName string `json:"product_name" binding:"required"` // 欲分析的產品名稱
}

// AnalyzeIngredientsRequest 依成分清單分析
type AnalyzeIngredientsRequest struct {
	ProductName string   `json:"product_name,omitempty"` // 產品名稱（可省略）
	Ingredients []string `json:"ingredients"`            // 成分清單，空清單是合法輸入
}

// ClearCacheRequest 清除快取請求
type ClearCacheRequest struct {
	Password string `json:"password" binding:"required"` // 管理密碼
}

// Handler 產品分析處理程序
type Handler struct {
	config       *config.Config
	analyzer     Analyzer
	cacheManager *cache.Manager
}

// NewHandler 創建產品分析處理程序
func NewHandler(cfg *config.Config, analyzer Analyzer, cacheManager *cache.Manager) *Handler {
	return &Handler{
		config:       cfg,
		analyzer:     analyzer,
		cacheManager: cacheManager,
	}
}

// requestID 取得或生成請求 ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = common.GenerateUUID()
		c.Header("X-Request-ID", id)
	}
	return id
}

// HandleAnalyzeProduct 依產品名稱執行完整分析
func (h *Handler) HandleAnalyzeProduct(c *gin.Context) {
	reqID := requestID(c)

	common.LogInfo("開始處理產品分析請求",
		zap.String("request_id", reqID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req AnalyzeProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.analyzer.AnalyzeProduct(c.Request.Context(), req.ProductName)
	if err != nil {
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if common.IsCode(err, common.ErrCodeExtractionUnavailable) {
			common.LogError("產品分析失敗：成分萃取不可用",
				zap.Error(err),
				zap.String("request_id", reqID),
			)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Ingredient extraction unavailable",
				"code":  common.ErrCodeExtractionUnavailable,
			})
			return
		}
		common.LogError("產品分析失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Product analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleAnalyzeIngredients 依成分清單執行分析
// 不經過成分萃取，必定成功
func (h *Handler) HandleAnalyzeIngredients(c *gin.Context) {
	reqID := requestID(c)

	var req AnalyzeIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	productName := req.ProductName
	if strings.TrimSpace(productName) == "" {
		productName = "Custom Product"
	}

	result := h.analyzer.AnalyzeIngredients(c.Request.Context(), productName, req.Ingredients)
	c.JSON(http.StatusOK, result)
}

// HandleIngredientLookup 查詢單一成分
func (h *Handler) HandleIngredientLookup(c *gin.Context) {
	name := c.Param("name")
	if strings.TrimSpace(name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient name is required"})
		return
	}

	analysis := h.analyzer.AnalyzeIngredient(c.Request.Context(), name)
	c.JSON(http.StatusOK, analysis)
}

// HandleClearCache 清除所有快取（需要管理密碼）
func (h *Handler) HandleClearCache(c *gin.Context) {
	reqID := requestID(c)

	// 未設定管理密碼時直接拒絕，避免裸奔
	if h.config.Admin.Password == "" {
		common.LogError("管理密碼未設定，拒絕清除快取",
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin password not configured"})
		return
	}

	var req ClearCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Password != h.config.Admin.Password {
		common.LogWarn("清除快取驗證失敗",
			zap.String("request_id", reqID),
			zap.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	h.cacheManager.Clear()
	if err := h.analyzer.ClearProductCache(c.Request.Context()); err != nil {
		common.LogError("產品快取清除失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear product cache"})
		return
	}

	common.LogInfo("快取已清除",
		zap.String("request_id", reqID),
	)
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
