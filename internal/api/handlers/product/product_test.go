package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAnalyzer 測試用的分析服務替身
type fakeAnalyzer struct {
	analysis   *common.ProductAnalysis
	err        error
	clearCalls int
}

func (f *fakeAnalyzer) AnalyzeProduct(ctx context.Context, productName string) (*common.ProductAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

func (f *fakeAnalyzer) AnalyzeIngredients(ctx context.Context, productName string, ingredients []string) *common.ProductAnalysis {
	return f.analysis
}

func (f *fakeAnalyzer) AnalyzeIngredient(ctx context.Context, raw string) common.IngredientAnalysis {
	return common.IngredientAnalysis{
		Name:        "fragrance",
		SafetyScore: 8,
		RiskLevel:   common.RiskHigh,
		Allergens:   []string{"fragrance"},
	}
}

func (f *fakeAnalyzer) ClearProductCache(ctx context.Context) error {
	f.clearCalls++
	return nil
}

func sampleAnalysis() *common.ProductAnalysis {
	return &common.ProductAnalysis{
		ProductName: "Test Product",
		IngredientsAnalysis: []common.IngredientAnalysis{
			{Name: "water", SafetyScore: 0, RiskLevel: common.RiskSafe, Allergens: []string{}},
			{Name: "fragrance", SafetyScore: 8, RiskLevel: common.RiskHigh, Allergens: []string{"fragrance"}},
		},
		OverallSafetyScore: 4.0,
		RiskSummary:        "High-risk ingredients detected: fragrance. Consider alternatives.",
		AllergenWarnings:   []string{"fragrance"},
		Alternatives:       []common.AlternativeCandidate{},
	}
}

func setupTestRouter(cfg *config.Config, analyzer Analyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewHandler(cfg, analyzer, nil)
	router.POST("/api/v1/product/analyze", handler.HandleAnalyzeProduct)
	router.POST("/api/v1/product/ingredients", handler.HandleAnalyzeIngredients)
	router.GET("/api/v1/ingredient/:name", handler.HandleIngredientLookup)
	router.POST("/api/v1/cache/clear", handler.HandleClearCache)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandleAnalyzeProduct(t *testing.T) {
	router := setupTestRouter(&config.Config{}, &fakeAnalyzer{analysis: sampleAnalysis()})

	w := doRequest(router, http.MethodPost, "/api/v1/product/analyze", `{"product_name":"Test Product"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result common.ProductAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Test Product", result.ProductName)
	assert.Equal(t, 4.0, result.OverallSafetyScore)
	assert.Equal(t, []string{"fragrance"}, result.AllergenWarnings)

	// 回應欄位名稱是對外契約
	body := w.Body.String()
	for _, field := range []string{
		"product_name", "ingredients_analysis", "overall_safety_score",
		"risk_summary", "allergen_warnings", "alternatives",
	} {
		assert.Contains(t, body, field)
	}
}

func TestHandleAnalyzeProductMissingName(t *testing.T) {
	router := setupTestRouter(&config.Config{}, &fakeAnalyzer{analysis: sampleAnalysis()})

	w := doRequest(router, http.MethodPost, "/api/v1/product/analyze", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyzeProductInvalidJSON(t *testing.T) {
	router := setupTestRouter(&config.Config{}, &fakeAnalyzer{analysis: sampleAnalysis()})

	w := doRequest(router, http.MethodPost, "/api/v1/product/analyze", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyzeProductExtractionUnavailable(t *testing.T) {
	analyzer := &fakeAnalyzer{err: common.WrapError(common.ErrExtractionUnavailable, assert.AnError)}
	router := setupTestRouter(&config.Config{}, analyzer)

	w := doRequest(router, http.MethodPost, "/api/v1/product/analyze", `{"product_name":"Test Product"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeExtractionUnavailable)
}

func TestHandleAnalyzeProductValidationError(t *testing.T) {
	analyzer := &fakeAnalyzer{err: common.NewValidationError("產品名稱至少需要 2 個字元")}
	router := setupTestRouter(&config.Config{}, analyzer)

	w := doRequest(router, http.MethodPost, "/api/v1/product/analyze", `{"product_name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyzeIngredients(t *testing.T) {
	router := setupTestRouter(&config.Config{}, &fakeAnalyzer{analysis: sampleAnalysis()})

	w := doRequest(router, http.MethodPost, "/api/v1/product/ingredients",
		`{"product_name":"Test Product","ingredients":["Water","Fragrance"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result common.ProductAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.IngredientsAnalysis, 2)
}

func TestHandleAnalyzeIngredientsEmptyListAllowed(t *testing.T) {
	router := setupTestRouter(&config.Config{}, &fakeAnalyzer{analysis: sampleAnalysis()})

	// 空成分清單是合法輸入
	w := doRequest(router, http.MethodPost, "/api/v1/product/ingredients", `{"ingredients":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleIngredientLookup(t *testing.T) {
	router := setupTestRouter(&config.Config{}, &fakeAnalyzer{analysis: sampleAnalysis()})

	w := doRequest(router, http.MethodGet, "/api/v1/ingredient/fragrance", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result common.IngredientAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "fragrance", result.Name)
	assert.Equal(t, common.RiskHigh, result.RiskLevel)
}

func TestHandleClearCachePasswordNotConfigured(t *testing.T) {
	router := setupTestRouter(&config.Config{}, &fakeAnalyzer{analysis: sampleAnalysis()})

	w := doRequest(router, http.MethodPost, "/api/v1/cache/clear", `{"password":"anything"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleClearCacheWrongPassword(t *testing.T) {
	cfg := &config.Config{Admin: config.AdminConfig{Password: "secret"}}
	router := setupTestRouter(cfg, &fakeAnalyzer{analysis: sampleAnalysis()})

	w := doRequest(router, http.MethodPost, "/api/v1/cache/clear", `{"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleClearCache(t *testing.T) {
	cfg := &config.Config{Admin: config.AdminConfig{Password: "secret"}}
	analyzer := &fakeAnalyzer{analysis: sampleAnalysis()}
	router := setupTestRouter(cfg, analyzer)

	w := doRequest(router, http.MethodPost, "/api/v1/cache/clear", `{"password":"secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, analyzer.clearCalls)
}
