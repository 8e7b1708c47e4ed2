package extraction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ingredient-iq/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// geminiResponse 組出最小可解析的 Gemini 回應
func geminiResponse(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{
						{"text": text},
					},
				},
			},
		},
	})
	return string(body)
}

func testExtractionConfig(baseURL string) *config.Config {
	return &config.Config{
		Gemini: config.GeminiConfig{
			Enabled:   true,
			APIKey:    "test-key",
			Model:     "gemini-test",
			MaxTokens: 1024,
			Timeout:   5 * time.Second,
			BaseURL:   baseURL,
		},
	}
}

func TestExtractIngredients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiResponse(`["Water", "Glycerin", "Fragrance"]`)))
	}))
	defer server.Close()

	svc := NewService(testExtractionConfig(server.URL), nil)

	ingredients, err := svc.ExtractIngredients(context.Background(), "Test Toner")
	require.NoError(t, err)
	assert.Equal(t, []string{"Water", "Glycerin", "Fragrance"}, ingredients)
}

func TestExtractIngredientsFencedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiResponse("```json\n[\"Water\", \"Niacinamide\"]\n```")))
	}))
	defer server.Close()

	svc := NewService(testExtractionConfig(server.URL), nil)

	ingredients, err := svc.ExtractIngredients(context.Background(), "Test Serum")
	require.NoError(t, err)
	assert.Equal(t, []string{"Water", "Niacinamide"}, ingredients)
}

func TestExtractIngredientsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(testExtractionConfig(server.URL), nil)

	_, err := svc.ExtractIngredients(context.Background(), "Test Toner")
	assert.Error(t, err)
}

func TestExtractIngredientsNoArrayInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiResponse("抱歉，我不認識這個產品")))
	}))
	defer server.Close()

	svc := NewService(testExtractionConfig(server.URL), nil)

	_, err := svc.ExtractIngredients(context.Background(), "Nonexistent Product")
	assert.Error(t, err)
}

func TestExtractIngredientsRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiResponse(`["Water"]`)))
	}))
	defer server.Close()

	cfg := testExtractionConfig(server.URL)
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Window: time.Minute}
	svc := NewService(cfg, nil)

	_, err := svc.ExtractIngredients(context.Background(), "First Product")
	require.NoError(t, err)

	// 時間窗內的第二個請求要被擋下
	_, err = svc.ExtractIngredients(context.Background(), "Second Product")
	assert.Error(t, err)
}

func TestParseIngredientList(t *testing.T) {
	ingredients, err := parseIngredientList(`["Water", "Glycerin"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Water", "Glycerin"}, ingredients)

	// 雜訊項目被過濾
	ingredients, err = parseIngredientList(`["Water", "may contain traces of nuts", "x"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Water"}, ingredients)

	// 全是雜訊視為失敗
	_, err = parseIngredientList(`["..", "x"]`)
	assert.Error(t, err)

	_, err = parseIngredientList("not json at all")
	assert.Error(t, err)
}

func TestIsValidIngredientName(t *testing.T) {
	assert.True(t, isValidIngredientName("Water"))
	assert.True(t, isValidIngredientName("Aloe Barbadensis (Leaf) Juice"))
	assert.False(t, isValidIngredientName("ab"))
	assert.False(t, isValidIngredientName("Aloe (Barbadensis Leaf Juice"))
	assert.False(t, isValidIngredientName("other ingredients not listed"))
	assert.False(t, isValidIngredientName("--- !!! ---"))
}
