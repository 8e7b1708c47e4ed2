package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"ingredient-iq/internal/core/ai/cache"
	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"go.uber.org/zap"
)

// promptTemplate 成分萃取提示詞
// 要求模型只回傳 JSON 陣列，方便後續解析
const promptTemplate = `你是化妝品成分查詢助手。請列出產品「%s」的完整成分表（INCI 英文名稱）。
要求：
1. 只回傳 JSON 字串陣列，不要任何其他文字或說明
2. 成分名稱使用標準 INCI 英文名稱
3. 按照含量由高到低排列
4. 如果不確定該產品，回傳最可能的典型配方
範例輸出：["Water", "Glycerin", "Niacinamide"]`

// 萃取結果的快取鍵前綴
const cacheKeyPrefix = "extract:"

// Service 成分萃取服務
// 包裝 Gemini 客戶端，加上快取、頻率限制與結果清洗
type Service struct {
	config       *config.Config
	client       *GeminiClient
	cacheManager *cache.Manager
	mu           sync.Mutex
	lastRequest  time.Time
}

// NewService 創建成分萃取服務
func NewService(cfg *config.Config, cacheManager *cache.Manager) *Service {
	return &Service{
		config:       cfg,
		client:       NewGeminiClient(cfg),
		cacheManager: cacheManager,
	}
}

// ExtractIngredients 萃取產品成分清單
func (s *Service) ExtractIngredients(ctx context.Context, productName string) ([]string, error) {
	name := strings.ToLower(strings.TrimSpace(productName))
	cacheKey := cacheKeyPrefix + name

	// 檢查快取
	if s.config.Cache.Enabled && s.cacheManager != nil {
		if val, err := s.cacheManager.Get(ctx, cacheKey); err == nil && val != "" {
			var cached []string
			if err := common.ParseJSON(val, &cached); err == nil {
				return cached, nil
			}
		}
	}

	if err := s.checkRequestRate(); err != nil {
		return nil, err
	}

	content, err := s.client.GenerateContent(ctx, fmt.Sprintf(promptTemplate, productName))
	if err != nil {
		return nil, err
	}

	ingredients, err := parseIngredientList(content)
	if err != nil {
		common.LogError("成分清單解析失敗",
			zap.Error(err),
			zap.String("product", productName),
		)
		return nil, err
	}

	common.LogInfo("成分萃取完成",
		zap.String("product", productName),
		zap.Int("ingredient_count", len(ingredients)),
	)

	// 寫入快取
	if s.config.Cache.Enabled && s.cacheManager != nil {
		if val, err := common.ToJSON(ingredients); err == nil {
			_ = s.cacheManager.Set(ctx, cacheKey, val)
		}
	}

	return ingredients, nil
}

// checkRequestRate 檢查請求頻率
func (s *Service) checkRequestRate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.config.RateLimit.Enabled && now.Sub(s.lastRequest) < s.config.RateLimit.Window {
		return errors.New("request rate limit exceeded")
	}

	s.lastRequest = now
	return nil
}

// parseIngredientList 從模型輸出解析成分清單
// 模型偶爾會夾帶說明文字或 markdown 圍欄，先擷取 JSON 陣列再解析
func parseIngredientList(content string) ([]string, error) {
	raw := common.ExtractJSONArray(content)
	if raw == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var names []string
	if err := common.ParseJSON(raw, &names); err != nil {
		return nil, fmt.Errorf("failed to parse ingredient list: %w", err)
	}

	// 過濾明顯不是成分名稱的項目
	result := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if isValidIngredientName(n) {
			result = append(result, n)
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no valid ingredients in response")
	}
	return result, nil
}

// isValidIngredientName 判斷字串是否像成分名稱
// 過濾模型輸出常見的雜訊：過長片語、未配對括號、說明文字
func isValidIngredientName(name string) bool {
	if len(name) < 3 || len(name) > 80 {
		return false
	}

	// 括號必須配對
	if strings.Count(name, "(") != strings.Count(name, ")") {
		return false
	}

	// 說明文字的常見特徵
	lower := strings.ToLower(name)
	for _, artifact := range []string{"ingredient", "may contain", "note:", "etc.", "and more", "..."} {
		if strings.Contains(lower, artifact) {
			return false
		}
	}

	// 字母數字比例過低多半是雜訊
	alnum := 0
	for _, ch := range name {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			alnum++
		}
	}
	return float64(alnum)/float64(len([]rune(name))) >= 0.5
}
