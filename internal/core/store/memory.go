package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"ingredient-iq/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 內建知識庫的記憶體實作
// 成分紀錄在建構時載入後不再變動，讀取不需要加鎖；
// products 會被 AddProduct 寫入，由 RWMutex 保護
type MemoryStore struct {
	records []common.IngredientRecord
	byName  map[string]int // 正規化名稱（含別名）→ records 索引
	vectors [][]float64    // 與 records 對齊的語意向量

	mu       sync.RWMutex
	products map[string]CandidateProduct // 小寫名稱 → 候選產品
}

// NewMemoryStore 建立並載入種子資料
func NewMemoryStore() *MemoryStore {
	records := seedRecords()
	s := &MemoryStore{
		records:  records,
		byName:   make(map[string]int, len(records)*2),
		vectors:  make([][]float64, len(records)),
		products: make(map[string]CandidateProduct),
	}

	for i, rec := range records {
		s.byName[rec.Name] = i
		for _, alias := range rec.Aliases {
			s.byName[strings.ToLower(alias)] = i
		}
		s.vectors[i] = Embed(rec.Name)
	}

	for _, p := range seedProducts() {
		s.products[strings.ToLower(p.Name)] = p
	}

	common.LogInfo("知識庫已載入",
		zap.Int("成分數", len(s.records)),
		zap.Int("候選產品數", len(s.products)),
	)

	return s
}

// Lookup 精確查詢，name 必須已正規化為小寫
func (s *MemoryStore) Lookup(ctx context.Context, name string) (common.IngredientRecord, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return common.IngredientRecord{}, false
	}
	return s.records[idx], true
}

// Nearest 對所有成分向量做餘弦相似度掃描
// 種子資料量小，線性掃描比建索引便宜
func (s *MemoryStore) Nearest(ctx context.Context, name string) (common.IngredientRecord, float64, error) {
	if err := ctx.Err(); err != nil {
		return common.IngredientRecord{}, 0, err
	}

	query := Embed(name)
	bestIdx := -1
	bestSim := -1.0
	for i, vec := range s.vectors {
		if sim := Cosine(query, vec); sim > bestSim {
			bestIdx = i
			bestSim = sim
		}
	}
	if bestIdx < 0 {
		return common.IngredientRecord{}, 0, nil
	}
	return s.records[bestIdx], bestSim, nil
}

// Candidates 依類別過濾且 safetyScore 嚴格小於 ceiling
// category 為空時不過濾類別
func (s *MemoryStore) Candidates(ctx context.Context, category string, ceiling float64) ([]CandidateProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]CandidateProduct, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if p.SafetyScore >= ceiling {
			continue
		}
		candidates = append(candidates, p)
	}

	// map 迭代順序不定，先以名稱排序讓回傳順序確定
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})
	return candidates, nil
}

// AddProduct 新增或覆蓋已分析的產品
func (s *MemoryStore) AddProduct(ctx context.Context, product CandidateProduct) error {
	name := strings.TrimSpace(product.Name)
	if name == "" {
		return common.NewValidationError("product name is required")
	}
	if len(product.Embedding) == 0 {
		product.Embedding = Embed(product.Category + " " + name)
	}

	s.mu.Lock()
	s.products[strings.ToLower(name)] = product
	s.mu.Unlock()

	common.LogDebug("候選產品已記錄",
		zap.String("name", name),
		zap.String("category", product.Category),
		zap.Float64("safety_score", product.SafetyScore),
	)
	return nil
}

// Stats 回傳知識庫統計，健康檢查用
func (s *MemoryStore) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"ingredients": len(s.records),
		"products":    len(s.products),
	}
}
