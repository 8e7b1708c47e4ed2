package analysis

import (
	"context"
	"sort"
	"strings"

	"ingredient-iq/internal/core/store"
	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"go.uber.org/zap"
)

// Ranker 替代品排名器
type Ranker struct {
	store store.KnowledgeStore
	topK  int
}

// NewRanker 創建替代品排名器
func NewRanker(knowledgeStore store.KnowledgeStore, cfg config.RankerConfig) *Ranker {
	return &Ranker{
		store: knowledgeStore,
		topK:  cfg.MaxAlternatives,
	}
}

// Rank 取得並排序替代品候選
// 排序鍵：分數升冪 → 與產品輪廓的相似度降冪 → 名稱字典序，保證全序
// 知識庫失敗時降級為空清單，不讓替代品查詢拖垮主要的安全分析
func (r *Ranker) Rank(ctx context.Context, productName, category string, profile []float64, ceiling float64) []common.AlternativeCandidate {
	candidates, err := r.store.Candidates(ctx, category, ceiling)
	if err != nil {
		common.LogWarn("替代品查詢失敗，回傳空清單",
			zap.Error(err),
			zap.String("category", category),
		)
		return []common.AlternativeCandidate{}
	}

	// 排除被分析的產品本身
	filtered := candidates[:0]
	for _, c := range candidates {
		if strings.EqualFold(c.Name, productName) {
			continue
		}
		filtered = append(filtered, c)
	}

	similarities := make(map[string]float64, len(filtered))
	for _, c := range filtered {
		similarities[c.Name] = store.Cosine(profile, c.Embedding)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].SafetyScore != filtered[j].SafetyScore {
			return filtered[i].SafetyScore < filtered[j].SafetyScore
		}
		if similarities[filtered[i].Name] != similarities[filtered[j].Name] {
			return similarities[filtered[i].Name] > similarities[filtered[j].Name]
		}
		return filtered[i].Name < filtered[j].Name
	})

	if len(filtered) > r.topK {
		filtered = filtered[:r.topK]
	}

	result := make([]common.AlternativeCandidate, len(filtered))
	for i, c := range filtered {
		result[i] = common.AlternativeCandidate{
			Name:        c.Name,
			SafetyScore: c.SafetyScore,
			Category:    c.Category,
		}
	}
	return result
}
