package analysis

import (
	"context"
	"strings"

	"ingredient-iq/internal/core/store"
	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"go.uber.org/zap"
)

// Resolver 成分解析器
// 把自由格式的成分名稱解析為知識庫的標準紀錄
type Resolver struct {
	store     store.KnowledgeStore
	threshold float64
}

// NewResolver 創建成分解析器
func NewResolver(knowledgeStore store.KnowledgeStore, cfg config.AnalysisConfig) *Resolver {
	return &Resolver{
		store:     knowledgeStore,
		threshold: cfg.SimilarityThreshold,
	}
}

// Normalize 正規化成分名稱：去空白、轉小寫、合併連續空白、去標點（保留連字號）
func (r *Resolver) Normalize(raw string) string {
	var sb strings.Builder
	for _, ch := range strings.ToLower(raw) {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '-':
			sb.WriteRune(ch)
		case ch == ' ', ch == '\t', ch == '\n':
			sb.WriteRune(' ')
		default:
			// 其餘標點一律去除
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Resolve 解析一個原始成分名稱，保證總是回傳紀錄
// 解析失敗以 Unknown 哨兵代替，部分資料缺失不能中斷整體分析
func (r *Resolver) Resolve(ctx context.Context, raw string) common.IngredientRecord {
	normalized := r.Normalize(raw)
	if normalized == "" {
		return common.UnknownIngredient(raw)
	}

	// 先做精確比對（標準名稱與別名）
	if rec, ok := r.store.Lookup(ctx, normalized); ok {
		return rec
	}

	// 再做近似查詢，相似度需超過門檻才接受
	rec, sim, err := r.store.Nearest(ctx, normalized)
	if err != nil {
		common.LogWarn("近似查詢失敗，視為未知成分",
			zap.Error(err),
			zap.String("ingredient", normalized),
		)
		return common.UnknownIngredient(raw)
	}
	if sim >= r.threshold && !rec.IsUnknown() {
		common.LogDebug("近似比對命中",
			zap.String("輸入", normalized),
			zap.String("標準名稱", rec.Name),
			zap.Float64("相似度", sim),
		)
		return rec
	}

	common.LogDebug("成分無法解析",
		zap.String("輸入", normalized),
		zap.Float64("最佳相似度", sim),
	)
	return common.UnknownIngredient(raw)
}
