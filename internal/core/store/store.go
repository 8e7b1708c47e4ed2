package store

import (
	"context"

	"ingredient-iq/internal/pkg/common"
)

// CandidateProduct 替代品查詢回傳的候選產品
type CandidateProduct struct {
	Name        string    `json:"name"`
	SafetyScore float64   `json:"safety_score"`
	Category    string    `json:"category"`
	Embedding   []float64 `json:"embedding,omitempty"`
}

// KnowledgeStore 成分知識庫
// 分析路徑只讀取，必須支援無鎖併發讀取；AddProduct 是唯一的寫入口
type KnowledgeStore interface {
	// Lookup 以正規化名稱做精確查詢（含別名）
	Lookup(ctx context.Context, name string) (common.IngredientRecord, bool)

	// Nearest 以語意向量做近似查詢，回傳最相似的紀錄與相似度
	Nearest(ctx context.Context, name string) (common.IngredientRecord, float64, error)

	// Candidates 依類別取得 safetyScore < ceiling 的候選產品
	Candidates(ctx context.Context, category string, ceiling float64) ([]CandidateProduct, error)

	// AddProduct 記錄已分析的產品，作為之後的替代品候選
	AddProduct(ctx context.Context, product CandidateProduct) error
}
