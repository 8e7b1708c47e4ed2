package common

import "strings"

// RiskLevel 風險等級
type RiskLevel string

const (
	RiskSafe     RiskLevel = "Safe"
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskUnknown  RiskLevel = "Unknown"
)

// 適用膚質
const (
	SkinAll         = "all"
	SkinDry         = "dry"
	SkinOily        = "oily"
	SkinCombination = "combination"
	SkinSensitive   = "sensitive"
)

// IngredientRecord 成分知識庫紀錄，載入後不可變
type IngredientRecord struct {
	Name          string    `json:"name"`
	Aliases       []string  `json:"aliases,omitempty"`
	BaseRiskScore *float64  `json:"base_risk_score,omitempty"` // nil 代表未知成分
	RiskLevel     RiskLevel `json:"risk_level"`
	Allergens     []string  `json:"allergens"`
	Benefits      string    `json:"benefits"`
	Risks         string    `json:"risks"`
	SkinTypes     []string  `json:"skin_types"`
}

// IsUnknown 是否為未知成分的哨兵紀錄
func (r IngredientRecord) IsUnknown() bool {
	return r.BaseRiskScore == nil
}

// UnknownIngredient 建立未知成分的哨兵紀錄
// 名稱保留使用者輸入（僅去除前後空白），方便前端對照
func UnknownIngredient(raw string) IngredientRecord {
	return IngredientRecord{
		Name:      strings.TrimSpace(raw),
		RiskLevel: RiskUnknown,
		Allergens: []string{},
		SkinTypes: []string{},
	}
}

// IngredientAnalysis 單一成分的分析結果（每次分析重新產生，不落地）
type IngredientAnalysis struct {
	Name        string    `json:"name"`
	SafetyScore float64   `json:"safety_score"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Allergens   []string  `json:"allergens"`
	Benefits    string    `json:"benefits"`
	Risks       string    `json:"risks"`
	SkinTypes   []string  `json:"skin_types"`
}

// AlternativeCandidate 替代產品候選
// safety_score 與 overall_safety_score 同一量尺，越低越安全
type AlternativeCandidate struct {
	Name        string  `json:"name"`
	SafetyScore float64 `json:"safety_score"`
	Category    string  `json:"category"`
}

// ProductAnalysis 產品分析結果，為 API 的輸出契約
// 欄位名稱即 wire format，不可任意更動
type ProductAnalysis struct {
	ProductName         string                 `json:"product_name"`
	IngredientsAnalysis []IngredientAnalysis   `json:"ingredients_analysis"`
	OverallSafetyScore  float64                `json:"overall_safety_score"`
	RiskSummary         string                 `json:"risk_summary"`
	AllergenWarnings    []string               `json:"allergen_warnings"`
	Alternatives        []AlternativeCandidate `json:"alternatives"`
}

// FormatIngredientNames 將成分分析列表轉為逗號分隔的名稱字串（記錄用）
func FormatIngredientNames(items []IngredientAnalysis) string {
	if len(items) == 0 {
		return ""
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return strings.Join(names, ", ")
}

// Float64Ptr 回傳 float64 指標，建立知識庫紀錄時使用
func Float64Ptr(v float64) *float64 {
	return &v
}
