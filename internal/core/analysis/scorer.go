package analysis

import (
	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"
)

// Scorer 安全評分器
// 分級門檻與未知成分的替代分數來自設定，不寫死在程式碼
type Scorer struct {
	cfg config.AnalysisConfig
}

// NewScorer 創建安全評分器
func NewScorer(cfg config.AnalysisConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// TierFor 依分數回傳風險等級，下界不含、上界含
func (s *Scorer) TierFor(score float64) common.RiskLevel {
	switch {
	case score <= s.cfg.SafeMax:
		return common.RiskSafe
	case score <= s.cfg.LowMax:
		return common.RiskLow
	case score <= s.cfg.ModerateMax:
		return common.RiskModerate
	default:
		return common.RiskHigh
	}
}

// Score 將解析後的紀錄轉為成分分析結果
// 未知成分給中性替代分數，等級保持 Unknown，讓單一未解析成分不會歸零或撐爆整體平均
func (s *Scorer) Score(rec common.IngredientRecord) common.IngredientAnalysis {
	analysis := common.IngredientAnalysis{
		Name:      rec.Name,
		Allergens: rec.Allergens,
		Benefits:  rec.Benefits,
		Risks:     rec.Risks,
		SkinTypes: rec.SkinTypes,
	}
	if analysis.Allergens == nil {
		analysis.Allergens = []string{}
	}
	if analysis.SkinTypes == nil {
		analysis.SkinTypes = []string{}
	}

	if rec.IsUnknown() {
		analysis.SafetyScore = s.cfg.UnknownScore
		analysis.RiskLevel = common.RiskUnknown
		return analysis
	}

	analysis.SafetyScore = *rec.BaseRiskScore
	// 等級一律從分數重算，確保與門檻映射一致
	analysis.RiskLevel = s.TierFor(analysis.SafetyScore)
	return analysis
}
