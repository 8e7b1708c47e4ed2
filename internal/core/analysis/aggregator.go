package analysis

import (
	"fmt"
	"math"
	"strings"

	"ingredient-iq/internal/pkg/common"
)

// Aggregator 將逐成分結果彙總為產品層級的分數、摘要與過敏原警告
type Aggregator struct{}

// NewAggregator 創建彙總器
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate 彙總成分分析
// 分數為算術平均、四捨五入到小數一位；空清單回傳 0 分
// 摘要與警告的名稱順序固定跟隨輸入順序，同樣輸入必得同樣輸出
func (a *Aggregator) Aggregate(items []common.IngredientAnalysis) (score float64, summary string, warnings []string) {
	warnings = []string{}
	if len(items) == 0 {
		return 0, "No high-risk ingredients detected.", warnings
	}

	var sum float64
	var highNames, moderateNames []string
	seenAllergens := make(map[string]bool)

	for _, item := range items {
		sum += item.SafetyScore

		switch item.RiskLevel {
		case common.RiskHigh:
			highNames = append(highNames, item.Name)
		case common.RiskModerate:
			moderateNames = append(moderateNames, item.Name)
		}

		for _, allergen := range item.Allergens {
			if !seenAllergens[allergen] {
				seenAllergens[allergen] = true
				warnings = append(warnings, allergen)
			}
		}
	}

	score = math.Round(sum/float64(len(items))*10) / 10

	// High 成分存在時一律只報 High，數量多寡不影響優先序
	reported := highNames
	if len(reported) == 0 {
		reported = moderateNames
	}
	if len(reported) > 0 {
		summary = fmt.Sprintf("High-risk ingredients detected: %s. Consider alternatives.", strings.Join(reported, ", "))
	} else {
		summary = "No high-risk ingredients detected."
	}

	return score, summary, warnings
}
