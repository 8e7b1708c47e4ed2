package analysis

import "strings"

// 產品名稱關鍵字 → 類別，先到先得
var nameCategoryHints = []struct {
	keyword  string
	category string
}{
	{"cleanser", "cleanser"},
	{"cleansing", "cleanser"},
	{"face wash", "cleanser"},
	{"micellar", "cleanser"},
	{"sunscreen", "sunscreen"},
	{"spf", "sunscreen"},
	{"serum", "serum"},
	{"essence", "serum"},
	{"toner", "toner"},
	{"moisturizer", "moisturizer"},
	{"moisturiser", "moisturizer"},
	{"cream", "moisturizer"},
	{"lotion", "moisturizer"},
}

// InferCategory 從產品名稱與成分輪廓推斷類別
// 名稱關鍵字優先，其次看成分特徵，推不出來就落回泛用的 skincare
func InferCategory(productName string, ingredientNames []string) string {
	name := strings.ToLower(productName)
	for _, hint := range nameCategoryHints {
		if strings.Contains(name, hint.keyword) {
			return hint.category
		}
	}

	joined := strings.ToLower(strings.Join(ingredientNames, " "))
	switch {
	case strings.Contains(joined, "salicylic") || strings.Contains(joined, "glycolic") || strings.Contains(joined, "lactic"):
		return "serum"
	case strings.Contains(joined, "sulfate"):
		return "cleanser"
	case strings.Contains(joined, "ceramide") || strings.Contains(joined, "squalane"):
		return "moisturizer"
	}
	return "skincare"
}
