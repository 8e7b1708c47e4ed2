package store

import "ingredient-iq/internal/pkg/common"

// record 建立種子紀錄的簡短建構子
func record(name string, aliases []string, score float64, risk common.RiskLevel, allergens []string, benefits, risks string, skinTypes []string) common.IngredientRecord {
	return common.IngredientRecord{
		Name:          name,
		Aliases:       aliases,
		BaseRiskScore: common.Float64Ptr(score),
		RiskLevel:     risk,
		Allergens:     allergens,
		Benefits:      benefits,
		Risks:         risks,
		SkinTypes:     skinTypes,
	}
}

// seedRecords 內建的化妝品成分知識庫
// 分數以 0 為最安全，INCI 別名一併收錄以吸收命名歧義
func seedRecords() []common.IngredientRecord {
	none := []string{}
	all := []string{common.SkinAll}
	gentle := []string{common.SkinAll, common.SkinSensitive}
	resilient := []string{common.SkinOily, common.SkinCombination}

	return []common.IngredientRecord{
		record("water", []string{"aqua", "eau"}, 0, common.RiskSafe, none,
			"Solvent and hydration base of most formulas", "None known", all),
		record("glycerin", []string{"glycerol", "glycerine"}, 1, common.RiskLow, none,
			"Humectant that draws moisture into the skin", "Sticky feel at high concentrations", gentle),
		record("hyaluronic acid", []string{"sodium hyaluronate", "hyaluronan"}, 1, common.RiskLow, none,
			"Binds water for deep hydration and plumping", "None known at cosmetic concentrations", gentle),
		record("ceramide np", []string{"ceramide", "ceramide 3"}, 1, common.RiskLow, none,
			"Restores the skin barrier and locks in moisture", "None known", gentle),
		record("squalane", nil, 1, common.RiskLow, none,
			"Lightweight emollient close to the skin's own sebum", "None known", gentle),
		record("panthenol", []string{"provitamin b5", "pro-vitamin b5", "dexpanthenol"}, 1, common.RiskLow, none,
			"Soothes and supports barrier repair", "None known", gentle),
		record("allantoin", nil, 1, common.RiskLow, none,
			"Calms irritation and promotes healing", "None known", gentle),
		record("betaine", nil, 1, common.RiskLow, none,
			"Gentle humectant and texture enhancer", "None known", gentle),
		record("niacinamide", []string{"nicotinamide", "vitamin b3"}, 2, common.RiskLow, none,
			"Brightens tone, regulates oil and strengthens the barrier", "Flushing possible above 10%", all),
		record("tocopherol", []string{"vitamin e", "tocopheryl acetate"}, 2, common.RiskLow, none,
			"Antioxidant that protects oils from oxidation", "Rare contact sensitivity", all),
		record("salicylic acid", []string{"bha", "beta hydroxy acid"}, 3, common.RiskLow, none,
			"Oil-soluble exfoliant that clears pores", "Dryness and peeling with overuse", resilient),
		record("lactic acid", nil, 3, common.RiskLow, none,
			"Mild exfoliating alpha hydroxy acid", "Sun sensitivity, mild stinging", []string{common.SkinDry, common.SkinCombination}),
		record("glycolic acid", []string{"aha"}, 3, common.RiskLow, none,
			"Exfoliates and improves texture", "Irritation and photosensitivity", resilient),
		record("aloe barbadensis leaf juice", []string{"aloe vera", "aloe"}, 3, common.RiskLow, none,
			"Soothing and hydrating plant extract", "Rare allergy", gentle),
		record("chamomilla recutita flower extract", []string{"chamomile extract", "chamomile"}, 3, common.RiskLow, none,
			"Calming anti-inflammatory botanical", "Allergy in ragweed-sensitive users", gentle),
		record("camellia sinensis leaf extract", []string{"green tea extract", "green tea"}, 3, common.RiskLow, none,
			"Antioxidant botanical extract", "None known", all),
		record("simmondsia chinensis seed oil", []string{"jojoba oil", "jojoba"}, 4, common.RiskModerate, none,
			"Balancing plant oil similar to sebum", "May clog pores on very oily skin", []string{common.SkinDry, common.SkinCombination}),
		record("phenoxyethanol", nil, 3, common.RiskLow, none,
			"Broad-spectrum preservative", "Irritation at high concentrations", all),
		record("benzyl alcohol", nil, 3, common.RiskLow, none,
			"Preservative and solvent", "Known contact allergen for some users", all),
		record("potassium sorbate", nil, 3, common.RiskLow, none,
			"Mild food-grade preservative", "Rare irritation", all),
		record("retinyl palmitate", nil, 4, common.RiskModerate, none,
			"Gentler retinoid ester for anti-aging", "Sun sensitivity", []string{common.SkinDry, common.SkinCombination}),
		record("retinol", nil, 5, common.RiskModerate, none,
			"Gold-standard anti-aging active", "Irritation, peeling and sun sensitivity", resilient),
		record("methylparaben", []string{"parabens"}, 4, common.RiskModerate, []string{"parabens"},
			"Preservative with long track record", "Suspected endocrine concerns, contact allergy", all),
		record("propylparaben", nil, 4, common.RiskModerate, []string{"parabens"},
			"Preservative", "Suspected endocrine concerns, contact allergy", all),
		record("sodium laureth sulfate", []string{"sles"}, 4, common.RiskModerate, []string{"sulfates"},
			"Milder foaming surfactant", "Can strip the skin barrier", resilient),
		record("sodium lauryl sulfate", []string{"sls"}, 5, common.RiskModerate, []string{"sulfates"},
			"Strong foaming surfactant", "Known irritant, strips natural oils", []string{common.SkinOily}),
		record("benzoyl peroxide", nil, 6, common.RiskModerate, none,
			"Antibacterial acne treatment", "Bleaching, dryness, irritation", []string{common.SkinOily}),
		record("hydrogen peroxide", nil, 6, common.RiskModerate, none,
			"Oxidizing antiseptic", "Oxidative damage to skin with repeated use", none),
		record("alcohol denat", []string{"denatured alcohol", "sd alcohol 40"}, 7, common.RiskHigh, []string{"drying alcohol"},
			"Fast-evaporating solvent, matte finish", "Dries and disrupts the skin barrier", []string{common.SkinOily}),
		record("fragrance", []string{"parfum", "perfume", "aroma"}, 8, common.RiskHigh, []string{"fragrance"},
			"Scent", "Leading cause of cosmetic contact dermatitis", none),
		record("formaldehyde", nil, 8, common.RiskHigh, []string{"formaldehyde"},
			"Preservative (largely phased out)", "Carcinogen and strong sensitizer", none),
		record("dmdm hydantoin", nil, 8, common.RiskHigh, []string{"formaldehyde"},
			"Formaldehyde-releasing preservative", "Slowly releases formaldehyde", none),
		record("quaternium-15", nil, 8, common.RiskHigh, []string{"formaldehyde"},
			"Formaldehyde-releasing preservative", "Sensitizer, releases formaldehyde", none),
	}
}

// seedProducts 起始的替代品候選，之後分析過的產品會經由 AddProduct 補進來
func seedProducts() []CandidateProduct {
	products := []CandidateProduct{
		{Name: "CeraVe Moisturizing Cream", SafetyScore: 1.2, Category: "moisturizer"},
		{Name: "Vanicream Daily Facial Moisturizer", SafetyScore: 0.9, Category: "moisturizer"},
		{Name: "Simple Hydrating Light Moisturizer", SafetyScore: 1.8, Category: "moisturizer"},
		{Name: "Cetaphil Gentle Skin Cleanser", SafetyScore: 1.5, Category: "cleanser"},
		{Name: "La Roche-Posay Toleriane Hydrating Gentle Cleanser", SafetyScore: 1.1, Category: "cleanser"},
		{Name: "Garnier Micellar Cleansing Water", SafetyScore: 2.4, Category: "cleanser"},
		{Name: "The Ordinary Hyaluronic Acid 2% + B5", SafetyScore: 1.0, Category: "serum"},
		{Name: "The Ordinary Niacinamide 10% + Zinc 1%", SafetyScore: 1.6, Category: "serum"},
		{Name: "Paula's Choice 2% BHA Liquid Exfoliant", SafetyScore: 2.8, Category: "serum"},
		{Name: "EltaMD UV Clear SPF 46", SafetyScore: 1.7, Category: "sunscreen"},
		{Name: "Neutrogena Ultra Sheer Dry-Touch SPF 55", SafetyScore: 3.2, Category: "sunscreen"},
		{Name: "Thayers Witch Hazel Alcohol-Free Toner", SafetyScore: 2.1, Category: "toner"},
		{Name: "Avene Thermal Spring Water", SafetyScore: 0.5, Category: "skincare"},
		{Name: "The Inkey List Oat Cleansing Balm", SafetyScore: 1.4, Category: "skincare"},
	}
	for i := range products {
		products[i].Embedding = Embed(products[i].Category + " " + products[i].Name)
	}
	return products
}
