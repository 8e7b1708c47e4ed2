package analysis

import (
	"context"
	"strings"
	"sync"
	"time"

	"ingredient-iq/internal/core/ai/cache"
	"ingredient-iq/internal/core/store"
	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"go.uber.org/zap"
)

// Extractor 成分萃取協作方
// 只有這個依賴可能讓整個分析失敗，其餘階段都是全函數
type Extractor interface {
	ExtractIngredients(ctx context.Context, productName string) ([]string, error)
}

// Service 產品分析服務
// 串接解析 → 評分 → 彙總 → 替代品排名的完整管線
type Service struct {
	config     *config.Config
	extractor  Extractor
	store      store.KnowledgeStore
	resolver   *Resolver
	scorer     *Scorer
	aggregator *Aggregator
	ranker     *Ranker
	products   *cache.ProductCache
}

// NewService 創建產品分析服務
func NewService(cfg *config.Config, extractor Extractor, knowledgeStore store.KnowledgeStore, products *cache.ProductCache) *Service {
	return &Service{
		config:     cfg,
		extractor:  extractor,
		store:      knowledgeStore,
		resolver:   NewResolver(knowledgeStore, cfg.Analysis),
		scorer:     NewScorer(cfg.Analysis),
		aggregator: NewAggregator(),
		ranker:     NewRanker(knowledgeStore, cfg.Ranker),
		products:   products,
	}
}

// AnalyzeProduct 依產品名稱執行完整分析
// 萃取失敗是唯一的致命錯誤；萃取成功後的所有階段保證產出結果
func (s *Service) AnalyzeProduct(ctx context.Context, productName string) (*common.ProductAnalysis, error) {
	name := strings.TrimSpace(productName)
	if len(name) < 2 {
		return nil, common.NewValidationError("產品名稱至少需要 2 個字元")
	}

	// 先查產品層級快取
	if s.products != nil {
		if cached, err := s.products.Get(ctx, name); err == nil && cached != nil {
			common.LogCacheHit("product", name)
			return cached, nil
		}
	}

	startTime := time.Now()
	rawIngredients, err := s.extractor.ExtractIngredients(ctx, name)
	if err != nil {
		common.LogError("成分萃取失敗",
			zap.Error(err),
			zap.String("product", name),
		)
		return nil, common.WrapError(common.ErrExtractionUnavailable, err)
	}

	result := s.AnalyzeIngredients(ctx, name, rawIngredients)

	common.LogInfo("產品分析完成",
		zap.String("product", name),
		zap.Int("ingredient_count", len(rawIngredients)),
		zap.Float64("overall_score", result.OverallSafetyScore),
		zap.Duration("duration", time.Since(startTime)),
	)

	// 寫回快取與知識庫都是盡力而為，失敗不影響回應
	if s.products != nil {
		if err := s.products.Set(ctx, result); err != nil {
			common.LogWarn("產品快取寫入失敗",
				zap.Error(err),
				zap.String("product", name),
			)
		}
	}
	category := InferCategory(name, ingredientNames(result.IngredientsAnalysis))
	if err := s.store.AddProduct(ctx, store.CandidateProduct{
		Name:        name,
		SafetyScore: result.OverallSafetyScore,
		Category:    category,
	}); err != nil {
		common.LogWarn("知識庫寫入失敗",
			zap.Error(err),
			zap.String("product", name),
		)
	}

	return result, nil
}

// AnalyzeIngredients 依成分清單執行分析，全函數、不回傳錯誤
// 空清單是合法輸入：零分、無警告、無替代品
func (s *Service) AnalyzeIngredients(ctx context.Context, productName string, rawIngredients []string) *common.ProductAnalysis {
	records := s.resolveAll(ctx, rawIngredients)

	items := make([]common.IngredientAnalysis, len(records))
	for i, rec := range records {
		items[i] = s.scorer.Score(rec)
	}

	score, summary, warnings := s.aggregator.Aggregate(items)

	category := InferCategory(productName, ingredientNames(items))
	profile := store.Embed(category + " " + strings.Join(ingredientNames(items), " "))
	alternatives := s.ranker.Rank(ctx, productName, category, profile, score)

	return &common.ProductAnalysis{
		ProductName:         strings.TrimSpace(productName),
		IngredientsAnalysis: items,
		OverallSafetyScore:  score,
		RiskSummary:         summary,
		AllergenWarnings:    warnings,
		Alternatives:        alternatives,
	}
}

// AnalyzeIngredient 解析並評分單一成分
func (s *Service) AnalyzeIngredient(ctx context.Context, raw string) common.IngredientAnalysis {
	return s.scorer.Score(s.resolver.Resolve(ctx, raw))
}

// ClearProductCache 清空產品分析快取
func (s *Service) ClearProductCache(ctx context.Context) error {
	if s.products == nil {
		return nil
	}
	return s.products.Clear(ctx)
}

// resolveAll 以固定數量的工作者並行解析成分，結果順序與輸入一致
func (s *Service) resolveAll(ctx context.Context, rawIngredients []string) []common.IngredientRecord {
	records := make([]common.IngredientRecord, len(rawIngredients))
	if len(rawIngredients) == 0 {
		return records
	}

	workers := s.config.Analysis.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(rawIngredients) {
		workers = len(rawIngredients)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i] = s.resolver.Resolve(ctx, rawIngredients[i])
			}
		}()
	}
	for i := range rawIngredients {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records
}

// ingredientNames 收集分析結果中的成分名稱
func ingredientNames(items []common.IngredientAnalysis) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}
