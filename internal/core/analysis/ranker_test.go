package analysis

import (
	"context"
	"errors"
	"testing"

	"ingredient-iq/internal/core/store"
	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore 模擬知識庫故障
type failingStore struct{}

func (f *failingStore) Lookup(ctx context.Context, name string) (common.IngredientRecord, bool) {
	return common.IngredientRecord{}, false
}

func (f *failingStore) Nearest(ctx context.Context, name string) (common.IngredientRecord, float64, error) {
	return common.IngredientRecord{}, 0, errors.New("store down")
}

func (f *failingStore) Candidates(ctx context.Context, category string, ceiling float64) ([]store.CandidateProduct, error) {
	return nil, errors.New("store down")
}

func (f *failingStore) AddProduct(ctx context.Context, product store.CandidateProduct) error {
	return errors.New("store down")
}

func TestRankSortsByScoreAscending(t *testing.T) {
	r := NewRanker(store.NewMemoryStore(), config.RankerConfig{MaxAlternatives: 5})

	profile := store.Embed("moisturizer test product")
	result := r.Rank(context.Background(), "Test Product", "moisturizer", profile, 10)

	require.NotEmpty(t, result)
	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].SafetyScore, result[i].SafetyScore)
	}
}

func TestRankCeilingExcludesEqualScores(t *testing.T) {
	r := NewRanker(store.NewMemoryStore(), config.RankerConfig{MaxAlternatives: 10})

	// Vanicream 是 0.9，天花板 0.9 時必須被排除
	result := r.Rank(context.Background(), "Test Product", "moisturizer", store.Embed("moisturizer"), 0.9)
	for _, c := range result {
		assert.Less(t, c.SafetyScore, 0.9)
	}
}

func TestRankTruncatesToTopK(t *testing.T) {
	r := NewRanker(store.NewMemoryStore(), config.RankerConfig{MaxAlternatives: 2})

	result := r.Rank(context.Background(), "Test Product", "", store.Embed("skincare"), 10)
	assert.Len(t, result, 2)
}

func TestRankExcludesProductItself(t *testing.T) {
	r := NewRanker(store.NewMemoryStore(), config.RankerConfig{MaxAlternatives: 10})

	result := r.Rank(context.Background(), "CeraVe Moisturizing Cream", "moisturizer", store.Embed("moisturizer"), 10)
	require.NotEmpty(t, result)
	for _, c := range result {
		assert.NotEqual(t, "CeraVe Moisturizing Cream", c.Name)
	}
}

func TestRankDeterministic(t *testing.T) {
	r := NewRanker(store.NewMemoryStore(), config.RankerConfig{MaxAlternatives: 5})
	profile := store.Embed("serum test")

	first := r.Rank(context.Background(), "Test Product", "serum", profile, 10)
	second := r.Rank(context.Background(), "Test Product", "serum", profile, 10)
	assert.Equal(t, first, second)
}

func TestRankDegradesToEmptyListOnStoreFailure(t *testing.T) {
	r := NewRanker(&failingStore{}, config.RankerConfig{MaxAlternatives: 5})

	result := r.Rank(context.Background(), "Test Product", "serum", store.Embed("serum"), 10)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestRankNoCandidatesBelowCeiling(t *testing.T) {
	r := NewRanker(store.NewMemoryStore(), config.RankerConfig{MaxAlternatives: 5})

	// 天花板 0 時不可能有更安全的候選
	result := r.Rank(context.Background(), "Test Product", "", store.Embed("skincare"), 0)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}
