package store

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCanonicalName(t *testing.T) {
	s := NewMemoryStore()

	rec, ok := s.Lookup(context.Background(), "water")
	require.True(t, ok)
	assert.Equal(t, "water", rec.Name)
	require.NotNil(t, rec.BaseRiskScore)
	assert.Equal(t, 0.0, *rec.BaseRiskScore)
}

func TestLookupAlias(t *testing.T) {
	s := NewMemoryStore()

	// aqua 是 water 的 INCI 別名
	rec, ok := s.Lookup(context.Background(), "aqua")
	require.True(t, ok)
	assert.Equal(t, "water", rec.Name)

	// parfum 是 fragrance 的別名
	rec, ok = s.Lookup(context.Background(), "parfum")
	require.True(t, ok)
	assert.Equal(t, "fragrance", rec.Name)
	require.NotNil(t, rec.BaseRiskScore)
	assert.Equal(t, 8.0, *rec.BaseRiskScore)
	assert.Contains(t, rec.Allergens, "fragrance")
}

func TestLookupMiss(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Lookup(context.Background(), "unobtainium")
	assert.False(t, ok)
}

func TestNearestDeterministic(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec1, sim1, err := s.Nearest(ctx, "glycerins")
	require.NoError(t, err)
	rec2, sim2, err := s.Nearest(ctx, "glycerins")
	require.NoError(t, err)

	assert.Equal(t, rec1.Name, rec2.Name)
	assert.Equal(t, sim1, sim2)
	assert.Equal(t, "glycerin", rec1.Name)
	assert.Greater(t, sim1, 0.62)
}

func TestNearestCancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Nearest(ctx, "water")
	assert.Error(t, err)
}

func TestCandidatesCeilingIsStrict(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// Neutrogena 防曬的分數剛好是 3.2，不得入選
	candidates, err := s.Candidates(ctx, "sunscreen", 3.2)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "EltaMD UV Clear SPF 46", candidates[0].Name)
}

func TestCandidatesCategoryFilter(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	candidates, err := s.Candidates(ctx, "moisturizer", 10)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.Equal(t, "moisturizer", c.Category)
	}

	// 空類別代表不過濾
	all, err := s.Candidates(ctx, "", 10)
	require.NoError(t, err)
	assert.Greater(t, len(all), len(candidates))
}

func TestCandidatesSortedByName(t *testing.T) {
	s := NewMemoryStore()

	candidates, err := s.Candidates(context.Background(), "", 10)
	require.NoError(t, err)
	assert.True(t, sort.SliceIsSorted(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	}))
}

func TestAddProduct(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.AddProduct(ctx, CandidateProduct{
		Name:        "Test Gentle Toner",
		SafetyScore: 1.3,
		Category:    "toner",
	})
	require.NoError(t, err)

	candidates, err := s.Candidates(ctx, "toner", 10)
	require.NoError(t, err)

	found := false
	for _, c := range candidates {
		if c.Name == "Test Gentle Toner" {
			found = true
			assert.NotEmpty(t, c.Embedding)
		}
	}
	assert.True(t, found)
}

func TestAddProductEmptyName(t *testing.T) {
	s := NewMemoryStore()

	err := s.AddProduct(context.Background(), CandidateProduct{Name: "   "})
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	s := NewMemoryStore()

	stats := s.Stats()
	assert.Greater(t, stats["ingredients"].(int), 0)
	assert.Greater(t, stats["products"].(int), 0)
}
