package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedDeterministic(t *testing.T) {
	a := Embed("hyaluronic acid")
	b := Embed("hyaluronic acid")
	assert.Equal(t, a, b)
}

func TestEmbedCaseAndSpaceInsensitive(t *testing.T) {
	assert.Equal(t, Embed("Glycerin"), Embed("  glycerin  "))
}

func TestEmbedUnitNorm(t *testing.T) {
	vec := Embed("niacinamide")
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestEmbedEmpty(t *testing.T) {
	vec := Embed("   ")
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestCosine(t *testing.T) {
	a := Embed("retinol")
	assert.InDelta(t, 1.0, Cosine(a, a), 1e-9)

	// 完全不同的字串相似度應該遠低於相同字串
	b := Embed("zzzzqqqqxxxx")
	assert.Less(t, Cosine(a, b), 0.5)

	// 長度不符或零向量回傳 0
	assert.Zero(t, Cosine(a, []float64{1, 2}))
	assert.Zero(t, Cosine(make([]float64, embeddingDim), a))
}
