package store

import (
	"hash/fnv"
	"math"
	"strings"
)

// embeddingDim 向量維度，夠小讓種子資料的距離計算便宜
const embeddingDim = 128

// Embed 將文字轉為字元 trigram 的雜湊向量並做 L2 正規化
// 同一字串永遠得到同一向量，近似查詢因此是確定性的
func Embed(text string) []float64 {
	vec := make([]float64, embeddingDim)
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return vec
	}

	// 頭尾補上邊界符號，讓短字串也有足夠的 trigram
	padded := " " + normalized + " "
	runes := []rune(padded)
	for i := 0; i+3 <= len(runes); i++ {
		h := fnv.New32a()
		h.Write([]byte(string(runes[i : i+3])))
		vec[h.Sum32()%embeddingDim]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Cosine 計算兩個向量的餘弦相似度
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
