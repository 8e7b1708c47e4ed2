package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig 建立一份通過驗證的基準設定
func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Analysis: AnalysisConfig{
			SafeMax:             0,
			LowMax:              3,
			ModerateMax:         6,
			UnknownScore:        3,
			SimilarityThreshold: 0.62,
			Workers:             4,
		},
		Ranker: RankerConfig{MaxAlternatives: 5},
		Cache: CacheConfig{
			Enabled:         true,
			MaxSize:         1000,
			TTL:             24 * time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validConfig()))
}

func TestValidateConfigMissingPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfigThresholdsMustAscend(t *testing.T) {
	cfg := validConfig()
	cfg.Analysis.SafeMax = 3
	cfg.Analysis.LowMax = 3
	assert.Error(t, validateConfig(cfg))

	cfg = validConfig()
	cfg.Analysis.LowMax = 6
	cfg.Analysis.ModerateMax = 6
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfigSimilarityThreshold(t *testing.T) {
	cfg := validConfig()
	cfg.Analysis.SimilarityThreshold = 0
	assert.Error(t, validateConfig(cfg))

	cfg = validConfig()
	cfg.Analysis.SimilarityThreshold = 1.5
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfigWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Analysis.Workers = 0
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfigCacheSettings(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.MaxSize = 0
	assert.Error(t, validateConfig(cfg))

	// 快取停用時不檢查快取參數
	cfg = validConfig()
	cfg.Cache.Enabled = false
	cfg.Cache.MaxSize = 0
	assert.NoError(t, validateConfig(cfg))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", maskAPIKey("abcdefgh-longer-key-wxyz"))
}
