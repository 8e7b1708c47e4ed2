package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Gemini      GeminiConfig    `mapstructure:"gemini"`
	Analysis    AnalysisConfig  `mapstructure:"analysis"`
	Ranker      RankerConfig    `mapstructure:"ranker"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Redis       RedisConfig     `mapstructure:"redis"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Admin       AdminConfig     `mapstructure:"admin"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// GeminiConfig 生成式萃取服務配置
type GeminiConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
	BaseURL   string        `mapstructure:"base_url"`
}

// AnalysisConfig 安全評分配置
// 風險分級門檻與未知成分的替代分數是最可能調整的值，集中在此而不是散落在評分程式碼中
type AnalysisConfig struct {
	SafeMax             float64 `mapstructure:"safe_max"`             // 分數 <= SafeMax 為 Safe
	LowMax              float64 `mapstructure:"low_max"`              // (SafeMax, LowMax] 為 Low
	ModerateMax         float64 `mapstructure:"moderate_max"`         // (LowMax, ModerateMax] 為 Moderate，超過為 High
	UnknownScore        float64 `mapstructure:"unknown_score"`        // 未知成分的中性替代分數
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"` // 近似查詢的最低接受相似度
	Workers             int     `mapstructure:"workers"`              // 併發解析成分的工作者數
}

// RankerConfig 替代品排名配置
type RankerConfig struct {
	MaxAlternatives int `mapstructure:"max_alternatives"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RedisConfig Redis 產品分析快取配置
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// AdminConfig 管理操作配置
type AdminConfig struct {
	Password string `mapstructure:"password"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時不視為錯誤
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")
	viper.BindEnv("gemini.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("redis.enabled", "REDIS_ENABLED")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("admin.password", "ADMIN_PASSWORD")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration", "gemini_api_key:", maskAPIKey(viper.GetString("gemini.api_key")), "gemini_model:", viper.GetString("gemini.model"))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "ingredient-iq")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 萃取服務設定
	viper.SetDefault("gemini.enabled", true)
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.max_tokens", 1024)
	viper.SetDefault("gemini.timeout", "60s")
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")

	// 評分設定
	viper.SetDefault("analysis.safe_max", 0)
	viper.SetDefault("analysis.low_max", 3)
	viper.SetDefault("analysis.moderate_max", 6)
	viper.SetDefault("analysis.unknown_score", 3)
	viper.SetDefault("analysis.similarity_threshold", 0.62)
	viper.SetDefault("analysis.workers", 4)

	// 排名設定
	viper.SetDefault("ranker.max_alternatives", 5)

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	// Redis 設定
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 新增 dedup window 預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證評分門檻，必須嚴格遞增
	if config.Analysis.SafeMax >= config.Analysis.LowMax {
		return fmt.Errorf("invalid risk thresholds: safe_max must be below low_max")
	}
	if config.Analysis.LowMax >= config.Analysis.ModerateMax {
		return fmt.Errorf("invalid risk thresholds: low_max must be below moderate_max")
	}
	if config.Analysis.UnknownScore < 0 {
		return fmt.Errorf("invalid unknown score")
	}
	if config.Analysis.SimilarityThreshold <= 0 || config.Analysis.SimilarityThreshold > 1 {
		return fmt.Errorf("invalid similarity threshold")
	}
	if config.Analysis.Workers <= 0 {
		return fmt.Errorf("invalid analysis workers")
	}

	// 驗證排名設定
	if config.Ranker.MaxAlternatives < 0 {
		return fmt.Errorf("invalid max alternatives")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	return nil
}
