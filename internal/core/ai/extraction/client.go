package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ingredient-iq/internal/infrastructure/config"
	"ingredient-iq/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// GeminiClient Gemini API 客戶端
type GeminiClient struct {
	config *config.Config
	client *resty.Client
}

// NewGeminiClient 創建 Gemini 客戶端
func NewGeminiClient(cfg *config.Config) *GeminiClient {
	client := resty.New().
		SetBaseURL(cfg.Gemini.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.Gemini.APIKey).
		SetTimeout(cfg.Gemini.Timeout)

	return &GeminiClient{
		config: cfg,
		client: client,
	}
}

// GenerateContent 呼叫 Gemini 生成內容
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	// 構建請求
	req := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"maxOutputTokens": c.config.Gemini.MaxTokens,
			"temperature":     0.1,
		},
	}

	// 發送請求
	startTime := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/models/%s:generateContent", c.config.Gemini.Model))

	if err != nil {
		common.LogAICall(prompt, time.Since(startTime), err, "")
		return "", fmt.Errorf("failed to send request to Gemini: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("Gemini API 回傳錯誤狀態",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.config.Gemini.Model),
		)
		return "", fmt.Errorf("Gemini API returned error (status %d): %s", resp.StatusCode(), resp.String())
	}

	// 解析回應
	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in Gemini response")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	content := sb.String()
	if content == "" {
		return "", fmt.Errorf("empty content in Gemini response")
	}

	common.LogAICall(prompt, time.Since(startTime), nil, "")
	return content, nil
}
