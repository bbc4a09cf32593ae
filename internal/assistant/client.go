// Package assistant はチャットアシスタント機能を提供する。
// 外部テキスト生成API（Groq、OpenAI互換チャット補完）の呼び出しと、
// ペルソナプロンプトの組み立てを含む。
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// defaultEndpoint はGroqチャット補完APIのエンドポイント。
const defaultEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// chatMessage はチャット補完APIのメッセージ1件。
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest はチャット補完APIのリクエストボディ。
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatResponse はチャット補完APIのレスポンスボディ。
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client はテキスト生成APIのクライアント。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	model      string
	endpoint   string // テスト用にエンドポイントを差し替え可能
}

// NewClient はClientの新しいインスタンスを生成する。
// httpClientのTimeoutが外部呼び出しの上限時間となる。
func NewClient(httpClient *http.Client, logger *slog.Logger, apiKey, model string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     apiKey,
		model:      model,
		endpoint:   defaultEndpoint,
	}
}

// SetEndpoint はAPIエンドポイントを差し替える。テストおよび互換API向け。
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// Complete はシステムプロンプトとユーザーメッセージ1件でチャット補完を実行し、
// 生成テキストを返す。コンテキストのキャンセルに従う。
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("text generation API call failed",
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("text generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("text generation API returned error status",
			slog.Int("http_status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return "", fmt.Errorf("text generation API returned status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}

	if result.Error != nil {
		c.logger.Error("text generation API returned error payload",
			slog.String("api_error", result.Error.Message),
		)
		return "", fmt.Errorf("text generation API error: %s", result.Error.Type)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("text generation API returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}
