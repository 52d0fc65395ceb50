package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAIClient calls an OpenAI-compatible Chat Completions endpoint.
// The same wire shape is served by api.openai.com, Groq and a local
// Ollama instance, which is what makes model fallback across providers
// possible with one client.
type OpenAIClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

const defaultBaseURL = "https://api.openai.com/v1"

// NewOpenAIClient creates a client for baseURL, or the public OpenAI API
// when baseURL is empty.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIClient{
		http:    &http.Client{Timeout: 120 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

func (c *OpenAIClient) Name() string { return "openai-compatible" }
func (c *OpenAIClient) Close() error { return nil }

type chatReq struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate posts one chat completion and returns the trimmed answer text.
// Non-2xx replies come back as *APIError so the caller can classify them.
func (c *OpenAIClient) Generate(ctx context.Context, reqData Request) (string, error) {
	body := chatReq{
		Model: reqData.Model,
		Messages: []chatMessage{
			{Role: "system", Content: reqData.System},
			{Role: "user", Content: reqData.User},
		},
		MaxTokens: reqData.MaxOutputTokens,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		const max = 2048
		if len(raw) > max {
			raw = raw[:max]
		}
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Model:      reqData.Model,
			Body:       string(raw),
		}
	}
	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
