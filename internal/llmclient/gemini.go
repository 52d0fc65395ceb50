package llmclient

import (
	"context"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client for
// model ids carrying the "gemini-" prefix. Cross-cutting concerns are
// handled by the caller, same as for OpenAIClient.
type GeminiClient struct {
	cli *genai.Client
}

// NewGeminiClient creates a Gemini client. The genai library reads the
// API key from the environment when apiKey is empty.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli}, nil
}

func (g *GeminiClient) Name() string { return "gemini" }
func (g *GeminiClient) Close() error { return nil }

// IsGeminiModel reports whether the model id should be routed to the
// Gemini backend instead of the OpenAI-compatible endpoint.
func IsGeminiModel(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gemini-")
}

func (g *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	resp, err := g.cli.Models.GenerateContent(ctx, req.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.User}}}},
		cfg,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
