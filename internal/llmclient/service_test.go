package llmclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIsGeminiModel(t *testing.T) {
	cases := []struct {
		model string
		want  bool
	}{
		{"gemini-2.5-flash", true},
		{" Gemini-2.5-pro ", true},
		{"gpt-4o-mini", false},
		{"llama3.2:1b", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsGeminiModel(tc.model); got != tc.want {
			t.Fatalf("IsGeminiModel(%q)=%v want %v", tc.model, got, tc.want)
		}
	}
}

func TestService_AskAssemblesPrompt(t *testing.T) {
	var got chatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "ok"}}},
		})
	}))
	defer srv.Close()

	svc := NewService(Options{APIKey: "k", BaseURL: srv.URL}, SystemPromptIssue, QuestionLabelIssue)
	defer svc.Close()

	out, err := svc.Ask(context.Background(), "m1", "how?", "### FILE: a.txt\nhello")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if out != "ok" {
		t.Fatalf("answer=%q", out)
	}
	if got.Messages[0].Content != SystemPromptIssue {
		t.Fatalf("system prompt=%q", got.Messages[0].Content)
	}
	user := got.Messages[1].Content
	if !strings.HasPrefix(user, "Repository context:\n### FILE: a.txt") {
		t.Fatalf("user prompt missing context:\n%s", user)
	}
	if !strings.Contains(user, QuestionLabelIssue+"\nhow?") {
		t.Fatalf("user prompt missing labeled question:\n%s", user)
	}
	if got.MaxTokens != maxOutputTokens {
		t.Fatalf("max tokens=%d", got.MaxTokens)
	}
}

func TestService_ReusesOpenAIClient(t *testing.T) {
	svc := NewService(Options{}, "sys", "")
	a, err := svc.clientFor(context.Background(), "m1")
	if err != nil {
		t.Fatalf("clientFor: %v", err)
	}
	b, err := svc.clientFor(context.Background(), "m2")
	if err != nil {
		t.Fatalf("clientFor: %v", err)
	}
	if a != b {
		t.Fatal("expected one shared OpenAI-compatible client across models")
	}
}
