package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClient_Generate(t *testing.T) {
	var gotReq chatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer key-123" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  hello  "}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient("key-123", srv.URL)
	out, err := c.Generate(context.Background(), Request{
		Model:           "m1",
		System:          "sys",
		User:            "usr",
		MaxOutputTokens: 400,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "hello" {
		t.Fatalf("answer=%q", out)
	}
	if gotReq.Model != "m1" || gotReq.MaxTokens != 400 {
		t.Fatalf("request body: %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("messages: %+v", gotReq.Messages)
	}
}

func TestOpenAIClient_NonOKBecomesAPIError(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   Kind
	}{
		{http.StatusTooManyRequests, `{"error":{"message":"rate limit"}}`, KindRateLimited},
		{http.StatusNotFound, `model "x" not found`, KindModelUnavailable},
		{http.StatusInternalServerError, "model requires more system memory", KindMemoryPressure},
		{http.StatusBadGateway, "bad gateway", KindTransport},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))
		c := NewOpenAIClient("", srv.URL)
		_, err := c.Generate(context.Background(), Request{Model: "x", User: "q"})
		srv.Close()
		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected *APIError, got %T", tc.status, err)
		}
		if apiErr.StatusCode != tc.status {
			t.Fatalf("StatusCode=%d want %d", apiErr.StatusCode, tc.status)
		}
		if got := Classify(err); got != tc.want {
			t.Fatalf("status %d: Classify=%s want %s", tc.status, got, tc.want)
		}
	}
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewOpenAIClient("", srv.URL)
	_, err := c.Generate(context.Background(), Request{Model: "m", User: "q"})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAIClient_DefaultBaseURL(t *testing.T) {
	c := NewOpenAIClient("k", "")
	if c.baseURL != defaultBaseURL {
		t.Fatalf("baseURL=%q", c.baseURL)
	}
	c = NewOpenAIClient("k", "http://localhost:11434/v1/")
	if c.baseURL != "http://localhost:11434/v1" {
		t.Fatalf("trailing slash not trimmed: %q", c.baseURL)
	}
}
