// Package llmclient is the transport layer for remote text generation.
// Clients only perform the API call itself; retry, candidate fallback and
// context shrinking live in internal/answer.
package llmclient

import "context"

// Request is one generation attempt.
type Request struct {
	Model           string
	System          string
	User            string
	MaxOutputTokens int
}

// Client issues generation requests against one backend.
type Client interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
	Close() error
}
