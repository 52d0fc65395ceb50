package llmclient

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed classification of remote generation failures.
// Only KindRateLimited and KindMemoryPressure are locally recoverable;
// KindModelUnavailable is permanent for that model id, everything else
// aborts the run.
type Kind string

const (
	KindRateLimited      Kind = "rate_limited"
	KindMemoryPressure   Kind = "memory_pressure"
	KindModelUnavailable Kind = "model_unavailable"
	KindTransport        Kind = "transport"
	KindUnknown          Kind = "unknown"
)

// ErrEmptyResponse indicates the endpoint answered 2xx with no usable text.
var ErrEmptyResponse = errors.New("empty response from model")

// APIError is a non-2xx reply from the remote endpoint, with the body
// truncated to a bounded prefix.
type APIError struct {
	StatusCode int
	Status     string
	Model      string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: model %s: unexpected status %s: %s", e.Model, e.Status, e.Body)
}

// Kind maps the structured status code first and falls back to the
// message heuristics for codes that carry the real cause in the body
// (Ollama reports memory exhaustion as a 500, unknown models as a 400
// or 404 depending on version).
func (e *APIError) Kind() Kind {
	switch e.StatusCode {
	case 429:
		return KindRateLimited
	case 404:
		return KindModelUnavailable
	}
	if k := classifyMessage(e.Body); k != KindUnknown {
		return k
	}
	return KindTransport
}

// Classify maps any error from a generation attempt into the closed Kind
// set. Typed errors are classified structurally; for everything else the
// documented substring heuristics apply, defaulting to KindUnknown.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return classifyMessage(err.Error())
}

// classifyMessage is the fallback for endpoints that do not return a
// structured error code. Checks are ordered: rate limiting, then memory
// pressure, then unknown model. Memory is checked before unknown model
// because local servers phrase memory errors around a model name
// ("model X requires more system memory").
func classifyMessage(msg string) Kind {
	s := strings.ToLower(msg)
	switch {
	case strings.Contains(s, "rate limit") ||
		strings.Contains(s, "rate_limit") ||
		strings.Contains(s, "too many requests"):
		return KindRateLimited
	case strings.Contains(s, "requires more system memory") ||
		strings.Contains(s, "out of memory") ||
		strings.Contains(s, "not enough memory"):
		return KindMemoryPressure
	case strings.Contains(s, "model") &&
		(strings.Contains(s, "not found") || strings.Contains(s, "does not exist")):
		return KindModelUnavailable
	}
	return KindUnknown
}
