package llmclient

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify_Heuristics(t *testing.T) {
	cases := []struct {
		msg  string
		want Kind
	}{
		{"Rate limit reached for requests", KindRateLimited},
		{"429 too many requests", KindRateLimited},
		{"model requires more system memory (8.4 GiB) than is available", KindMemoryPressure},
		{"CUDA out of memory", KindMemoryPressure},
		{"there is not enough memory on the device", KindMemoryPressure},
		{`model "llama3:70b" not found, try pulling it first`, KindModelUnavailable},
		{"The model `gpt-9` does not exist", KindModelUnavailable},
		{"connection refused", KindUnknown},
		{"not found", KindUnknown}, // needs "model" nearby to count
	}
	for _, tc := range cases {
		if got := Classify(errors.New(tc.msg)); got != tc.want {
			t.Fatalf("Classify(%q)=%s want %s", tc.msg, got, tc.want)
		}
	}
}

func TestClassify_OrderingMemoryBeforeModel(t *testing.T) {
	// Local servers phrase memory errors around the model name; they must
	// classify as memory pressure, not as a missing model.
	err := errors.New("model llama3:70b requires more system memory than is available")
	if got := Classify(err); got != KindMemoryPressure {
		t.Fatalf("got %s want %s", got, KindMemoryPressure)
	}
}

func TestAPIError_KindFromStatus(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   Kind
	}{
		{429, "whatever", KindRateLimited},
		{404, "no such route", KindModelUnavailable},
		{400, `{"error":{"message":"model x does not exist"}}`, KindModelUnavailable},
		{500, "model requires more system memory", KindMemoryPressure},
		{500, "internal error", KindTransport},
		{503, "service unavailable", KindTransport},
	}
	for _, tc := range cases {
		e := &APIError{StatusCode: tc.status, Status: fmt.Sprint(tc.status), Model: "m", Body: tc.body}
		if got := e.Kind(); got != tc.want {
			t.Fatalf("status=%d body=%q got %s want %s", tc.status, tc.body, got, tc.want)
		}
	}
}

func TestClassify_WrappedAPIError(t *testing.T) {
	inner := &APIError{StatusCode: 429, Status: "429", Model: "m", Body: ""}
	wrapped := fmt.Errorf("attempt 2: %w", inner)
	if got := Classify(wrapped); got != KindRateLimited {
		t.Fatalf("got %s want %s", got, KindRateLimited)
	}
}
