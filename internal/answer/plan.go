// Package answer plans model candidates and drives the resilient
// generation loop across them.
package answer

import "strings"

// localModels are small Ollama model names that fit constrained memory.
// They are appended whenever the endpoint looks like a local Ollama
// default, so a question still gets answered when the requested models
// cannot be loaded.
var localModels = []string{
	"llama3.2:1b",
	"qwen2.5:0.5b",
	"qwen2.5:1.5b",
	"tinyllama:latest",
	"phi3:mini",
}

// Candidates builds the ordered, deduplicated attempt plan: the primary
// model, the optional fallback, the comma-separated extras, and the
// local-inference bundle when baseURL matches the Ollama loopback
// signature. First occurrence wins; empties are dropped. The result is
// never empty when primary is non-empty.
func Candidates(primary, fallback, extras, baseURL string) []string {
	cands := []string{strings.TrimSpace(primary)}

	if f := strings.TrimSpace(fallback); f != "" {
		cands = append(cands, f)
	}
	for _, m := range strings.Split(extras, ",") {
		if m = strings.TrimSpace(m); m != "" {
			cands = append(cands, m)
		}
	}
	base := strings.ToLower(baseURL)
	if strings.Contains(base, "127.0.0.1:11434") || strings.Contains(base, "localhost:11434") {
		cands = append(cands, localModels...)
	}

	deduped := make([]string, 0, len(cands))
	seen := make(map[string]bool, len(cands))
	for _, m := range cands {
		if m == "" || seen[m] {
			continue
		}
		deduped = append(deduped, m)
		seen[m] = true
	}
	return deduped
}
