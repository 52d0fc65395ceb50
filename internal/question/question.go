// Package question isolates the actionable question from free-form
// comment text.
package question

import "strings"

// Trigger is the leading token that marks a comment as a question for
// the assistant.
const Trigger = "/ask"

// Extract returns the question following the trigger token, trimmed.
// It returns "" when the text is empty, does not start with the trigger
// (case-insensitive), or carries nothing after it. An empty result means
// "no actionable question" and is not an error.
func Extract(body string) string {
	stripped := strings.TrimSpace(body)
	if stripped == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(stripped), Trigger) {
		return ""
	}
	return strings.TrimSpace(stripped[len(Trigger):])
}
