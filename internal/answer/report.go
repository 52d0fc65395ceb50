package answer

import (
	"fmt"
	"strings"

	"askrepo/internal/llmclient"
	"askrepo/internal/question"
)

// NoContextComment is posted when the repository yields no readable text.
const NoContextComment = "I could not read repository files for context."

// maxFailureDetail bounds the error text echoed to the issue thread so
// transient internal detail never floods the channel.
const maxFailureDetail = 400

// FormatComment renders the answer into the fixed reply template.
func FormatComment(q, answer string) string {
	return fmt.Sprintf(
		"### Repo Assistant\n\n**Question:** %s\n\n%s\n\n_Ask another question by commenting with `%s ...`._",
		q, answer, question.Trigger,
	)
}

// FormatFailure renders a terminal generation failure as a bounded
// diagnostic: the classified kind plus a truncated detail string.
func FormatFailure(err error) string {
	detail := strings.TrimSpace(err.Error())
	if detail == "" {
		detail = fmt.Sprintf("%#v", err)
	}
	if len(detail) > maxFailureDetail {
		// The byte cut can land inside a multi-byte rune; drop the torn tail.
		detail = strings.ToValidUTF8(detail[:maxFailureDetail], "") + "..."
	}
	return fmt.Sprintf(
		"I hit an error while generating an answer.\n\n- Kind: `%s`\n- Details: `%s`",
		llmclient.Classify(err), detail,
	)
}
