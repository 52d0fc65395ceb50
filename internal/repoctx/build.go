// Package repoctx assembles the bounded textual snapshot of a repository
// that is sent to the model alongside a question.
package repoctx

import (
	"strings"

	"askrepo/internal/scan"
)

// Build walks root and concatenates file sections of the form
//
//	\n\n### FILE: <path>\n<content>
//
// in sorted path order until maxChars is reached. A section that would
// overflow the budget is cut to the remaining budget and ends the
// snapshot; files after it are not considered. The returned string is
// trimmed and never longer than maxChars. Empty output means no usable
// context was found, which callers must handle explicitly.
func Build(root string, maxChars int) (string, error) {
	return BuildFiltered(root, maxChars, scan.DefaultFilter())
}

// BuildFiltered is Build with a caller-supplied filter.
func BuildFiltered(root string, maxChars int, filter scan.Filter) (string, error) {
	paths, err := scan.List(root, filter)
	if err != nil {
		return "", err
	}
	reader, err := scan.NewReader(root)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	total := 0
	for _, rel := range paths {
		text, ok := reader.ReadText(rel)
		if !ok {
			continue
		}
		section := "\n\n### FILE: " + rel + "\n" + text
		if total+len(section) > maxChars {
			remaining := maxChars - total
			if remaining > 0 {
				b.WriteString(section[:remaining])
			}
			break
		}
		b.WriteString(section)
		total += len(section)
	}
	return strings.TrimSpace(b.String()), nil
}
