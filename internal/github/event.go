// Package github holds the issue-tracker boundary: the trigger event
// payload and the comment-posting client.
package github

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// botSuffix marks machine accounts whose comments are never answered.
const botSuffix = "[bot]"

// Event is the part of an issue_comment webhook payload the assistant
// acts on.
type Event struct {
	CommentBody   string
	Author        string
	Repo          string
	IssueNumber   int
	IsPullRequest bool
}

type eventPayload struct {
	Comment struct {
		Body string `json:"body"`
		User struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"comment"`
	Issue struct {
		Number int `json:"number"`
		// Presence of the key marks the thread as a pull request,
		// even when its value is null.
		PullRequest json.RawMessage `json:"pull_request"`
	} `json:"issue"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// ParseEvent decodes the webhook payload from r.
func ParseEvent(r io.Reader) (Event, error) {
	var p eventPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Event{}, fmt.Errorf("decode event payload: %w", err)
	}
	return Event{
		CommentBody:   p.Comment.Body,
		Author:        p.Comment.User.Login,
		Repo:          p.Repository.FullName,
		IssueNumber:   p.Issue.Number,
		IsPullRequest: len(p.Issue.PullRequest) > 0,
	}, nil
}

// FromBot reports whether the comment author is a machine account.
func (e Event) FromBot() bool {
	return strings.HasSuffix(e.Author, botSuffix)
}
