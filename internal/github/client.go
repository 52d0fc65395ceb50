package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnauthorized marks authentication and authorization failures from
// the API, distinct from other transport errors.
var ErrUnauthorized = errors.New("github: unauthorized")

const defaultAPIBase = "https://api.github.com"

// Client posts comments to the GitHub issues API.
type Client struct {
	http    *http.Client
	token   string
	baseURL string
}

// NewClient creates a Client authorized with token.
func NewClient(token string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
		baseURL: defaultAPIBase,
	}
}

// PostIssueComment creates a comment on repo's issue. Any 2xx status is
// success; 401 and 403 wrap ErrUnauthorized, other statuses are plain
// transport errors.
func (c *Client) PostIssueComment(ctx context.Context, repo string, issueNumber int, body string) error {
	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", c.baseURL, repo, issueNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post comment: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d: %s", ErrUnauthorized, resp.StatusCode, raw)
	}
	return fmt.Errorf("post comment: status %d: %s", resp.StatusCode, raw)
}
