package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, token string) *Client {
	c := NewClient(token)
	c.baseURL = srv.URL
	return c
}

func TestPostIssueComment(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if accept := r.Header.Get("Accept"); accept != "application/vnd.github+json" {
			t.Errorf("accept header %q", accept)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := newTestClient(srv, "tok")
	err := c.PostIssueComment(context.Background(), "octo/repo", 42, "hello")
	require.NoError(t, err)
	assert.Equal(t, "/repos/octo/repo/issues/42/comments", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, map[string]string{"body": "hello"}, gotBody)
}

func TestPostIssueComment_AuthFailureIsDistinct(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		c := newTestClient(srv, "bad")
		err := c.PostIssueComment(context.Background(), "octo/repo", 1, "x")
		srv.Close()
		require.Error(t, err, "status %d", status)
		assert.ErrorIs(t, err, ErrUnauthorized, "status %d", status)
	}
}

func TestPostIssueComment_OtherFailureIsNotAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv, "tok")
	err := c.PostIssueComment(context.Background(), "octo/repo", 1, "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}
