package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ksysoev/pr-checklist-action/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient serves mux as a GitHub Enterprise API, so routes live under /api/v3/
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-token", "o/r", WithAPIURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return client
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClient_InvalidRepo(t *testing.T) {
	for _, repo := range []string{"", "owner", "owner/", "/repo", "owner/repo/extra"} {
		_, err := NewClient("token", repo)
		assert.Error(t, err, "repo %q", repo)
	}
}

func TestListPullRequestFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/o/r/pulls/7/files", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"filename": "docs/guide.md", "status": "modified"},
			{"filename": "src/main.go", "status": "added"},
		})
	})

	client := newTestClient(t, mux)

	paths, err := client.ListPullRequestFiles(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.md", "src/main.go"}, paths)
}

func TestListPullRequestFiles_Error(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/o/r/pulls/7/files", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	})

	client := newTestClient(t, mux)

	_, err := client.ListPullRequestFiles(context.Background(), 7)
	assert.ErrorContains(t, err, "failed to list files of PR #7")
}

func TestCompareFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/other/lib/compare/main...feature", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ahead",
			"files": []map[string]any{
				{"filename": "lib/util.go"},
			},
		})
	})

	client := newTestClient(t, mux)

	paths, err := client.CompareFiles(context.Background(), core.CompareSpec{Owner: "other", Repo: "lib", Base: "main", Head: "feature"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/util.go"}, paths)
}

func TestListComments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/o/r/issues/7/comments", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "body": "LGTM"},
			{"id": 2, "body": "## Checklist\n<!-- checklist -->"},
		})
	})

	client := newTestClient(t, mux)

	comments, err := client.ListComments(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []core.Comment{
		{ID: 1, Body: "LGTM"},
		{ID: 2, Body: "## Checklist\n<!-- checklist -->"},
	}, comments)
}

func TestCreateComment(t *testing.T) {
	var gotBody string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v3/repos/o/r/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotBody = req.Body
		writeJSON(w, http.StatusCreated, map[string]any{"id": 42, "body": req.Body})
	})

	client := newTestClient(t, mux)

	id, err := client.CreateComment(context.Background(), 7, "checklist body")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "checklist body", gotBody)
}

func TestUpdateComment(t *testing.T) {
	var gotBody string

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/v3/repos/o/r/issues/comments/42", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotBody = req.Body
		writeJSON(w, http.StatusOK, map[string]any{"id": 42, "body": req.Body})
	})

	client := newTestClient(t, mux)

	require.NoError(t, client.UpdateComment(context.Background(), 42, "new body"))
	assert.Equal(t, "new body", gotBody)
}

func TestDeleteComment(t *testing.T) {
	deleted := false

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v3/repos/o/r/issues/comments/42", func(w http.ResponseWriter, _ *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, mux)

	require.NoError(t, client.DeleteComment(context.Background(), 42))
	assert.True(t, deleted)
}

func TestDeleteComment_Error(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v3/repos/o/r/issues/comments/42", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "Forbidden"})
	})

	client := newTestClient(t, mux)

	err := client.DeleteComment(context.Background(), 42)
	assert.ErrorContains(t, err, "failed to delete comment 42")
}
