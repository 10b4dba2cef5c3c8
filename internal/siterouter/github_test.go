package siterouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGitHubExtractParsesIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/owner/repo/issues/42", r.URL.Path)
		w.Header().Set("X-RateLimit-Remaining", "59")
		w.Write([]byte(`{"title":"Fix bug","body":"details here","state":"open","number":42,"comments":3,"user":{"login":"octocat"}}`))
	}))
	defer srv.Close()

	orig := githubAPIBase
	githubAPIBase = srv.URL
	defer func() { githubAPIBase = orig }()

	u := mustParse(t, "https://github.com/owner/repo/issues/42")
	content, err := githubProvider{}.Extract(context.Background(), srv.Client(), u)
	require.NoError(t, err)
	require.Equal(t, "github", content.Provider)
	require.Equal(t, "Fix bug", content.Title)
	require.Contains(t, content.BodyMarkdown, "details here")
	require.Equal(t, "open", content.Metadata["state"])
}

func TestGitHubExtractFailsOnRateLimitExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	orig := githubAPIBase
	githubAPIBase = srv.URL
	defer func() { githubAPIBase = orig }()

	u := mustParse(t, "https://github.com/owner/repo/pull/7")
	_, err := githubProvider{}.Extract(context.Background(), srv.Client(), u)
	require.Error(t, err)
}
