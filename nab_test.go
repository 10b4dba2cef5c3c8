package nab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikkoParkkola/nab/internal/cookiejar"
	"github.com/stretchr/testify/require"
)

func TestFetchConvertsHTMLBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h1>Hello</h1><p>World</p></body></html>"))
	}))
	defer srv.Close()

	n := New(WithCookieJar(cookiejar.Empty()))
	res, err := n.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, res.Markdown, "Hello")
	require.Contains(t, res.Markdown, "World")
	require.Equal(t, "", res.Provider)
	require.Equal(t, http.StatusOK, res.Status)
}

func TestFetchBatchPreservesOrderAndConcurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hi " + r.URL.Path))
	}))
	defer srv.Close()

	n := New(WithCookieJar(cookiejar.Empty()))
	urls := []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c"}
	results, err := n.FetchBatch(context.Background(), urls, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, u := range urls {
		require.Equal(t, u, results[i].URL)
		require.NoError(t, results[i].Err)
		require.Contains(t, results[i].Value.Markdown, "hi /")
	}
}

func TestFetchReturnsErrorOnInvalidURL(t *testing.T) {
	n := New(WithCookieJar(cookiejar.Empty()))
	_, err := n.Fetch(context.Background(), "not-a-url")
	require.Error(t, err)
}
