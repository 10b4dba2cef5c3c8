package siterouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHackerNewsExtractRendersStoryAndComments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v0/item/1.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"type":"story","by":"pg","title":"Ask HN: anything","score":100,"kids":[2,3]}`))
	})
	mux.HandleFunc("/v0/item/2.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":2,"by":"alice","text":"great point"}`))
	})
	mux.HandleFunc("/v0/item/3.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":3,"by":"bob","text":"disagree"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	orig := hnItemURLFmt
	hnItemURLFmt = srv.URL + "/v0/item/%d.json"
	defer func() { hnItemURLFmt = orig }()

	u := mustParse(t, "https://news.ycombinator.com/item?id=1")
	content, err := hackerNewsProvider{}.Extract(context.Background(), srv.Client(), u)
	require.NoError(t, err)
	require.Equal(t, "Ask HN: anything", content.Title)
	require.True(t, strings.Contains(content.BodyMarkdown, "great point") || strings.Contains(content.BodyMarkdown, "disagree"))
	require.Equal(t, 100, content.Metadata["score"])
}
