package siterouter

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/MikkoParkkola/nab/model"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name    string
	matches bool
	content *model.SiteContent
	err     error
}

func (f fakeProvider) Name() string             { return f.name }
func (f fakeProvider) Matches(u *url.URL) bool   { return f.matches }
func (f fakeProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	return f.content, f.err
}

func TestRouterTryExtractReturnsFirstMatch(t *testing.T) {
	want := &model.SiteContent{Provider: "fake", Title: "hit"}
	r := New(WithProviders(fakeProvider{name: "no-match", matches: false}, fakeProvider{name: "fake", matches: true, content: want}))
	got := r.TryExtract(context.Background(), "https://example.com/anything")
	require.Equal(t, want, got)
}

func TestRouterTryExtractReturnsNilOnNoMatch(t *testing.T) {
	r := New(WithProviders(fakeProvider{name: "no-match", matches: false}))
	got := r.TryExtract(context.Background(), "https://example.com/anything")
	require.Nil(t, got)
}

func TestRouterTryExtractReturnsNilOnExtractFailure(t *testing.T) {
	r := New(WithProviders(fakeProvider{name: "boom", matches: true, err: context.DeadlineExceeded}))
	got := r.TryExtract(context.Background(), "https://example.com/anything")
	require.Nil(t, got)
}

func TestRouterTryExtractReturnsNilOnInvalidURL(t *testing.T) {
	r := New()
	got := r.TryExtract(context.Background(), "://not-a-url")
	require.Nil(t, got)
}

func mustParse(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func TestProviderMatchesTable(t *testing.T) {
	cases := []struct {
		provider Provider
		url      string
		want     bool
	}{
		{twitterProvider{}, "https://x.com/jack/status/123", true},
		{twitterProvider{}, "https://x.com/jack", false},
		{redditProvider{}, "https://www.reddit.com/r/golang/comments/abc123/title", true},
		{redditProvider{}, "https://www.reddit.com/r/golang", false},
		{hackerNewsProvider{}, "https://news.ycombinator.com/item?id=1", true},
		{hackerNewsProvider{}, "https://news.ycombinator.com/newest", false},
		{githubProvider{}, "https://github.com/owner/repo/issues/42", true},
		{githubProvider{}, "https://github.com/owner/repo/pull/7", true},
		{githubProvider{}, "https://github.com/owner/repo", false},
		{youtubeProvider{}, "https://www.youtube.com/watch?v=abc", true},
		{youtubeProvider{}, "https://youtu.be/abc", true},
		{wikipediaProvider{}, "https://en.wikipedia.org/wiki/Go_(programming_language)", true},
		{stackOverflowProvider{}, "https://stackoverflow.com/questions/123/how-do-i", true},
		{mastodonProvider{}, "https://mastodon.social/users/gopher/statuses/99", true},
		{linkedInProvider{}, "https://www.linkedin.com/posts/someone_abc", true},
		{instagramProvider{}, "https://www.instagram.com/p/abc123/", true},
		{instagramProvider{}, "https://www.instagram.com/someuser/", false},
	}
	for _, c := range cases {
		got := c.provider.Matches(mustParse(t, c.url))
		require.Equal(t, c.want, got, "provider %s matching %s", c.provider.Name(), c.url)
	}
}
