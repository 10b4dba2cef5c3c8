package httpclient

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/MikkoParkkola/nab/model"
	"github.com/stretchr/testify/require"
)

type stubCookieSource struct{ cookies []model.Cookie }

func (s stubCookieSource) CookiesFor(string) []model.Cookie { return s.cookies }

func TestCookieHeaderValuePrefersExplicit(t *testing.T) {
	explicit := []model.Cookie{{Name: "sess", Value: "abc"}}
	src := stubCookieSource{cookies: []model.Cookie{{Name: "jar", Value: "zzz"}}}
	require.Equal(t, "sess=abc", cookieHeaderValue(explicit, src, "https://example.com"))
}

func TestCookieHeaderValueFallsBackToJar(t *testing.T) {
	src := stubCookieSource{cookies: []model.Cookie{{Name: "jar", Value: "zzz"}}}
	require.Equal(t, "jar=zzz", cookieHeaderValue(nil, src, "https://example.com"))
}

func TestCheckRedirectEnforcesMaxHops(t *testing.T) {
	c := &Client{maxRedirects: 2, cookies: noCookies{}}
	via := []*http.Request{{URL: mustURL("https://a")}, {URL: mustURL("https://a")}}
	req := &http.Request{URL: mustURL("https://a")}
	err := c.checkRedirect(req, via)
	require.Error(t, err)
	var nerr *model.Error
	require.ErrorAs(t, err, &nerr)
	require.Equal(t, model.KindTooManyRedirects, nerr.Kind)
}

func TestCheckRedirectDropsAuthOnHTTPSDowngrade(t *testing.T) {
	c := &Client{maxRedirects: 10, cookies: noCookies{}}
	prev := &http.Request{URL: mustURL("https://a")}
	req := &http.Request{URL: mustURL("http://a"), Header: http.Header{
		"Authorization": []string{"Bearer xyz"},
		"Cookie":        []string{"sess=abc"},
	}}
	err := c.checkRedirect(req, []*http.Request{prev})
	require.NoError(t, err)
	require.Empty(t, req.Header.Get("Authorization"))
	require.Empty(t, req.Header.Get("Cookie"))
}

func mustURL(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}
