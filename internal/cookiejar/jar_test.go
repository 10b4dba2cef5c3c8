package cookiejar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCookiesForFiltersBySecureDomainPathAndExpiry(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	j := FromCookies([]Cookie{
		{Name: "session", Value: "abc", Domain: ".yle.fi", Path: "/", Secure: true, Expires: &future},
		{Name: "expired", Value: "old", Domain: ".yle.fi", Path: "/", Expires: &past},
		{Name: "other-site", Value: "x", Domain: ".example.com", Path: "/"},
		{Name: "scoped", Value: "y", Domain: ".yle.fi", Path: "/docs", Expires: &future},
	})

	got := j.CookiesFor("https://areena.yle.fi/docs/page")
	names := map[string]bool{}
	for _, c := range got {
		names[c.Name] = true
	}
	require.True(t, names["session"])
	require.True(t, names["scoped"])
	require.False(t, names["expired"])
	require.False(t, names["other-site"])
}

func TestCookiesForDropsSecureOnPlainHTTP(t *testing.T) {
	j := FromCookies([]Cookie{{Name: "s", Value: "v", Domain: ".yle.fi", Path: "/", Secure: true}})
	got := j.CookiesFor("http://areena.yle.fi/")
	require.Empty(t, got)
}

func TestCookiesForOrdersLongerPathsFirst(t *testing.T) {
	j := FromCookies([]Cookie{
		{Name: "root", Value: "1", Domain: ".yle.fi", Path: "/"},
		{Name: "deep", Value: "2", Domain: ".yle.fi", Path: "/a/b"},
	})
	got := j.CookiesFor("https://areena.yle.fi/a/b/c")
	require.Len(t, got, 2)
	require.Equal(t, "deep", got[0].Name)
}

func TestEmptyJarReturnsNoCookies(t *testing.T) {
	require.Nil(t, Empty().CookiesFor("https://example.com"))
}

func TestFromBrowserNoneReturnsEmptyJar(t *testing.T) {
	j := FromBrowser(BrowserNone)
	require.Equal(t, 0, j.Len())
	require.Equal(t, BrowserNone, j.Browser())
}
