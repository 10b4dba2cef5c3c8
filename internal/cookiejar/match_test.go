package cookiejar

import "testing"

func TestDomainMatchDottedCookieDomain(t *testing.T) {
	cases := []struct {
		cookieDomain, host string
		want               bool
	}{
		{".yle.fi", "areena.yle.fi", true},
		{".yle.fi", "yle.fi", true},
		{".yle.fi", "notyle.fi", false},
		{".yle.fi", "evilyle.fi", false},
		{".yle.fi", "yle.fi.evil.com", false},
		{"areena.yle.fi", "areena.yle.fi", true},
		{"areena.yle.fi", "sub.areena.yle.fi", false},
	}
	for _, c := range cases {
		if got := domainMatch(c.cookieDomain, c.host); got != c.want {
			t.Errorf("domainMatch(%q, %q) = %v, want %v", c.cookieDomain, c.host, got, c.want)
		}
	}
}

func TestPathMatch(t *testing.T) {
	cases := []struct {
		cookiePath, requestPath string
		want                    bool
	}{
		{"/", "/anything", true},
		{"/docs", "/docs", true},
		{"/docs", "/docs/page", true},
		{"/docs", "/documentation", false},
		{"/docs/", "/docs/page", true},
	}
	for _, c := range cases {
		if got := pathMatch(c.cookiePath, c.requestPath); got != c.want {
			t.Errorf("pathMatch(%q, %q) = %v, want %v", c.cookiePath, c.requestPath, got, c.want)
		}
	}
}
