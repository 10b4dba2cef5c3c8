// Package cookiejar extracts cookies from a user's default browser and
// serves the subset matching a given request URL under RFC 6265 rules.
//
// Grounded on the functional-options construction idiom of
// Doist-unfurlist/conf.go, generalized from "one memcache/HTTP client
// option set" to "one cookie-source option set", and on the
// net/http/cookiejar-shaped entry/matching split visible in the pack's
// navindex-colly cookiejar.go (CookieStorage/entry/domainAndType split),
// adapted here to browser-extracted (read-only) rather than
// client-accumulated cookies.
package cookiejar

import (
	"net/url"
	"sort"
	"time"

	"github.com/MikkoParkkola/nab/model"
)

// Cookie mirrors model.Cookie; re-exported here so callers that only need
// the jar don't have to import the model package directly.
type Cookie = model.Cookie

// Jar is a read-only, immutable-after-load collection of cookies. It is
// safe for concurrent use without synchronization once constructed, per
// spec.md §4.2's concurrency rule.
type Jar struct {
	cookies []Cookie
	browser BrowserID
	log     Logger
	now     func() time.Time // overridable for tests
}

// Logger is the minimal logging surface the jar needs.
type Logger interface {
	Printf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Empty returns a jar with no cookies, e.g. when --cookies=none.
func Empty() *Jar {
	return &Jar{log: nopLogger{}, now: time.Now}
}

// FromCookies builds a jar directly from an in-memory slice, mainly for
// tests and for callers that already parsed cookies some other way (e.g.
// a --cookie-file flag in the out-of-scope CLI).
func FromCookies(cookies []Cookie, opts ...Option) *Jar {
	j := &Jar{cookies: cookies, log: nopLogger{}, now: time.Now}
	for _, o := range opts {
		o(j)
	}
	return j
}

// CookiesFor returns the subset of cookies applicable to rawURL, per the
// matching algorithm in spec.md §4.2:
//
//	for each cookie c:
//	  if c.secure and url.scheme != "https": skip
//	  if not domain_match(c.domain, h): skip
//	  if not path_match(c.path, q): skip
//	  if c.expires set and c.expires < now: skip
//	  include c
func (j *Jar) CookiesFor(rawURL string) []Cookie {
	if j == nil || len(j.cookies) == 0 {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	now := time.Now
	if j.now != nil {
		now = j.now
	}
	nowT := now()

	var out []Cookie
	for _, c := range j.cookies {
		if c.Secure && u.Scheme != "https" {
			continue
		}
		if !domainMatch(c.Domain, u.Hostname()) {
			continue
		}
		if !pathMatch(c.Path, path) {
			continue
		}
		if c.Expires != nil && c.Expires.Before(nowT) {
			continue
		}
		out = append(out, c)
	}
	// Deterministic order: longer, more specific paths first, matching
	// the conventional browser Cookie-header ordering (RFC 6265 §5.4).
	sort.SliceStable(out, func(i, k int) bool { return len(out[i].Path) > len(out[k].Path) })
	return out
}

// Len reports how many cookies the jar holds in total (not filtered by any
// URL).
func (j *Jar) Len() int { return len(j.cookies) }

// Browser reports which browser this jar was loaded from.
func (j *Jar) Browser() BrowserID { return j.browser }
