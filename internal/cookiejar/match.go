package cookiejar

import "strings"

// domainMatch implements the RFC 6265 §5.1.3 rule from spec.md §3: cookie
// domain d matches request host h when h == d (host-only) or d starts with
// "." and h == d[1:] or h ends with "."+d[1:].
//
// The critical bug class called out in spec.md §4.2 is a naive substring
// match (h.contains(d)), which wrongly rejects ".yle.fi" against
// "areena.yle.fi" reasoning (or wrongly accepts unrelated hosts that merely
// contain the domain as a substring, e.g. "notyle.fi.evil.com"). Instead we
// build the explicit candidate parent-domain set for h and test membership.
func domainMatch(cookieDomain, host string) bool {
	host = strings.ToLower(host)
	cookieDomain = strings.ToLower(cookieDomain)
	if cookieDomain == "" {
		return false
	}
	if cookieDomain[0] != '.' {
		// host-only cookie: exact match only
		return host == cookieDomain
	}
	bare := cookieDomain[1:]
	for _, candidate := range candidateDomains(host) {
		if candidate == cookieDomain || candidate == bare {
			return true
		}
	}
	return false
}

// candidateDomains returns, for host "a.b.c.tld", the set
// {a.b.c.tld, .a.b.c.tld, .b.c.tld, .c.tld, .tld}, per spec.md §4.2's
// explicit parent-domain enumeration requirement.
func candidateDomains(host string) []string {
	labels := strings.Split(host, ".")
	out := make([]string, 0, len(labels)*2)
	for i := 0; i < len(labels); i++ {
		suffix := strings.Join(labels[i:], ".")
		if i == 0 {
			out = append(out, suffix)
		}
		out = append(out, "."+suffix)
	}
	return out
}

// pathMatch implements spec.md §3's cookie path rule: q starts with p and
// either p ends with "/", or the next character of q is "/", or q == p.
func pathMatch(cookiePath, requestPath string) bool {
	if cookiePath == "" {
		cookiePath = "/"
	}
	if requestPath == "" {
		requestPath = "/"
	}
	if requestPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	if strings.HasSuffix(cookiePath, "/") {
		return true
	}
	return requestPath[len(cookiePath)] == '/'
}
