package httpclient

import (
	"strings"
	"sync"
	"time"
)

// altSvcCache remembers which origins have advertised HTTP/3 support via
// an Alt-Svc response header, so the negotiating round tripper only
// attempts H3 for origins known to support it (spec.md §4.1, item 1).
type altSvcCache struct {
	mu      sync.RWMutex
	entries map[string]time.Time // host -> expiry
}

func newAltSvcCache() *altSvcCache {
	return &altSvcCache{entries: make(map[string]time.Time)}
}

// supportsH3 reports whether host has a live, unexpired h3 Alt-Svc entry.
func (a *altSvcCache) supportsH3(host string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	exp, ok := a.entries[host]
	return ok && time.Now().Before(exp)
}

// observe parses an Alt-Svc header value (e.g. `h3=":443"; ma=86400`) and
// records h3 support for host if present.
func (a *altSvcCache) observe(host, altSvc string) {
	if altSvc == "" {
		return
	}
	ttl := 24 * time.Hour
	found := false
	for _, part := range strings.Split(altSvc, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "h3=") {
			found = true
		}
		if idx := strings.Index(part, "ma="); idx >= 0 {
			if secs := parseMaxAge(part[idx+3:]); secs > 0 {
				ttl = time.Duration(secs) * time.Second
			}
		}
	}
	if !found {
		return
	}
	a.mu.Lock()
	a.entries[host] = time.Now().Add(ttl)
	a.mu.Unlock()
}

func parseMaxAge(s string) int {
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// markH3Success records a successful 0-RTT/H3 handshake directly, for
// origins discovered via a successful speculative attempt rather than a
// prior Alt-Svc header.
func (a *altSvcCache) markH3Success(host string) {
	a.mu.Lock()
	a.entries[host] = time.Now().Add(24 * time.Hour)
	a.mu.Unlock()
}
