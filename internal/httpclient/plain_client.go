package httpclient

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"

	"github.com/MikkoParkkola/nab/internal/useragent"
	"github.com/MikkoParkkola/nab/model"
)

// NewPlainClient returns a standalone *http.Client using negotiated ALPN
// (h2 or http/1.1) without HTTP/3 and without http2-prior-knowledge.
//
// Site providers that call JSON APIs use this instead of the shared
// AcceleratedClient: spec.md §4.3 calls out Reddit specifically as needing
// "a fresh ALPN client" because some JSON APIs reject a prior-knowledge H2
// connection with an HTML error page (spec.md §4.1's critical invariant).
func NewPlainClient(profile model.BrowserProfile) *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   perOriginCap,
		IdleConnTimeout:       idleEvictionAfter,
		ExpectContinueTimeout: 1 * time.Second,
	}
	_ = http2.ConfigureTransports(base)
	return &http.Client{
		Transport: useragent.Set(base, profile.UserAgent),
		Timeout:   30 * time.Second,
	}
}

// PlainHTTPClient exposes the shared Client's own ALPN-only path, for
// callers that want to reuse its connection pool rather than build a
// fresh one.
func (c *Client) PlainHTTPClient() *http.Client { return c.plain }
