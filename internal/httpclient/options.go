package httpclient

import (
	"time"

	"github.com/MikkoParkkola/nab/model"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithFingerprint pins the browser profile used for headers and TLS
// ClientHello shaping.
func WithFingerprint(p model.BrowserProfile) Option {
	return func(c *Client) { c.fingerprint = p }
}

// WithLogger configures the client's logger; nil is ignored.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCookieSource wires a cookie jar (or stub) consulted on every request
// and redirect hop.
func WithCookieSource(src CookieSource) Option {
	return func(c *Client) {
		if src != nil {
			c.cookies = src
		}
	}
}

// WithAutoReferer makes the client synthesize a Referer header from each
// request's own origin when the caller didn't supply one.
func WithAutoReferer(enabled bool) Option {
	return func(c *Client) { c.autoReferer = enabled }
}

// WithExtraHeaders merges hdr into every outgoing request; user-supplied
// keys win over the fingerprint profile's.
func WithExtraHeaders(hdr *model.OrderedHeaders) Option {
	return func(c *Client) { c.extraHeaders = hdr }
}

// WithTimeouts overrides the connect and total request deadlines.
func WithTimeouts(connect, total time.Duration) Option {
	return func(c *Client) {
		if connect > 0 {
			c.connectTO = connect
		}
		if total > 0 {
			c.totalTO = total
		}
	}
}

// WithMaxRedirects overrides the default cap of 10 redirects.
func WithMaxRedirects(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxRedirects = n
		}
	}
}

// WithHTTP3 toggles HTTP/3 attempts (enabled by default).
func WithHTTP3(enabled bool) Option {
	return func(c *Client) { c.enableHTTP3 = enabled }
}
