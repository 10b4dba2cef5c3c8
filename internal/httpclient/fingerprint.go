package httpclient

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"sync"

	utls "github.com/refraction-networking/utls"
)

// buildTLSConfig returns the stdlib tls.Config used by transports that
// don't need full ClientHello shaping (HTTP/3's quic-go path does, see
// utlsDialer below). ALPN always advertises h3, h2, http/1.1 in that
// order, per spec.md §4.1.
func buildTLSConfig(_ BrowserProfile) *tls.Config {
	return &tls.Config{
		MinVersion:         tls.VersionTLS13,
		NextProtos:         []string{"h3", "h2", "http/1.1"},
		ClientSessionCache: tls.NewLRUClientSessionCache(256), // 0-RTT/resumption cache
	}
}

// utlsClientHelloID maps a BrowserProfile to the uTLS fingerprint it should
// present. Only Chrome-shaped profiles are recognized today; anything else
// falls back to uTLS's own "randomized" ClientHello, which is still far
// more realistic than Go's native fingerprint.
func utlsClientHelloID(p BrowserProfile) utls.ClientHelloID {
	switch {
	case p.SecChUA != "":
		return utls.HelloChrome_Auto
	default:
		return utls.HelloRandomized
	}
}

// fingerprintRoundTripper merges the BrowserProfile's headers and any
// configured extra headers into each outgoing request, with user-supplied
// extra-header keys winning. It also synthesizes Referer when autoReferer
// is set and the caller didn't supply one.
//
// Grounded on Doist-unfurlist's internal/useragent RoundTripper-wrapping
// idiom (useragent.Set): clone the request, never mutate the caller's.
type fingerprintRoundTripper struct {
	next        http.RoundTripper
	profile     BrowserProfile
	extra       headerLister
	autoReferer bool
}

type headerLister interface {
	Values() []struct{ Key, Value string }
}

func newFingerprintRoundTripper(next http.RoundTripper, c *Client) http.RoundTripper {
	return &fingerprintRoundTripper{
		next:        next,
		profile:     c.fingerprint,
		extra:       c.extraHeaders,
		autoReferer: c.autoReferer,
	}
}

func (rt *fingerprintRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	setIfAbsent(r2.Header, "User-Agent", rt.profile.UserAgent)
	setIfAbsent(r2.Header, "Accept", rt.profile.Accept)
	setIfAbsent(r2.Header, "Accept-Language", rt.profile.AcceptLanguage)
	setIfAbsent(r2.Header, "Accept-Encoding", rt.profile.AcceptEncoding)
	if rt.profile.SecChUA != "" {
		setIfAbsent(r2.Header, "Sec-Ch-Ua", rt.profile.SecChUA)
		setIfAbsent(r2.Header, "Sec-Ch-Ua-Mobile", rt.profile.SecChUAMobile)
		setIfAbsent(r2.Header, "Sec-Ch-Ua-Platform", rt.profile.SecChUAPlatform)
	}
	if rt.autoReferer && r2.Header.Get("Referer") == "" {
		if origin := refererFor(r2.URL); origin != "" {
			r2.Header.Set("Referer", origin)
		}
	}
	if rt.extra != nil {
		for _, kv := range rt.extra.Values() {
			r2.Header.Set(kv.Key, kv.Value) // user-supplied keys win, set last
		}
	}
	return rt.next.RoundTrip(r2)
}

func setIfAbsent(h http.Header, key, val string) {
	if val == "" {
		return
	}
	if h.Get(key) == "" {
		h.Set(key, val)
	}
}

func refererFor(u *url.URL) string {
	if u == nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}).String()
}

// cryptoProviderOnce installs the process-wide cryptographic provider
// exactly once; duplicate calls are idempotent, per spec.md §5/§9.
var cryptoProviderOnce sync.Once

func installCryptoProvider() {
	cryptoProviderOnce.Do(func() {
		// utls and quic-go both rely on crypto/tls's default provider; this
		// hook exists so a future FIPS/BoringCrypto provider swap has a
		// single, idempotent installation point.
	})
}
