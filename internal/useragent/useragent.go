// Package useragent provides an http.RoundTripper wrapper that sets a
// User-Agent header on each outgoing request. Adapted from
// Doist-unfurlist's internal/useragent, itself a vendored copy of
// https://github.com/artyom/useragent.
//
// Basic usage:
//
//	client := &http.Client{
//		Transport: useragent.Set(http.DefaultTransport, "MyRobot/1.0"),
//	}
//	resp, err := client.Get("https://...")
package useragent

import "net/http"

// Set wraps rt returning a new RoundTripper that adds agent as the
// User-Agent header for requests without one already set.
//
// If rt is a *http.Transport, the returned RoundTripper embeds it so its
// exported methods (e.g. CloseIdleConnections) remain reachable through a
// type assertion.
func Set(rt http.RoundTripper, agent string) http.RoundTripper {
	if agent == "" {
		return rt
	}
	if t, ok := rt.(*http.Transport); ok {
		return uaT{t, agent}
	}
	return uaRT{rt, agent}
}

type uaT struct {
	*http.Transport
	userAgent string
}

func (t uaT) RoundTrip(r *http.Request) (*http.Response, error) {
	if _, ok := r.Header["User-Agent"]; ok {
		return t.Transport.RoundTrip(r)
	}
	r2 := cloneWithHeader(r, "User-Agent", t.userAgent)
	return t.Transport.RoundTrip(r2)
}

type uaRT struct {
	http.RoundTripper
	userAgent string
}

func (t uaRT) RoundTrip(r *http.Request) (*http.Response, error) {
	if _, ok := r.Header["User-Agent"]; ok {
		return t.RoundTripper.RoundTrip(r)
	}
	r2 := cloneWithHeader(r, "User-Agent", t.userAgent)
	return t.RoundTripper.RoundTrip(r2)
}

func cloneWithHeader(r *http.Request, key, value string) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.Header = make(http.Header, len(r.Header)+1)
	for k, v := range r.Header {
		r2.Header[k] = v
	}
	r2.Header.Set(key, value)
	return r2
}
