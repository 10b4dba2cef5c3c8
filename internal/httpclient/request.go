package httpclient

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

func (c *Client) buildRequest(ctx context.Context, rc model.RequestContext, u *url.URL) (*http.Request, error) {
	method := rc.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rc.Body)
	if err != nil {
		return nil, err
	}
	if s := cookieHeaderValue(rc.Cookies, c.cookies, u.String()); s != "" {
		req.Header.Set("Cookie", s)
	}
	if rc.ExtraHeaders != nil {
		rc.ExtraHeaders.ApplyTo(req.Header)
	}
	return req, nil
}

// cookieHeaderValue selects cookies applicable to rawURL from whichever of
// rc.Cookies (explicit, pre-selected) or the configured CookieSource (jar)
// is non-empty, formatting them as a single "name=value; name2=value2"
// header, per RFC 6265 §5.4.
func cookieHeaderValue(explicit []model.Cookie, src CookieSource, rawURL string) string {
	cookies := explicit
	if len(cookies) == 0 && src != nil {
		cookies = src.CookiesFor(rawURL)
	}
	if len(cookies) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// pickClient chooses between the accelerated (H3-attempting) and plain
// (ALPN h2/h1.1) http.Client for this request. Only https origins are
// eligible for H3.
func (c *Client) pickClient(u *url.URL) (*http.Client, model.Protocol) {
	if u.Scheme == "https" && c.enableHTTP3 {
		return c.accel, model.ProtoH3 // provisional; corrected from response in doWithFallback
	}
	return c.plain, model.ProtoH2
}

// doWithFallback executes the request, retrying once on the plain (H2)
// path if the accelerated path fails with a network-level error, per the
// "Retry once on H3 → fall back to H2" recoverability rule in spec.md §7.
// Redirects are handled by http.Client.CheckRedirect (checkRedirect
// below); this only concerns the initial transport selection.
func (c *Client) doWithFallback(req *http.Request, client *http.Client, proto model.Protocol) (*http.Response, model.Protocol, error) {
	resp, err := client.Do(req)
	if err == nil {
		return resp, actualProtocol(resp), nil
	}
	if client == c.plain {
		return nil, proto, err
	}
	// H3 attempt failed at the transport level (not just inside the
	// negotiating round tripper, which already falls back internally) —
	// retry once over the plain ALPN path.
	req2 := req.Clone(req.Context())
	resp2, err2 := c.plain.Do(req2)
	if err2 != nil {
		return nil, proto, err2
	}
	return resp2, actualProtocol(resp2), nil
}

func actualProtocol(resp *http.Response) model.Protocol {
	switch internalProtocol(resp.Header.Get(protocolHeaderHint)) {
	case protoH3:
		return model.ProtoH3
	case protoH2:
		return model.ProtoH2
	default:
		if resp.ProtoMajor == 2 {
			return model.ProtoH2
		}
		return model.ProtoH1
	}
}

// checkRedirect implements spec.md §4.1's redirect policy: at most
// c.maxRedirects hops (10 by default), the HTTPS→HTTP downgrade rule, and
// cookie re-selection from the CookieSource against the new URL on each
// hop (done here, since net/http does not call buildRequest again).
func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= c.maxRedirects {
		return &model.Error{Kind: model.KindTooManyRedirects, Op: "fetch_bytes", URL: req.URL.String()}
	}
	prev := via[len(via)-1]
	if prev.URL.Scheme == "https" && req.URL.Scheme == "http" {
		// Downgrade: drop Authorization and any Secure cookie.
		req.Header.Del("Authorization")
		if c := req.Header.Get("Cookie"); c != "" {
			req.Header.Set("Cookie", stripSecureCookies(c))
		}
	}
	if s := cookieHeaderValue(nil, c.cookies, req.URL.String()); s != "" {
		req.Header.Set("Cookie", s)
	}
	return nil
}

// stripSecureCookies is a best-effort filter: without jar-level Secure
// flags available on the already-flattened Cookie header, nab relies on
// the jar never having contributed a Secure cookie to an http:// request
// in the first place (cookiejar's Jar.CookiesFor enforces this per spec.md §3). This
// only guards the explicit-cookie path where the caller passed Secure
// cookies directly in RequestContext.Cookies for an https URL that then
// redirected to http.
func stripSecureCookies(cookieHeader string) string {
	// Conservative: on downgrade we drop the whole header rather than risk
	// leaking a Secure cookie we can no longer identify post-flattening.
	return ""
}

// classifyTransportError maps a low-level transport error to the spec.md
// §7 error taxonomy (Network/Tls/Timeout), attaching URL/Op context.
func classifyTransportError(ctx context.Context, op, url string, err error) error {
	if ctx.Err() != nil {
		return wrap(model.KindTimeout, op, url, ctx.Err())
	}
	var netErr net.Error
	if ok := asNetError(err, &netErr); ok && netErr.Timeout() {
		return wrap(model.KindTimeout, op, url, err)
	}
	if isTLSError(err) {
		return wrap(model.KindTLS, op, url, err)
	}
	return wrap(model.KindNetwork, op, url, err)
}

func asNetError(err error, target *net.Error) bool {
	for err != nil {
		if ne, ok := err.(net.Error); ok {
			*target = ne
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func isTLSError(err error) bool {
	if strings.Contains(err.Error(), "tls:") {
		return true
	}
	var recordErr tls.RecordHeaderError
	return errorsAsRecord(err, &recordErr)
}

func errorsAsRecord(err error, target *tls.RecordHeaderError) bool {
	for err != nil {
		if re, ok := err.(tls.RecordHeaderError); ok {
			*target = re
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
