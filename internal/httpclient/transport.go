package httpclient

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"

	utls "github.com/refraction-networking/utls"
)

// buildALPNTransport builds the "plain" path from spec.md §4.1: TLS with
// negotiated ALPN (h2 or http/1.1, whichever the server offers), and
// crucially *not* http2 prior-knowledge — some JSON APIs (Reddit) reject
// H2-without-ALPN with an HTML error page.
func (c *Client) buildALPNTransport() http.RoundTripper {
	dialer := &net.Dialer{Timeout: c.connectTO, KeepAlive: 30 * time.Second}
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		DialTLSContext:        c.utlsDialTLSContext(dialer),
		ForceAttemptHTTP2:     true, // negotiated via ALPN, never prior-knowledge
		TLSClientConfig:       c.tlsConfig,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   perOriginCap,
		IdleConnTimeout:       idleEvictionAfter,
		TLSHandshakeTimeout:   c.connectTO,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// Registering the h2 transport explicitly (rather than relying solely
	// on ForceAttemptHTTP2) lets us share one *http2.Transport across
	// redirected requests and keep its connection pool warm.
	_ = http2.ConfigureTransports(base)
	return newFingerprintRoundTripper(base, c)
}

// buildAcceleratedTransport wraps plainTransport with an H3 attempt that
// is tried before it per spec.md §4.1's negotiation policy: if H3 is
// enabled and the origin is known (via Alt-Svc cache) to support it,
// attempt H3 with a 2s connect deadline (the QUIC handshake timeout set in
// http3.go), falling back to H2 on failure.
func (c *Client) buildAcceleratedTransport(plainTransport http.RoundTripper) http.RoundTripper {
	if !c.enableHTTP3 {
		return plainTransport
	}
	h3 := newHTTP3RoundTripper(c)
	return &negotiatingRoundTripper{
		h3:          h3,
		fallback:    plainTransport,
		altSvc:      c.altSvc,
		connectTO:   c.h3ConnectTO,
		fingerprint: c,
	}
}

// negotiatingRoundTripper implements the per-request H3→H2 fallback
// policy. It never uses H3 for an origin that hasn't advertised support
// via a prior Alt-Svc header or successful 0-RTT handshake.
type negotiatingRoundTripper struct {
	h3          http.RoundTripper
	fallback    http.RoundTripper
	altSvc      *altSvcCache
	connectTO   time.Duration
	fingerprint *Client
}

func (rt *negotiatingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme == "https" && rt.altSvc.supportsH3(req.URL.Host) {
		// The connect deadline is the QUIC HandshakeIdleTimeout; no
		// request-wide deadline is added, since cancelling the request's
		// context would also abort reading the response body.
		resp, err := rt.h3.RoundTrip(req)
		if err == nil {
			resp.Header.Set(protocolHeaderHint, string(protoH3))
			return resp, nil
		}
		// fall through to H2/H1.1 below
	}
	resp, err := rt.fallback.RoundTrip(req)
	if err == nil {
		rt.altSvc.observe(req.URL.Host, resp.Header.Get("Alt-Svc"))
		if resp.Header.Get(protocolHeaderHint) == "" {
			resp.Header.Set(protocolHeaderHint, string(protoFromResponse(resp)))
		}
	}
	return resp, err
}

// protocolHeaderHint is an internal, request-local marker (stripped by
// FetchBytes before the caller sees the Response headers) used to thread
// which wire protocol actually carried the response back up to FetchBytes
// without needing a context value plumbed through net/http's Transport
// interface.
const protocolHeaderHint = "X-Nab-Internal-Protocol"

type internalProtocol string

const (
	protoH1 internalProtocol = "H1"
	protoH2 internalProtocol = "H2"
	protoH3 internalProtocol = "H3"
)

func protoFromResponse(resp *http.Response) internalProtocol {
	if resp.ProtoMajor == 2 {
		return protoH2
	}
	return protoH1
}

// utlsDialTLSContext returns a DialTLSContext hook that performs the TCP
// connect then a uTLS handshake shaped like the configured BrowserProfile,
// instead of crypto/tls's default (and fingerprintable-as-Go) ClientHello.
func (c *Client) utlsDialTLSContext(dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		rawConn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		host, _, _ := net.SplitHostPort(addr)
		uconn := utls.UClient(rawConn, &utls.Config{ServerName: host}, utlsClientHelloID(c.fingerprint))
		if err := uconn.HandshakeContext(ctx); err != nil {
			rawConn.Close()
			return nil, err
		}
		return uconn, nil
	}
}

// tlsConnState is a narrow alias for tls.ConnectionState; classifyTransportError
// does not use it (it detects TLS failures via isTLSError).
type tlsConnState = tls.ConnectionState
