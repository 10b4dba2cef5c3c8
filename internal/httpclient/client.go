// Package httpclient implements nab's AcceleratedClient: an HTTP client
// that negotiates HTTP/3, HTTP/2, or HTTP/1.1 per origin, pools connections,
// decompresses br/zstd/gzip/deflate transparently, and shapes requests to
// look like a real browser.
//
// Construction mirrors Doist-unfurlist's functional-options idiom
// (conf.go's ConfFunc pattern): New(opts...) returns a ready-to-use *Client
// with sane defaults when called with none.
package httpclient

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/MikkoParkkola/nab/internal/useragent"
	"github.com/MikkoParkkola/nab/model"
)

// CookieSource is consulted each time a request (including each redirect
// hop) needs its cookie set re-selected for the current URL. nab's
// top-level package wires this to a cookiejar.Jar; tests can stub it.
type CookieSource interface {
	CookiesFor(rawURL string) []model.Cookie
}

type noCookies struct{}

func (noCookies) CookiesFor(string) []model.Cookie { return nil }

// Client is the accelerated HTTP client. It is safe for concurrent use: the
// underlying transports synchronize their own connection pools and the
// small amount of client-local state (Alt-Svc cache) is guarded by a mutex.
type Client struct {
	fingerprint BrowserProfile
	log         Logger

	cookies CookieSource

	autoReferer   bool
	extraHeaders  *model.OrderedHeaders
	connectTO     time.Duration
	totalTO       time.Duration
	maxRedirects  int
	enableHTTP3   bool
	h3ConnectTO   time.Duration

	plain  *http.Client // ALPN-negotiated h2/h1.1, no prior-knowledge h2
	accel  *http.Client // same as plain but fronts an H3 attempt first

	altSvc *altSvcCache

	pool *pool

	tlsConfigOnce sync.Once
	tlsConfig     *tls.Config
}

type (
	BrowserProfile = model.BrowserProfile
	Cookie         = model.Cookie
)

// Logger is the minimal logging surface httpclient needs; *log.Logger
// satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

const (
	defaultConnectTimeout = 10 * time.Second
	defaultTotalTimeout   = 60 * time.Second
	defaultMaxRedirects   = 10
	defaultH3ConnectDeadline = 2 * time.Second
)

// New builds a Client with the given options applied over sane defaults.
func New(opts ...Option) *Client {
	c := &Client{
		fingerprint:  model.DefaultBrowserProfile(),
		log:          nopLogger{},
		cookies:      noCookies{},
		connectTO:    defaultConnectTimeout,
		totalTO:      defaultTotalTimeout,
		maxRedirects: defaultMaxRedirects,
		enableHTTP3:  true,
		h3ConnectTO:  defaultH3ConnectDeadline,
		altSvc:       newAltSvcCache(),
	}
	for _, o := range opts {
		o(c)
	}
	c.pool = newPool(c.connectTO)
	c.tlsConfig = buildTLSConfig(c.fingerprint)

	plainTransport := c.buildALPNTransport()
	c.plain = &http.Client{
		Transport:     useragent.Set(plainTransport, c.fingerprint.UserAgent),
		Timeout:       c.totalTO,
		CheckRedirect: c.checkRedirect,
	}

	accelTransport := c.buildAcceleratedTransport(plainTransport)
	c.accel = &http.Client{
		Transport:     useragent.Set(accelTransport, c.fingerprint.UserAgent),
		Timeout:       c.totalTO,
		CheckRedirect: c.checkRedirect,
	}

	installCryptoProvider()
	return c
}

// FetchBytes sends the request described by ctx and returns the response
// bytes plus metadata. See spec.md §4.1 for the protocol-negotiation and
// redirect policy this implements.
func (c *Client) FetchBytes(ctx context.Context, rc model.RequestContext) (*model.ResponseArtifact, error) {
	start := time.Now()
	u, err := url.Parse(rc.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, wrap(model.KindInvalidURL, "fetch_bytes", rc.URL, err)
	}

	req, err := c.buildRequest(ctx, rc, u)
	if err != nil {
		return nil, wrap(model.KindInvalidURL, "fetch_bytes", rc.URL, err)
	}

	client, proto := c.pickClient(u)
	resp, respProto, err := c.doWithFallback(req, client, proto)
	if err != nil {
		return nil, classifyTransportError(ctx, "fetch_bytes", rc.URL, err)
	}
	defer resp.Body.Close()

	body, encoding, err := decompress(resp)
	if err != nil {
		return nil, wrap(model.KindDecodeError, "fetch_bytes", rc.URL, err)
	}
	_ = encoding

	headers := resp.Header.Clone()
	headers.Del("Content-Encoding")
	headers.Del(protocolHeaderHint)

	artifact := &model.ResponseArtifact{
		Status:      resp.StatusCode,
		ContentType: headers.Get("Content-Type"),
		Headers:     headers,
		Body:        body,
		ElapsedMS:   float64(time.Since(start).Microseconds()) / 1000.0,
		Protocol:    respProto,
		FinalURL:    resp.Request.URL.String(),
	}
	if resp.StatusCode >= 400 {
		return artifact, &model.Error{Kind: model.KindBadStatus, Op: "fetch_bytes", URL: rc.URL, Status: resp.StatusCode, Body: body}
	}
	return artifact, nil
}

// FetchText is a convenience wrapper decoding the body using the
// content-type charset, falling back to UTF-8 lossy.
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, error) {
	art, err := c.FetchBytes(ctx, model.RequestContext{URL: rawURL, Method: http.MethodGet, Fingerprint: c.fingerprint})
	if err != nil && art == nil {
		return "", err
	}
	if err != nil {
		return "", err
	}
	return decodeBodyText(art.Body, art.ContentType), nil
}

// Warmup performs a GET for its side effects on the cookie jar/connection
// cache. Errors are logged, never surfaced, per spec.md §4.1.
func (c *Client) Warmup(ctx context.Context, rawURL string) {
	_, err := c.FetchBytes(ctx, model.RequestContext{URL: rawURL, Method: http.MethodGet, Fingerprint: c.fingerprint})
	if err != nil {
		c.log.Printf("warmup %q: %v", rawURL, err)
	}
}

func wrap(kind model.Kind, op, url string, err error) error {
	return &model.Error{Kind: kind, Op: op, URL: url, Err: err}
}

func decodeBodyText(body []byte, contentType string) string {
	if s, ok := decodeWithCharset(body, contentType); ok {
		return s
	}
	return string(body) // lossy fallback: Go strings over arbitrary bytes
}
