package nab

import (
	"time"

	"github.com/MikkoParkkola/nab/internal/cookiejar"
)

// Config holds construction-time settings for New. Zero value is sane
// defaults: auto-detect browser cookies, HTTP/3 enabled, no extra headers.
type Config struct {
	log Logger

	cookieBrowser cookiejar.BrowserID
	jar           *cookiejar.Jar // pre-built jar, set by WithCookieJar

	extraHeaders *OrderedHeaders
	autoReferer  bool
	warmupURL    string

	googleMapsAPIKey string

	perURLTimeout time.Duration
	concurrency   int
}

// Option configures New.
type Option func(*Config)

// WithLogger sets the logger used across the client, jar, and routers.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCookies selects which browser's cookie store to read, matching the
// CLI's --cookies flag values from spec.md §6. "auto" probes in the
// spec's §4.2 order; "none" disables cookies entirely.
func WithCookies(which string) Option {
	return func(c *Config) {
		c.cookieBrowser = parseBrowserID(which)
	}
}

// WithCookieJar installs an already-built jar (e.g. FromCookies in tests),
// bypassing browser auto-detection entirely.
func WithCookieJar(j *cookiejar.Jar) Option {
	return func(c *Config) { c.jar = j }
}

// WithExtraHeaders adds headers to every outgoing request.
func WithExtraHeaders(h *OrderedHeaders) Option {
	return func(c *Config) { c.extraHeaders = h }
}

// WithAutoReferer synthesizes a Referer header from each request's own URL.
func WithAutoReferer(enabled bool) Option {
	return func(c *Config) { c.autoReferer = enabled }
}

// WithWarmupURL calls Client.Warmup(url) once before the first real fetch.
func WithWarmupURL(url string) Option {
	return func(c *Config) { c.warmupURL = url }
}

// WithGoogleMaps enables the optional Google Maps preview provider, gated
// behind an API key per spec.md §4.3.
func WithGoogleMaps(apiKey string) Option {
	return func(c *Config) { c.googleMapsAPIKey = apiKey }
}

// WithPerURLTimeout bounds each individual URL's total fetch+convert time
// in FetchBatch; zero means no extra bound beyond the client's own.
func WithPerURLTimeout(d time.Duration) Option {
	return func(c *Config) { c.perURLTimeout = d }
}

// WithConcurrency sets FetchBatch's default worker count when callers pass
// 0; see internal/batch.DefaultConcurrency for the fallback otherwise.
func WithConcurrency(n int) Option {
	return func(c *Config) { c.concurrency = n }
}

func parseBrowserID(which string) cookiejar.BrowserID {
	switch which {
	case "none":
		return cookiejar.BrowserNone
	case "brave":
		return cookiejar.BrowserBrave
	case "chrome":
		return cookiejar.BrowserChrome
	case "firefox":
		return cookiejar.BrowserFirefox
	case "safari":
		return cookiejar.BrowserSafari
	case "edge":
		return cookiejar.BrowserEdge
	case "dia":
		return cookiejar.BrowserDia
	default:
		return cookiejar.BrowserAuto
	}
}
