// Package siterouter short-circuits generic HTML fetching for well-known
// platforms that expose cleaner structured APIs than their rendered pages.
//
// Grounded on Doist-unfurlist's FetchFunc/Metadata shape (fetcher.go) and
// its youtubeFetcher/GoogleMapsFetcher special cases (youtube.go,
// googlemaps.go): one predicate plus one extractor per site, generalized
// here from "one extra fetcher bolted onto generic HTML parsing" to ten
// first-class providers tried before generic fetch.
package siterouter

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

// Logger is the minimal logging surface the router needs for WARN-level
// provider failures, matching Doist-unfurlist's Logger interface.
type Logger interface {
	Printf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Provider is the {name, matches, extract} triple from spec.md §4.3.
type Provider interface {
	Name() string
	Matches(u *url.URL) bool
	Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error)
}

// Router dispatches a URL to the first matching provider.
type Router struct {
	providers []Provider
	client    *http.Client
	log       Logger
}

// Option configures a Router at construction time.
type Option func(*Router)

// WithLogger overrides the router's logger.
func WithLogger(l Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.log = l
		}
	}
}

// WithHTTPClient overrides the client used for provider API calls. Per
// spec.md §4.1's critical invariant, this should be an ALPN-negotiated
// (not prior-knowledge H2) client — see httpclient.NewPlainClient.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Router) {
		if c != nil {
			r.client = c
		}
	}
}

// WithProviders appends extra providers (e.g. the optional Google Maps
// preview provider) after the ten built-in ones.
func WithProviders(extra ...Provider) Option {
	return func(r *Router) {
		r.providers = append(r.providers, extra...)
	}
}

// New builds a Router with the ten built-in providers from spec.md §4.3,
// in table order.
func New(opts ...Option) *Router {
	r := &Router{
		log:    nopLogger{},
		client: http.DefaultClient,
	}
	r.providers = []Provider{
		twitterProvider{},
		redditProvider{},
		hackerNewsProvider{},
		githubProvider{},
		youtubeProvider{},
		wikipediaProvider{},
		stackOverflowProvider{},
		mastodonProvider{},
		linkedInProvider{},
		instagramProvider{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// TryExtract implements spec.md §4.3's dispatch contract: it returns a
// SiteContent on a matching provider's success, and nil on (a) no match or
// (b) a matching provider's extraction failure. Errors are logged at WARN
// and never propagated — callers always fall back to generic fetch.
func (r *Router) TryExtract(ctx context.Context, rawURL string) *model.SiteContent {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	for _, p := range r.providers {
		if !p.Matches(u) {
			continue
		}
		content, err := p.Extract(ctx, r.client, u)
		if err != nil {
			r.log.Printf("siterouter: %s: extract %q: %v", p.Name(), rawURL, err)
			return nil
		}
		return content
	}
	return nil
}

func hostMatches(u *url.URL, suffixes ...string) bool {
	host := strings.ToLower(u.Hostname())
	for _, s := range suffixes {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}

func pathSegments(u *url.URL) []string {
	trimmed := strings.Trim(u.Path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
