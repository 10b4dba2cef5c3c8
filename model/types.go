package model

import (
	"io"
	"net/http"
	"time"
)

// Protocol identifies which HTTP generation carried a response.
type Protocol string

const (
	ProtoH1 Protocol = "H1"
	ProtoH2 Protocol = "H2"
	ProtoH3 Protocol = "H3"
)

// Cookie mirrors the data model in spec.md §3. Domain may begin with "."
// (parent-domain cookie) or not (host-only).
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	Expires  *time.Time
}

// Expired reports whether the cookie's expiry, if set, is before now.
func (c Cookie) Expired(now time.Time) bool {
	return c.Expires != nil && c.Expires.Before(now)
}

// BrowserProfile is the set of headers and TLS fingerprint details chosen at
// client construction and pinned for its lifetime.
type BrowserProfile struct {
	UserAgent       string
	SecChUA         string
	SecChUAMobile   string
	SecChUAPlatform string
	Accept          string
	AcceptLanguage  string
	AcceptEncoding  string
}

// DefaultBrowserProfile is a realistic, recent desktop-Chrome fingerprint.
func DefaultBrowserProfile() BrowserProfile {
	return BrowserProfile{
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
		SecChUA:         `"Chromium";v="125", "Not.A/Brand";v="24"`,
		SecChUAMobile:   "?0",
		SecChUAPlatform: `"Windows"`,
		Accept:          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		AcceptLanguage:  "en-US,en;q=0.9",
		AcceptEncoding:  "br, zstd, gzip, deflate",
	}
}

// OrderedHeaders is an insertion-ordered, case-insensitive-on-lookup header
// map, satisfying the Request Context invariant that duplicate keys keep
// insertion order and lookups are ASCII case-insensitive.
//
// Grounded on the ordered-header-map idiom in theopenlane-httpsling's
// headers.go and mallardduck-go-http-helpers/pkg/headers.
type OrderedHeaders struct {
	keys   []string
	values []string
}

// NewOrderedHeaders returns an empty OrderedHeaders.
func NewOrderedHeaders() *OrderedHeaders { return &OrderedHeaders{} }

// Add appends a key/value pair, preserving any existing entries for key.
func (h *OrderedHeaders) Add(key, value string) *OrderedHeaders {
	h.keys = append(h.keys, key)
	h.values = append(h.values, value)
	return h
}

// Set removes any existing entries for key and adds a single new one.
func (h *OrderedHeaders) Set(key, value string) *OrderedHeaders {
	h.del(key)
	return h.Add(key, value)
}

func (h *OrderedHeaders) del(key string) {
	out := h.keys[:0]
	vals := h.values[:0]
	for i, k := range h.keys {
		if asciiEqualFold(k, key) {
			continue
		}
		out = append(out, k)
		vals = append(vals, h.values[i])
	}
	h.keys, h.values = out, vals
}

// Get returns the first value for key, case-insensitively, or "".
func (h *OrderedHeaders) Get(key string) string {
	for i, k := range h.keys {
		if asciiEqualFold(k, key) {
			return h.values[i]
		}
	}
	return ""
}

// Values returns all (key, value) pairs in insertion order.
func (h *OrderedHeaders) Values() []struct{ Key, Value string } {
	out := make([]struct{ Key, Value string }, len(h.keys))
	for i := range h.keys {
		out[i] = struct{ Key, Value string }{h.keys[i], h.values[i]}
	}
	return out
}

// Len reports the number of entries, including duplicate keys.
func (h *OrderedHeaders) Len() int { return len(h.keys) }

// ApplyTo merges these headers into an http.Header, letting OrderedHeaders'
// entries win over any pre-existing value for the same key.
func (h *OrderedHeaders) ApplyTo(dst http.Header) {
	seen := make(map[string]bool, len(h.keys))
	for i, k := range h.keys {
		if !seen[k] {
			dst.Del(k)
			seen[k] = true
		}
		dst.Add(k, h.values[i])
	}
}

func asciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// RequestContext describes one outgoing fetch. URL must be absolute with
// scheme http or https.
type RequestContext struct {
	URL          string
	Method       string
	Cookies      []Cookie
	ExtraHeaders *OrderedHeaders
	Body         io.Reader
	WarmupURL    string
	Fingerprint  BrowserProfile
}

// ResponseArtifact is the result of a completed fetch. FinalURL reflects
// all redirects the client performed.
type ResponseArtifact struct {
	Status      int
	ContentType string
	Headers     http.Header
	Body        []byte
	ElapsedMS   float64
	Protocol    Protocol
	FinalURL    string
}

// ConversionResult is the output of ContentRouter.Convert.
type ConversionResult struct {
	Markdown    string
	PageCount   int // 0 when not applicable (e.g. non-PDF input)
	ContentType string
	ElapsedMS   float64
}

// SiteContent is emitted by a site provider and rendered into the final
// markdown stream by the caller.
type SiteContent struct {
	Provider     string
	Title        string
	BodyMarkdown string
	Metadata     map[string]any
}

// PdfChar is one glyph extracted from a PDF page, lower-left baseline
// origin, in PDF points (1/72 inch), bottom-up.
type PdfChar struct {
	Ch     rune
	X, Y   float64
	Width  float64
	Height float64
	Page   int
}

// TextLine is a reconstructed run of PdfChars sharing a page and a Y band.
type TextLine struct {
	Text  string
	X, Y  float64
	Chars []PdfChar
	Page  int
}

// Table is a detected tabular region on one PDF page.
type Table struct {
	Page                   int
	XMin, XMax, YMin, YMax float64
	Rows                   [][]string
}
