// Package content maps response bytes plus a Content-Type to a markdown
// ConversionResult, dispatching to a handler per MIME type with a
// byte-sniffing fallback when no handler claims the type.
//
// Grounded on Doist-unfurlist's HTML-tokenizing idiom
// (html_meta_parser.go, favicon.go: golang.org/x/net/html + charset), with
// PDF and table-rendering logic newly built to implement spec.md §4.4
// end-to-end (the teacher has no PDF handling at all).
package content

import (
	"strings"
	"time"

	"github.com/MikkoParkkola/nab/model"
)

// Handler converts a body to markdown for the Content-Type(s) it claims.
type Handler interface {
	SupportedTypes() []string
	Convert(body []byte, contentType string) (model.ConversionResult, error)
}

// Logger is the minimal logging surface used for handler-failure downgrades.
type Logger interface {
	Printf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Router dispatches Convert calls to the first handler whose
// SupportedTypes() contains the bare (charset-stripped, lowercased) MIME
// type, falling back to byte-sniffing when nothing matches.
type Router struct {
	handlers []Handler
	plain    *PlainHandler
	log      Logger
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

// WithHandlers prepends extra handlers, so they are tried before the
// built-in HTML/PDF handlers, in the order given.
func WithHandlers(extra ...Handler) Option {
	return func(r *Router) {
		r.handlers = append(extra, r.handlers...)
	}
}

// New builds a Router with the built-in HTML and PDF handlers.
func New(opts ...Option) *Router {
	r := &Router{
		plain: &PlainHandler{},
		log:   nopLogger{},
	}
	r.handlers = []Handler{&HTMLHandler{}, &PDFHandler{}}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Convert implements spec.md §4.4's dispatch rule: strip ";charset=...",
// lowercase, pick the first handler whose SupportedTypes() contains the
// bare type. On no match, sniff the first bytes for "<!", "<html", "<HTML"
// to decide between the HTML handler and the plain pass-through. Handler
// failures downgrade to PlainHandler rather than failing the caller.
func (r *Router) Convert(body []byte, contentType string) model.ConversionResult {
	start := time.Now()
	bare := bareMIMEType(contentType)

	for _, h := range r.handlers {
		if !containsType(h.SupportedTypes(), bare) {
			continue
		}
		result, err := h.Convert(body, contentType)
		if err != nil {
			r.log.Printf("content: handler for %q failed, falling back to plain: %v", bare, err)
			break
		}
		result.ElapsedMS = elapsedMS(start)
		return result
	}

	if looksLikeHTML(body) {
		if result, err := (&HTMLHandler{}).Convert(body, contentType); err == nil {
			result.ElapsedMS = elapsedMS(start)
			return result
		}
	}

	result, _ := r.plain.Convert(body, contentType)
	result.ElapsedMS = elapsedMS(start)
	return result
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func bareMIMEType(contentType string) string {
	s := contentType
	if idx := strings.IndexByte(s, ';'); idx >= 0 {
		s = s[:idx]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

func containsType(types []string, bare string) bool {
	for _, t := range types {
		if t == bare {
			return true
		}
	}
	return false
}

func looksLikeHTML(body []byte) bool {
	trimmed := strings.TrimLeft(string(firstBytes(body, 16)), " \t\r\n")
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<!") || strings.HasPrefix(lower, "<html")
}

func firstBytes(b []byte, n int) []byte {
	if len(b) < n {
		return b
	}
	return b[:n]
}
