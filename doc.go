// Package nab implements the content acquisition and normalization core of
// a token-optimized HTTP fetching tool: given a URL, it produces clean,
// LLM-friendly markdown.
//
// The package ties together five internal subsystems:
//
//   - internal/httpclient: protocol-negotiating (H3/H2/H1.1), fingerprinted HTTP client.
//   - internal/cookiejar: browser-cookie extraction and RFC 6265 matching.
//   - internal/siterouter: short-circuit extraction for well-known platforms.
//   - internal/content: Content-Type aware byte-to-markdown conversion (HTML, PDF, plain).
//   - internal/batch: bounded-concurrency fan-out over many URLs sharing one client.
//
// Construction follows the functional-options idiom throughout: every
// constructor takes a variadic list of With* options and returns sane
// defaults when called with none.
package nab
