package httpclient

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/net/html/charset"
)

// decompress transparently reverses whatever Content-Encoding the server
// applied (br, zstd, gzip, deflate), per spec.md §4.1. The returned
// encoding name is informational only: callers strip Content-Encoding
// from the headers they surface, per the Response Artifact contract.
func decompress(resp *http.Response) (body []byte, encoding string, err error) {
	encoding = strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	var r io.Reader = resp.Body
	switch encoding {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, encoding, err
		}
		defer zr.Close()
		r = zr
	case "gzip":
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, encoding, err
		}
		defer gr.Close()
		r = gr
	case "deflate":
		fr := flate.NewReader(resp.Body)
		defer fr.Close()
		r = fr
	case "", "identity":
		// no-op
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, encoding, err
	}
	return b, encoding, nil
}

// decodeWithCharset decodes body to a UTF-8 string using the charset named
// in contentType (e.g. "text/html; charset=iso-8859-1"), returning ok=false
// if no charset was named or recognized so the caller can fall back to
// lossy UTF-8.
func decodeWithCharset(body []byte, contentType string) (string, bool) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", false
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}
