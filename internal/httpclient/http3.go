package httpclient

import (
	"crypto/tls"
	"net/http"

	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"
)

// newHTTP3RoundTripper builds the QUIC/H3 transport. Grounded on the
// quic-go + http3.RoundTripper combination used throughout the pack's
// fingerprinting tools (enetx-surf, 64answer-httpcloak,
// Danny-Dasilva-tlsfingerprint.com all pair quic-go's http3 package with a
// uTLS-shaped TLS config for a browser-realistic H3 client).
func newHTTP3RoundTripper(c *Client) http.RoundTripper {
	return &http3.RoundTripper{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS13,
			NextProtos: []string{"h3"},
		},
		QUICConfig: &quic.Config{
			HandshakeIdleTimeout: c.h3ConnectTO,
			MaxIdleTimeout:       idleEvictionAfter,
			Allow0RTT:            true, // 0-RTT resumption per spec.md §4.1
		},
	}
}
