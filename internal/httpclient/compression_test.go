package httpclient

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/require"
)

func TestDecompressBrotli(t *testing.T) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, err := w.Write([]byte("hello markdown"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"br"}},
		Body:   io.NopCloser(&buf),
	}
	body, encoding, err := decompress(resp)
	require.NoError(t, err)
	require.Equal(t, "br", encoding)
	require.Equal(t, "hello markdown", string(body))
}

func TestDecompressIdentity(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{},
		Body:   io.NopCloser(bytes.NewBufferString("plain")),
	}
	body, encoding, err := decompress(resp)
	require.NoError(t, err)
	require.Equal(t, "", encoding)
	require.Equal(t, "plain", string(body))
}
