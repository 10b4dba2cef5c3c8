package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLHandlerStripsScriptStyleAndComments(t *testing.T) {
	input := []byte(`<html><head><style>body{color:red}</style></head>
<body>
<script>alert('x')</script>
<!-- a comment -->
<h1>Hello</h1>
<p>World</p>
</body></html>`)

	result, err := (&HTMLHandler{}).Convert(input, "text/html; charset=utf-8")
	require.NoError(t, err)
	require.NotContains(t, result.Markdown, "alert(")
	require.NotContains(t, result.Markdown, "color:red")
	require.NotContains(t, result.Markdown, "a comment")
	require.Contains(t, result.Markdown, "Hello")
	require.Contains(t, result.Markdown, "World")
	require.Equal(t, "text/html", result.ContentType)
}

func TestHTMLHandlerSupportedTypes(t *testing.T) {
	h := &HTMLHandler{}
	require.Contains(t, h.SupportedTypes(), "text/html")
}

func TestRouterConvertSniffsHTMLOnUnknownType(t *testing.T) {
	r := New()
	result := r.Convert([]byte("<html><body><p>hi</p></body></html>"), "")
	require.Contains(t, result.Markdown, "hi")
}

func TestRouterConvertFallsBackToPlainForUnknownNonHTML(t *testing.T) {
	r := New()
	result := r.Convert([]byte("just some text"), "application/octet-stream")
	require.Equal(t, "just some text", result.Markdown)
}

func TestRouterConvertDispatchesByContentType(t *testing.T) {
	r := New()
	result := r.Convert([]byte("hello world"), "text/plain; charset=utf-8")
	require.Equal(t, "hello world", result.Markdown)
}
