package content

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/MikkoParkkola/nab/model"
)

// HTMLHandler converts HTML to markdown, per spec.md §4.4.
//
// The block-structure conversion itself (headings, paragraphs, lists,
// blockquotes, code blocks, tables, links, images) is delegated to
// html-to-markdown/v2, the same converter intelligencedev-manifold's
// internal/tools/web/fetch.go drives. This handler wraps it with the
// teacher's own HTML-tokenizing style (golang.org/x/net/html, charset) for
// two things the converter library doesn't do: stripping
// <script>/<style>/<noscript>/comments before conversion, and a
// line-oriented boilerplate filter afterward.
type HTMLHandler struct{}

func (*HTMLHandler) SupportedTypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

func (*HTMLHandler) Convert(body []byte, contentType string) (model.ConversionResult, error) {
	text := decodeHTMLCharset(body, contentType)

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return model.ConversionResult{}, fmt.Errorf("content: parse html: %w", err)
	}
	stripNoise(doc)

	var sanitized bytes.Buffer
	if err := html.Render(&sanitized, doc); err != nil {
		return model.ConversionResult{}, fmt.Errorf("content: render sanitized html: %w", err)
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	markdown, err := conv.ConvertString(sanitized.String())
	if err != nil {
		return model.ConversionResult{}, fmt.Errorf("content: convert html to markdown: %w", err)
	}

	markdown = filterBoilerplate(markdown)

	return model.ConversionResult{
		Markdown:    markdown,
		ContentType: "text/html",
	}, nil
}

// decodeHTMLCharset implements spec.md §4.4's charset precedence: a
// <meta charset=...>/http-equiv tag wins, then the HTTP Content-Type
// charset parameter, then UTF-8 with lossy decoding.
func decodeHTMLCharset(body []byte, contentType string) string {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

// stripNoise removes <script>, <style>, <noscript> elements and comment
// nodes in place, per spec.md §4.4.
func stripNoise(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
			continue
		}
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style", "noscript":
				n.RemoveChild(c)
				continue
			}
		}
		stripNoise(c)
	}
}
