package content

import (
	"github.com/MikkoParkkola/nab/model"
)

// PlainHandler passes the body through verbatim as markdown, per spec.md
// §4.4's fallback rule.
type PlainHandler struct{}

func (*PlainHandler) SupportedTypes() []string {
	return []string{"text/plain"}
}

func (*PlainHandler) Convert(body []byte, contentType string) (model.ConversionResult, error) {
	return model.ConversionResult{
		Markdown:    string(body),
		ContentType: contentType,
	}, nil
}
