package nab

import "github.com/MikkoParkkola/nab/model"

// These aliases let callers of the top-level nab API use nab.Cookie,
// nab.RequestContext, etc. directly, while httpclient, cookiejar, content,
// siterouter, and batch all depend on the shared, cycle-free model package
// instead of on this one.
type (
	Protocol          = model.Protocol
	Cookie            = model.Cookie
	BrowserProfile    = model.BrowserProfile
	OrderedHeaders    = model.OrderedHeaders
	RequestContext    = model.RequestContext
	ResponseArtifact  = model.ResponseArtifact
	ConversionResult  = model.ConversionResult
	SiteContent       = model.SiteContent
	PdfChar           = model.PdfChar
	TextLine          = model.TextLine
	Table             = model.Table
	Kind              = model.Kind
	Error             = model.Error
	PdfLockedError    = model.PdfLockedError
)

const (
	ProtoH1 = model.ProtoH1
	ProtoH2 = model.ProtoH2
	ProtoH3 = model.ProtoH3

	KindUnknown            = model.KindUnknown
	KindInvalidURL         = model.KindInvalidURL
	KindNetwork            = model.KindNetwork
	KindTLS                = model.KindTLS
	KindTimeout            = model.KindTimeout
	KindBadStatus          = model.KindBadStatus
	KindTooManyRedirects   = model.KindTooManyRedirects
	KindDecodeError        = model.KindDecodeError
	KindContentConversion  = model.KindContentConversion
	KindPdfLocked          = model.KindPdfLocked
	KindProviderFailure    = model.KindProviderFailure
	KindCookieStoreMissing = model.KindCookieStoreMissing
)

var (
	NewOrderedHeaders    = model.NewOrderedHeaders
	DefaultBrowserProfile = model.DefaultBrowserProfile
	ErrKind              = model.ErrKind
)
