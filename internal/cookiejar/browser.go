package cookiejar

import "fmt"

// BrowserID names a supported browser cookie store.
type BrowserID int

const (
	BrowserAuto BrowserID = iota
	BrowserNone
	BrowserDia
	BrowserBrave
	BrowserChrome
	BrowserFirefox
	BrowserSafari
	BrowserEdge
)

func (b BrowserID) String() string {
	switch b {
	case BrowserNone:
		return "none"
	case BrowserDia:
		return "dia"
	case BrowserBrave:
		return "brave"
	case BrowserChrome:
		return "chrome"
	case BrowserFirefox:
		return "firefox"
	case BrowserSafari:
		return "safari"
	case BrowserEdge:
		return "edge"
	default:
		return "auto"
	}
}

// autoDetectOrder is the browser probing order from spec.md §4.2: the
// first browser with a non-empty cookie store wins.
var autoDetectOrder = []BrowserID{
	BrowserDia, BrowserBrave, BrowserChrome, BrowserFirefox, BrowserSafari, BrowserEdge,
}

// storeReader loads all cookies from one browser's store. Implementations
// live in chromium.go, firefox.go, and safari.go.
type storeReader interface {
	read(profileDir string) ([]Cookie, error)
}

// FromBrowser builds a Jar from the named browser's cookie store. Passing
// BrowserAuto probes autoDetectOrder in order; BrowserNone returns an
// empty jar without touching disk.
//
// On any read failure (missing store, keychain unavailable, corrupt DB)
// the error is logged at INFO (CookieStoreMissing, per spec.md §7) and
// processing continues without cookies rather than failing the caller.
func FromBrowser(id BrowserID, opts ...Option) *Jar {
	j := &Jar{log: nopLogger{}}
	for _, o := range opts {
		o(j)
	}
	switch id {
	case BrowserNone:
		j.browser = BrowserNone
		return j
	case BrowserAuto:
		for _, candidate := range autoDetectOrder {
			cookies, err := loadStore(candidate)
			if err != nil || len(cookies) == 0 {
				continue
			}
			j.cookies, j.browser = cookies, candidate
			return j
		}
		j.log.Printf("cookiejar: no browser cookie store found, continuing without cookies")
		return j
	default:
		cookies, err := loadStore(id)
		if err != nil {
			j.log.Printf("cookiejar: %s: %v", id, err)
			return j
		}
		j.cookies, j.browser = cookies, id
		return j
	}
}

func loadStore(id BrowserID) ([]Cookie, error) {
	dir, err := profileDirFor(id)
	if err != nil {
		return nil, err
	}
	reader, err := readerFor(id)
	if err != nil {
		return nil, err
	}
	return reader.read(dir)
}

func readerFor(id BrowserID) (storeReader, error) {
	switch id {
	case BrowserDia, BrowserBrave, BrowserChrome, BrowserEdge:
		return chromiumReader{}, nil
	case BrowserFirefox:
		return firefoxReader{}, nil
	case BrowserSafari:
		return safariReader{}, nil
	default:
		return nil, fmt.Errorf("cookiejar: unsupported browser %s", id)
	}
}
