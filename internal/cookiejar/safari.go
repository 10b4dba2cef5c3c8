package cookiejar

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// safariReader parses Safari's Cookies.binarycookies container directly.
//
// There is no maintained third-party Go library for this format anywhere in
// the example pack or its transitive dependency set (the format is
// undocumented by Apple and only exists via reverse-engineering writeups);
// this hand-rolled reader is the stdlib-only exception documented in
// DESIGN.md. The layout below follows the widely reproduced
// reverse-engineered structure: a "cook" magic, a table of page sizes, one
// or more pages each holding a little-endian cookie-offset table, and
// individual cookies whose string fields are NUL-terminated and addressed
// by offsets relative to the start of the cookie record.
type safariReader struct{}

const (
	safariMagic          = "cook"
	safariMacEpochOffset = 978307200 // seconds between 1970-01-01 and 2001-01-01
)

func (safariReader) read(path string) ([]Cookie, error) {
	// path is the container directory for Safari per profile.go; the actual
	// file inside it is always named Cookies.binarycookies.
	file := path
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		file = filepath.Join(path, "Cookies.binarycookies")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read safari cookie store: %w", err)
	}
	return parseBinaryCookies(data)
}

func parseBinaryCookies(data []byte) ([]Cookie, error) {
	if len(data) < 8 || string(data[:4]) != safariMagic {
		return nil, fmt.Errorf("cookiejar: not a binarycookies file")
	}
	r := bytes.NewReader(data[4:])

	var numPages uint32
	if err := binary.Read(r, binary.BigEndian, &numPages); err != nil {
		return nil, fmt.Errorf("cookiejar: read page count: %w", err)
	}
	pageSizes := make([]uint32, numPages)
	for i := range pageSizes {
		if err := binary.Read(r, binary.BigEndian, &pageSizes[i]); err != nil {
			return nil, fmt.Errorf("cookiejar: read page size: %w", err)
		}
	}

	offset := 4 + 4 + 4*int(numPages)
	var out []Cookie
	for _, size := range pageSizes {
		if offset+int(size) > len(data) {
			break
		}
		page := data[offset : offset+int(size)]
		cookies, err := parsePage(page)
		if err != nil {
			// a single malformed page shouldn't discard the rest of the jar
			offset += int(size)
			continue
		}
		out = append(out, cookies...)
		offset += int(size)
	}
	return out, nil
}

func parsePage(page []byte) ([]Cookie, error) {
	if len(page) < 8 {
		return nil, fmt.Errorf("cookiejar: page too short")
	}
	numCookies := binary.LittleEndian.Uint32(page[4:8])
	offsetsStart := 8
	offsetsEnd := offsetsStart + 4*int(numCookies)
	if offsetsEnd > len(page) {
		return nil, fmt.Errorf("cookiejar: cookie offset table overruns page")
	}
	var out []Cookie
	for i := 0; i < int(numCookies); i++ {
		off := binary.LittleEndian.Uint32(page[offsetsStart+4*i : offsetsStart+4*i+4])
		if int(off) >= len(page) {
			continue
		}
		c, err := parseCookieRecord(page[off:])
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCookieRecord(rec []byte) (Cookie, error) {
	if len(rec) < 56 {
		return Cookie{}, fmt.Errorf("cookiejar: cookie record too short")
	}
	flags := binary.LittleEndian.Uint32(rec[8:12])
	urlOff := binary.LittleEndian.Uint32(rec[16:20])
	nameOff := binary.LittleEndian.Uint32(rec[20:24])
	pathOff := binary.LittleEndian.Uint32(rec[24:28])
	valueOff := binary.LittleEndian.Uint32(rec[28:32])
	expiresRaw := math.Float64frombits(binary.LittleEndian.Uint64(rec[40:48]))

	name := cString(rec, nameOff)
	urlStr := cString(rec, urlOff)
	path := cString(rec, pathOff)
	value := cString(rec, valueOff)
	if name == "" && urlStr == "" {
		return Cookie{}, fmt.Errorf("cookiejar: empty cookie record")
	}

	c := Cookie{
		Name:     name,
		Value:    value,
		Domain:   urlStr,
		Path:     path,
		Secure:   flags&0x1 != 0,
		HTTPOnly: flags&0x4 != 0,
	}
	if expiresRaw > 0 {
		t := time.Unix(int64(expiresRaw)+safariMacEpochOffset, 0).UTC()
		c.Expires = &t
	}
	return c, nil
}

func cString(buf []byte, off uint32) string {
	if int(off) >= len(buf) {
		return ""
	}
	end := bytes.IndexByte(buf[off:], 0)
	if end < 0 {
		return string(buf[off:])
	}
	return string(buf[off : int(off)+end])
}
