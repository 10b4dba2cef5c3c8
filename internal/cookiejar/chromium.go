package cookiejar

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// chromeEpoch is the Chromium cookie store's epoch (1601-01-01 UTC), used to
// convert the integer microsecond timestamps stored in expires_utc.
var chromeEpoch = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)

// chromiumReader reads the SQLite "Cookies" database shared by the entire
// Chromium family (Chrome, Brave, Edge, Dia, and any other Chromium-based
// browser sharing the same schema), grounded on the pack's modernc.org/sqlite
// dependency (no cgo sqlite driver is available in this module's toolchain).
type chromiumReader struct{}

func (chromiumReader) read(profileDir string) ([]Cookie, error) {
	dbPath := filepath.Join(profileDir, "Cookies")
	if _, err := os.Stat(dbPath); err != nil {
		// newer Chrome versions moved the file under Network/
		alt := filepath.Join(profileDir, "Network", "Cookies")
		if _, altErr := os.Stat(alt); altErr == nil {
			dbPath = alt
		} else {
			return nil, fmt.Errorf("chromium cookie store not found: %w", err)
		}
	}

	// SQLite keeps a write lock on the live DB while the browser runs; copy
	// it to a temp file so a read-only open doesn't race the browser.
	tmp, err := copyToTemp(dbPath)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	db, err := sql.Open("sqlite", tmp+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open chromium cookie db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT host_key, name, value, encrypted_value, path, expires_utc, is_secure, is_httponly FROM cookies`)
	if err != nil {
		return nil, fmt.Errorf("query chromium cookies: %w", err)
	}
	defer rows.Close()

	key := chromiumDecryptionKey()

	var out []Cookie
	for rows.Next() {
		var (
			host, name, value, path string
			encrypted               []byte
			expiresUTC              int64
			secure, httpOnly        bool
		)
		if err := rows.Scan(&host, &name, &value, &encrypted, &path, &expiresUTC, &secure, &httpOnly); err != nil {
			return nil, fmt.Errorf("scan chromium cookie row: %w", err)
		}
		if value == "" && len(encrypted) > 0 {
			plain, decErr := decryptChromiumValue(encrypted, key)
			if decErr != nil {
				// spec.md §4.2: skip cookies we can't decrypt rather than
				// failing the whole load.
				continue
			}
			value = plain
		}
		c := Cookie{Name: name, Value: value, Domain: host, Path: path, Secure: secure, HTTPOnly: httpOnly}
		if expiresUTC > 0 {
			t := chromeEpoch.Add(time.Duration(expiresUTC) * time.Microsecond)
			c.Expires = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open cookie db: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "nab-cookies-*.sqlite")
	if err != nil {
		return "", fmt.Errorf("create temp cookie db: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("copy cookie db: %w", err)
	}
	return dst.Name(), nil
}
