package cookiejar

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// firefoxReader reads Firefox's moz_cookies table. Firefox stores cookie
// values in cleartext (no OS-keychain wrapping), unlike Chromium, so there
// is no decryption step.
type firefoxReader struct{}

func (firefoxReader) read(profileDir string) ([]Cookie, error) {
	dbPath := filepath.Join(profileDir, "cookies.sqlite")
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("firefox cookie store not found: %w", err)
	}

	tmp, err := copyToTemp(dbPath)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	db, err := sql.Open("sqlite", tmp+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open firefox cookie db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT host, name, value, path, expiry, isSecure, isHttpOnly FROM moz_cookies`)
	if err != nil {
		return nil, fmt.Errorf("query firefox cookies: %w", err)
	}
	defer rows.Close()

	var out []Cookie
	for rows.Next() {
		var (
			host, name, value, path string
			expiry                  int64
			secure, httpOnly        bool
		)
		if err := rows.Scan(&host, &name, &value, &path, &expiry, &secure, &httpOnly); err != nil {
			return nil, fmt.Errorf("scan firefox cookie row: %w", err)
		}
		c := Cookie{Name: name, Value: value, Domain: host, Path: path, Secure: secure, HTTPOnly: httpOnly}
		if expiry > 0 {
			t := time.Unix(expiry, 0).UTC()
			c.Expires = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
