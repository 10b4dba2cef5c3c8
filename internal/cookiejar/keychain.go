package cookiejar

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"errors"
	"fmt"
	"runtime"

	"github.com/keybase/go-keychain"
	"golang.org/x/crypto/pbkdf2"
)

const (
	chromiumSaltDarwin  = "saltysalt"
	chromiumIterDarwin  = 1003
	chromiumIterLinux   = 1
	chromiumKeyLenBytes = 16
)

// chromiumDecryptionKey resolves the AES key Chromium uses to encrypt
// cookie values, per spec.md §4.2:
//
//   - macOS: the "Chrome Safe Storage" generic password in the user's login
//     keychain, fed through PBKDF2-SHA1. The same entry is used for every
//     Chromium-family browser; browser-specific entries are not looked up.
//   - Other OSes: the well-known "peanuts" password that Chromium itself
//     uses when no OS keyring is reachable. No keyring (libsecret, kwallet)
//     is queried, so cookies encrypted with a keyring-held key fail to
//     decrypt and are skipped.
//
// Any failure returns a nil key; decryptChromiumValue then fails per-row
// and the caller skips that cookie rather than aborting the whole load.
func chromiumDecryptionKey() []byte {
	password := chromiumKeychainPassword()
	if password == "" {
		return nil
	}
	iterations := chromiumIterLinux
	if runtime.GOOS == "darwin" {
		iterations = chromiumIterDarwin
	}
	return pbkdf2.Key([]byte(password), []byte(chromiumSaltDarwin), iterations, chromiumKeyLenBytes, sha1.New)
}

func chromiumKeychainPassword() string {
	if runtime.GOOS != "darwin" {
		// Linux headless fallback: Chromium's documented default when no
		// OS keyring is reachable.
		return "peanuts"
	}
	pass, err := keychain.GetGenericPassword("Chrome Safe Storage", "Chrome", "", "")
	if err != nil || len(pass) == 0 {
		return ""
	}
	return string(pass)
}

// decryptChromiumValue decrypts a Chromium encrypted_value blob. Modern
// Chromium prefixes the ciphertext with "v10" or "v11"; the remainder is
// AES-128-CBC with a fixed IV of 16 spaces, per the documented format.
func decryptChromiumValue(encrypted, key []byte) (string, error) {
	if key == nil {
		return "", errors.New("cookiejar: no chromium decryption key available")
	}
	if len(encrypted) < 3 {
		return "", fmt.Errorf("cookiejar: encrypted cookie value too short")
	}
	prefix := string(encrypted[:3])
	if prefix != "v10" && prefix != "v11" {
		return "", fmt.Errorf("cookiejar: unsupported chromium cookie encryption prefix %q", prefix)
	}
	ciphertext := encrypted[3:]
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("cookiejar: build aes cipher: %w", err)
	}
	if len(ciphertext)%block.BlockSize() != 0 {
		return "", errors.New("cookiejar: ciphertext is not a multiple of the block size")
	}
	iv := make([]byte, block.BlockSize())
	for i := range iv {
		iv[i] = ' '
	}
	mode := cipher.NewCBCDecrypter(block, iv)
	plain := make([]byte, len(ciphertext))
	mode.CryptBlocks(plain, ciphertext)
	plain = pkcs7Unpad(plain)
	return string(plain), nil
}

func pkcs7Unpad(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	pad := int(b[len(b)-1])
	if pad <= 0 || pad > len(b) {
		return b
	}
	return b[:len(b)-pad]
}
