package cookiejar

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// profileDirFor resolves the default-profile directory (or, for Safari, the
// container directory) for a browser on the current OS, per spec.md §4.2's
// per-OS path table. Only macOS and Linux paths are populated; Windows
// support is an explicit spec.md Non-goal-adjacent gap (no WSL-safe registry
// access in the pack), so it returns an error there.
func profileDirFor(id BrowserID) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cookiejar: resolve home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		switch id {
		case BrowserChrome:
			return join(home, "Library/Application Support/Google/Chrome/Default"), nil
		case BrowserBrave:
			return join(home, "Library/Application Support/BraveSoftware/Brave-Browser/Default"), nil
		case BrowserEdge:
			return join(home, "Library/Application Support/Microsoft Edge/Default"), nil
		case BrowserDia:
			return join(home, "Library/Application Support/Dia/Default"), nil
		case BrowserFirefox:
			return firefoxProfileDir(join(home, "Library/Application Support/Firefox/Profiles"))
		case BrowserSafari:
			return join(home, "Library/Containers/com.apple.Safari/Data/Library/Cookies"), nil
		}
	case "linux":
		switch id {
		case BrowserChrome:
			return join(home, ".config/google-chrome/Default"), nil
		case BrowserBrave:
			return join(home, ".config/BraveSoftware/Brave-Browser/Default"), nil
		case BrowserEdge:
			return join(home, ".config/microsoft-edge/Default"), nil
		case BrowserDia:
			return join(home, ".config/Dia/Default"), nil
		case BrowserFirefox:
			return firefoxProfileDir(join(home, ".mozilla/firefox"))
		case BrowserSafari:
			return "", fmt.Errorf("cookiejar: safari is not available on linux")
		}
	default:
		return "", fmt.Errorf("cookiejar: unsupported OS %s", runtime.GOOS)
	}
	return "", fmt.Errorf("cookiejar: no profile path known for %s on %s", id, runtime.GOOS)
}

func join(parts ...string) string { return filepath.Join(parts...) }

// firefoxProfileDir picks the default-release profile under a Firefox
// profiles root, following profiles.ini's "Default=1" convention loosely:
// the first directory ending in ".default-release", falling back to
// ".default".
func firefoxProfileDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("cookiejar: read firefox profiles dir: %w", err)
	}
	var fallback string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if hasSuffix(name, ".default-release") {
			return filepath.Join(root, name), nil
		}
		if hasSuffix(name, ".default") {
			fallback = filepath.Join(root, name)
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("cookiejar: no firefox default profile found under %s", root)
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
