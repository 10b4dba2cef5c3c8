package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterBoilerplateDropsCookieBanner(t *testing.T) {
	md := "# Title\n\nWe use Cookies to improve your experience.\n\nReal content here.\n"
	got := filterBoilerplate(md)
	require.NotContains(t, got, "Cookies")
	require.Contains(t, got, "Real content here.")
}

func TestFilterBoilerplateDropsNavArtifacts(t *testing.T) {
	md := "Skip to content\n\nActual article text.\n"
	got := filterBoilerplate(md)
	require.NotContains(t, got, "Skip to content")
	require.Contains(t, got, "Actual article text.")
}

func TestFilterBoilerplateDropsPunctuationHeavyShortLines(t *testing.T) {
	md := "--- | --- | ---\n\nNormal sentence with words.\n"
	got := filterBoilerplate(md)
	require.NotContains(t, got, "--- | --- | ---")
	require.Contains(t, got, "Normal sentence with words.")
}

func TestFilterBoilerplateKeepsNormalLines(t *testing.T) {
	md := "Hello, world! This is fine.\n"
	got := filterBoilerplate(md)
	require.Contains(t, got, "Hello, world! This is fine.")
}

func TestContainsFoldASCII(t *testing.T) {
	require.True(t, containsFoldASCII("We ACCEPT COOKIES here", "accept cookies"))
	require.False(t, containsFoldASCII("nothing relevant", "accept cookies"))
}
