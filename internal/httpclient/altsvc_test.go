package httpclient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAltSvcCacheObserve(t *testing.T) {
	c := newAltSvcCache()
	require.False(t, c.supportsH3("example.com"))

	c.observe("example.com", `h3=":443"; ma=86400`)
	require.True(t, c.supportsH3("example.com"))

	// no h3 token present: must not mark support
	c.observe("other.com", `h2=":443"`)
	require.False(t, c.supportsH3("other.com"))
}

func TestAltSvcCacheIgnoresEmpty(t *testing.T) {
	c := newAltSvcCache()
	c.observe("example.com", "")
	require.False(t, c.supportsH3("example.com"))
}
