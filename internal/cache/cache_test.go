package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyIsStableSHA256(t *testing.T) {
	t.Parallel()

	// sha256("https://example.org/listing")
	require.Equal(t, Key("https://example.org/listing"), Key("https://example.org/listing"))
	require.NotEqual(t, Key("https://example.org/listing"), Key("https://example.org/listing/"))
	require.Len(t, Key("anything"), 64)
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir())
	require.NoError(t, err)

	const url = "https://example.org/PS3_GAMES.tsv"

	_, ok := c.Get(url)
	require.False(t, ok)

	require.NoError(t, c.Put(url, "Title ID\tName\n"))

	body, ok := c.Get(url)
	require.True(t, ok)
	require.Equal(t, "Title ID\tName\n", body)

	// Put replaces the previous body.
	require.NoError(t, c.Put(url, "updated"))
	body, ok = c.Get(url)
	require.True(t, ok)
	require.Equal(t, "updated", body)
}

func TestNewRequiresDirectory(t *testing.T) {
	t.Parallel()

	_, err := New("")
	require.Error(t, err)
}
